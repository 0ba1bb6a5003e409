// SPDX-License-Identifier: MIT

package cluster_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sigclust/cluster"
	"github.com/katalvlaran/sigclust/metrics"
)

// pairedDetection has a (position 0) as cluster 1's oscillator and f
// (position 5) as cluster 2's, anti-correlated with each other.
func pairedDetection() *cluster.Detection {
	return &cluster.Detection{
		Candidates:        []int{0, 5},
		Oscillators:       []int{0, 5},
		Partner:           map[int]int{0: 5, 5: 0},
		PartnerMagnitude:  map[int]float64{0: 2, 5: 2},
		Anti:              map[int]int{1: 2, 2: 1},
		ClusterOscillator: map[int]int{1: 0, 2: 5},
	}
}

func TestScanPathConflicts(t *testing.T) {
	weak := []edge{
		{"a", "b", 0.5}, {"a", "c", 1}, {"b", "c", 1},
		{"d", "e", 1}, {"d", "f", 1}, {"e", "f", 1},
		{"c", "d", -1},
	}
	bridged := append(append([]edge{}, twoTriangles...), edge{"a", "m", 1}, edge{"f", "m", 1})

	tests := []struct {
		name         string
		edges        []edge
		assignment   cluster.Assignment
		flagged      []int
		negative     []int
		weak         []int
		signConflict []int
	}{
		{
			name:       "consistent partition",
			edges:      twoTriangles,
			assignment: cluster.Assignment{1, 1, 1, 2, 2, 2},
		},
		{
			name:       "misassigned bridge node",
			edges:      twoTriangles,
			assignment: cluster.Assignment{1, 1, 2, 2, 2, 2},
			flagged:    []int{2},
			negative:   []int{2},
		},
		{
			name:       "weak edge to oscillator",
			edges:      weak,
			assignment: cluster.Assignment{1, 1, 1, 2, 2, 2},
			flagged:    []int{1},
			weak:       []int{1},
		},
		{
			// m links both oscillators positively; e and b then average
			// a positive and a negative path to the opposite oscillator
			name:         "node bridging both oscillators",
			edges:        bridged,
			assignment:   cluster.Assignment{1, 1, 1, 2, 2, 2, 1},
			flagged:      []int{0, 1, 4, 5, 6},
			signConflict: []int{0, 1, 4, 5, 6},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, idx := buildGraph(t, tc.edges)
			rep, err := cluster.ScanPathConflicts(context.Background(), g, idx, pairedDetection(), tc.assignment, cluster.DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, tc.flagged, rep.Flagged)
			assert.Equal(t, tc.negative, rep.Negative)
			assert.Equal(t, tc.weak, rep.Weak)
			assert.Equal(t, tc.signConflict, rep.SignConflict)
			assert.Empty(t, rep.Unreachable)
		})
	}
}

// A cluster anti-correlated with itself compares every member's resonance
// with itself, so rule (a) flags the whole cluster.
func TestScanPathConflicts_SelfAntiCorrelation(t *testing.T) {
	g, idx := buildGraph(t, twoTriangles)
	det := &cluster.Detection{
		Candidates:        []int{0, 1},
		Oscillators:       []int{0},
		Partner:           map[int]int{0: 1},
		PartnerMagnitude:  map[int]float64{0: 2},
		Anti:              map[int]int{1: 1},
		ClusterOscillator: map[int]int{1: 0},
	}

	rep, err := cluster.ScanPathConflicts(context.Background(), g, idx, det, cluster.Assignment{1, 1, 1, 2, 2, 2}, cluster.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, rep.SignConflict)
	assert.Empty(t, rep.Negative)
	assert.Empty(t, rep.Weak)
	assert.Equal(t, []int{0, 1, 2}, rep.Flagged)
}

func TestScanPathConflicts_Resonance(t *testing.T) {
	g, idx := buildGraph(t, twoTriangles)
	rep, err := cluster.ScanPathConflicts(context.Background(), g, idx, pairedDetection(), cluster.Assignment{1, 1, 1, 2, 2, 2}, cluster.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 1, 1, -1, -1, -1}, rep.Resonance[0])
	assert.Equal(t, []float64{-1, -1, -1, 1, 1, 1}, rep.Resonance[5])
}

func TestScanPathConflicts_NormalizesByMaxWeight(t *testing.T) {
	scaled := make([]edge, len(twoTriangles))
	for i, e := range twoTriangles {
		scaled[i] = edge{e.u, e.v, e.w * 4}
	}
	g, idx := buildGraph(t, scaled)
	rep, err := cluster.ScanPathConflicts(context.Background(), g, idx, pairedDetection(), cluster.Assignment{1, 1, 1, 2, 2, 2}, cluster.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, -1, -1, -1}, rep.Resonance[0])
	assert.Empty(t, rep.Flagged)
}

func TestScanPathConflicts_Unreachable(t *testing.T) {
	g, idx := buildGraph(t, twoTriangles, "z")
	reg := metrics.NewRegistry()
	opts := cluster.DefaultOptions()
	opts.Metrics = reg

	rep, err := cluster.ScanPathConflicts(context.Background(), g, idx, pairedDetection(), cluster.Assignment{1, 1, 1, 2, 2, 2, 1}, opts)
	require.NoError(t, err)

	assert.Equal(t, map[int][]int{0: {6}, 5: {6}}, rep.Unreachable)
	assert.Equal(t, -1.0, rep.Resonance[0][6])
	assert.Equal(t, []int{6}, rep.Negative)
	assert.Contains(t, rep.Flagged, 6)
}

func TestScanPathConflicts_MissingOscillatorSkipsRules(t *testing.T) {
	g, idx := buildGraph(t, twoTriangles)
	det := &cluster.Detection{
		Oscillators:       []int{0},
		Partner:           map[int]int{},
		PartnerMagnitude:  map[int]float64{},
		Anti:              map[int]int{1: 2},
		ClusterOscillator: map[int]int{1: 0},
	}

	// cluster 2 has no oscillator, cluster 1's anti partner has none either
	rep, err := cluster.ScanPathConflicts(context.Background(), g, idx, det, cluster.Assignment{1, 1, 1, 2, 2, 2}, cluster.DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, rep.Flagged)
	assert.Empty(t, rep.SignConflict)
}

func TestScanPathConflicts_WorkersGiveSameResult(t *testing.T) {
	g, idx := buildGraph(t, append(append([]edge{}, twoTriangles...), edge{"a", "m", 1}, edge{"f", "m", 1}))
	a := cluster.Assignment{1, 1, 1, 2, 2, 2, 1}
	serial := cluster.DefaultOptions()
	parallel := serial
	parallel.Workers = 3

	r1, err := cluster.ScanPathConflicts(context.Background(), g, idx, pairedDetection(), a, serial)
	require.NoError(t, err)
	r2, err := cluster.ScanPathConflicts(context.Background(), g, idx, pairedDetection(), a, parallel)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}

func TestScanPathConflicts_EmptyDetection(t *testing.T) {
	g, idx := buildGraph(t, twoTriangles)
	rep, err := cluster.ScanPathConflicts(context.Background(), g, idx, &cluster.Detection{}, cluster.Assignment{1, 1, 1, 2, 2, 2}, cluster.DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, rep.Flagged)

	_, err = cluster.ScanPathConflicts(context.Background(), nil, idx, nil, nil, cluster.DefaultOptions())
	assert.ErrorIs(t, err, cluster.ErrGraphNil)
}
