// SPDX-License-Identifier: MIT

package cluster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sigclust/cluster"
	"github.com/katalvlaran/sigclust/matrix"
)

func TestDetectOscillators_ZeroAmplitude(t *testing.T) {
	_, idx := buildGraph(t, twoTriangles)
	series := make([][]float64, 6)
	for i := range series {
		series[i] = constSeries(0.4, 5)
	}

	det, err := cluster.DetectOscillators(diagTrajectory(t, series), idx, cluster.Assignment{1, 1, 1, 2, 2, 2}, cluster.DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, det.Candidates)
	assert.Empty(t, det.Oscillators)
	assert.Empty(t, det.Anti)
	assert.Empty(t, det.ClusterOscillator)
	assert.True(t, det.Empty())
	assert.Equal(t, make([]float64, 6), det.Amplitude)
}

func TestDetectOscillators_SingleCandidate(t *testing.T) {
	_, idx := buildGraph(t, twoTriangles)
	series := make([][]float64, 6)
	for i := range series {
		series[i] = []float64{0.5, 0.55, 0.5, 0.55, 0.5}
	}
	series[2] = []float64{0.05, 0.95, 0.05, 0.95, 0.05}

	det, err := cluster.DetectOscillators(diagTrajectory(t, series), idx, cluster.Assignment{1, 1, 1, 2, 2, 2}, cluster.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{2}, det.Candidates)
	assert.InDelta(t, 0.9, det.Amplitude[2], 1e-12)
	assert.Empty(t, det.Oscillators)
	assert.Empty(t, det.Partner)
	assert.Empty(t, det.Anti)
	assert.Empty(t, det.ClusterOscillator)
}

func TestDetectOscillators_AntiCorrelatedPair(t *testing.T) {
	_, idx := buildGraph(t, twoTriangles)
	// a and f swing in opposition, c is a weaker candidate
	series := [][]float64{
		{1, -1, 1, -1, 1},
		constSeries(0, 5),
		{0.6, 0, 0.6, 0, 0.6},
		constSeries(0, 5),
		constSeries(0.2, 5),
		{-1, 1, -1, 1, -1},
	}

	det, err := cluster.DetectOscillators(diagTrajectory(t, series), idx, cluster.Assignment{1, 1, 1, 2, 2, 2}, cluster.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2, 5}, det.Candidates)
	assert.Equal(t, []int{0, 5}, det.Oscillators)
	assert.Equal(t, map[int]int{0: 5, 5: 0}, det.Partner)
	assert.InDelta(t, 4.0, det.PartnerMagnitude[0], 1e-12)
	assert.Equal(t, map[int]int{1: 2, 2: 1}, det.Anti)
	assert.Equal(t, map[int]int{1: 0, 2: 5}, det.ClusterOscillator)
}

func TestDetectOscillators_SameClusterPair(t *testing.T) {
	_, idx := buildGraph(t, twoTriangles)
	series := [][]float64{
		{1, -1, 1, -1, 1},
		{-1, 1, -1, 1, -1},
		constSeries(0, 5),
		constSeries(0, 5),
		constSeries(0, 5),
		constSeries(0, 5),
	}

	det, err := cluster.DetectOscillators(diagTrajectory(t, series), idx, cluster.Assignment{1, 1, 1, 2, 2, 2}, cluster.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, det.Oscillators)
	// both oscillators live in cluster 1, so it is anti-correlated with itself
	assert.Equal(t, map[int]int{1: 1}, det.Anti)
	assert.Equal(t, map[int]int{1: 0}, det.ClusterOscillator)
}

func TestDetectOscillators_ThresholdIsConfigurable(t *testing.T) {
	_, idx := buildGraph(t, twoTriangles)
	series := make([][]float64, 6)
	for i := range series {
		series[i] = []float64{0, 0.3, 0, 0.3, 0}
	}
	opts := cluster.DefaultOptions()
	opts.AmplitudeThreshold = 0.2

	det, err := cluster.DetectOscillators(diagTrajectory(t, series), idx, cluster.Assignment{1, 1, 1, 2, 2, 2}, opts)
	require.NoError(t, err)
	assert.Len(t, det.Candidates, 6)
	// identical series have zero pair magnitude, so no core oscillators
	assert.Empty(t, det.Oscillators)
}

func TestDetectOscillators_Errors(t *testing.T) {
	_, idx := buildGraph(t, twoTriangles)
	opts := cluster.DefaultOptions()

	det, err := cluster.DetectOscillators(nil, idx, cluster.Assignment{1, 1, 1, 2, 2, 2}, opts)
	require.NoError(t, err)
	assert.True(t, det.Empty())

	_, err = cluster.DetectOscillators(nil, idx, cluster.Assignment{1, 2}, opts)
	assert.ErrorIs(t, err, cluster.ErrAssignmentLength)

	small, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	_, err = cluster.DetectOscillators([]matrix.Matrix{small}, idx, cluster.Assignment{1, 1, 1, 2, 2, 2}, opts)
	assert.ErrorIs(t, err, cluster.ErrTrajectoryShape)
}
