// SPDX-License-Identifier: MIT

package cluster_test

import (
	"context"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/sigclust/builder"
	"github.com/katalvlaran/sigclust/cluster"
	"github.com/katalvlaran/sigclust/core"
	"github.com/katalvlaran/sigclust/diffusion"
	"github.com/katalvlaran/sigclust/kmeans"
	"github.com/katalvlaran/sigclust/matrix"
	"github.com/katalvlaran/sigclust/metrics"
	"github.com/katalvlaran/sigclust/sparsity"
)

func assertNoLabels(t *testing.T, g *core.Graph) {
	t.Helper()
	for _, id := range g.Vertices() {
		_, ok := g.VertexAttribute(id, cluster.AttributeKey)
		assert.False(t, ok, "vertex %q was labelled", id)
	}
}

func labelsOf(t *testing.T, g *core.Graph, idx *core.Index) []int {
	t.Helper()
	out := make([]int, idx.Len())
	for i, id := range idx.IDs() {
		v, ok := g.VertexAttribute(id, cluster.AttributeKey)
		require.True(t, ok, "vertex %q has no label", id)
		l, isInt := v.(int)
		require.True(t, isInt)
		out[i] = l
	}

	return out
}

// Two triangles, diffusion settles: hard clustering only.
func TestRun_Settled(t *testing.T) {
	g, idx := buildGraph(t, twoTriangles)
	score := blockScore(t, []int{0, 0, 0, 1, 1, 1})
	diff := &fakeDiffuser{res: &diffusion.Result{Score: score, Iterations: 3}}
	partial := &fakePartial{}
	reg := metrics.NewRegistry()

	res, err := cluster.Run(context.Background(), g,
		cluster.WithDiffuser(diff),
		cluster.WithPartialDiffuser(partial),
		cluster.WithLogger(zaptest.NewLogger(t)),
		cluster.WithMetrics(reg))
	require.NoError(t, err)

	assert.Equal(t, 1, diff.calls)
	assert.Equal(t, 0, partial.calls)
	assert.False(t, res.Memory)
	assert.False(t, res.Fuzzy)
	assert.Nil(t, res.Detection)
	assert.Equal(t, 2, res.Search.Chosen)
	assert.Greater(t, res.Search.Score, 0.0)
	assert.Equal(t, cluster.Assignment{1, 1, 1, 2, 2, 2}, res.Assignment)
	assert.Equal(t, []int{1, 1, 1, 2, 2, 2}, labelsOf(t, g, idx))
	assert.Same(t, score, res.Score)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 1, res.Components)

	l, ok := res.Label("e")
	assert.True(t, ok)
	assert.Equal(t, 2, l)

	var metric dto.Metric
	require.NoError(t, reg.RunsTotal.WithLabelValues(metrics.PathHard, metrics.StatusOK).Write(&metric))
	assert.Equal(t, 1.0, metric.GetCounter().GetValue())
}

// One bridge-adjacent oscillator only: no pairing, nothing becomes fuzzy.
func TestRun_SingleOscillator(t *testing.T) {
	g, idx := buildGraph(t, twoTriangles)
	series := make([][]float64, 6)
	for i := range series {
		series[i] = []float64{0.5, 0.55, 0.5, 0.55, 0.5}
	}
	series[3] = []float64{0.05, 0.95, 0.05, 0.95, 0.05}
	diff := &fakeDiffuser{res: &diffusion.Result{
		Score:      blockScore(t, []int{0, 1, 0, 1, 0, 1}),
		Memory:     true,
		Trajectory: diagTrajectory(t, series),
	}}
	partial := &fakePartial{score: blockScore(t, []int{0, 0, 0, 1, 1, 1})}

	res, err := cluster.Run(context.Background(), g,
		cluster.WithDiffuser(diff),
		cluster.WithPartialDiffuser(partial))
	require.NoError(t, err)

	assert.Equal(t, 1, partial.calls)
	assert.True(t, res.Memory)
	assert.True(t, res.Fuzzy)
	assert.Equal(t, []int{3}, res.Detection.Candidates)
	assert.Empty(t, res.Detection.Oscillators)
	assert.Empty(t, res.Detection.Anti)
	assert.Empty(t, res.Flagged)
	assert.Equal(t, []int{1, 1, 1, 2, 2, 2}, labelsOf(t, g, idx))
}

// Two anti-correlated oscillators and a node bridging them.
func TestRun_FuzzyRefinement(t *testing.T) {
	g, idx := buildGraph(t, append(append([]edge{}, twoTriangles...), edge{"a", "m", 1}, edge{"f", "m", 1}))
	series := make([][]float64, 7)
	for i := range series {
		series[i] = constSeries(0, 5)
	}
	series[0] = []float64{1, -1, 1, -1, 1}
	series[5] = []float64{-1, 1, -1, 1, -1}
	diff := &fakeDiffuser{res: &diffusion.Result{Memory: true, Trajectory: diagTrajectory(t, series)}}
	partial := &fakePartial{score: blockScore(t, []int{0, 0, 0, 1, 1, 1, 0})}
	reg := metrics.NewRegistry()

	res, err := cluster.Run(context.Background(), g,
		cluster.WithDiffuser(diff),
		cluster.WithPartialDiffuser(partial),
		cluster.WithMetrics(reg),
		cluster.WithWorkers(2))
	require.NoError(t, err)

	require.True(t, res.Fuzzy)
	assert.Equal(t, []int{0, 5}, res.Detection.Oscillators)
	assert.Equal(t, map[int]int{1: 2, 2: 1}, res.Detection.Anti)
	assert.Equal(t, []int{0, 1, 4, 5, 6}, res.Scan.Flagged)
	assert.Equal(t, []int{0, 1, 4}, res.Flagged)
	assert.Equal(t, cluster.Assignment{0, 0, 1, 2, 0, 2, 1}, res.Assignment)
	labels := labelsOf(t, g, idx)
	assert.Equal(t, []int(res.Assignment), labels)
	for _, f := range res.Flagged {
		assert.Equal(t, cluster.FuzzyLabel, labels[f])
	}

	var metric dto.Metric
	require.NoError(t, reg.RunsTotal.WithLabelValues(metrics.PathFuzzy, metrics.StatusOK).Write(&metric))
	assert.Equal(t, 1.0, metric.GetCounter().GetValue())
	metric.Reset()
	require.NoError(t, reg.FuzzyNodesTotal.Write(&metric))
	assert.Equal(t, float64(len(res.Flagged)), metric.GetCounter().GetValue())
}

func TestRun_FuzzyDisabled(t *testing.T) {
	g, _ := buildGraph(t, twoTriangles)
	series := make([][]float64, 6)
	for i := range series {
		series[i] = []float64{1, -1, 1, -1, 1}
	}
	diff := &fakeDiffuser{res: &diffusion.Result{Memory: true, Trajectory: diagTrajectory(t, series)}}
	partial := &fakePartial{score: blockScore(t, []int{0, 0, 0, 1, 1, 1})}

	res, err := cluster.Run(context.Background(), g,
		cluster.WithDiffuser(diff),
		cluster.WithPartialDiffuser(partial),
		cluster.WithFuzzy(false))
	require.NoError(t, err)
	assert.True(t, res.Memory)
	assert.False(t, res.Fuzzy)
	assert.Nil(t, res.Detection)
	assert.NotContains(t, []int(res.Assignment), cluster.FuzzyLabel)
}

func TestRun_DisconnectedGraph(t *testing.T) {
	g, _ := buildGraph(t, twoTriangles[:6])
	diff := &fakeDiffuser{res: &diffusion.Result{Score: blockScore(t, []int{0, 0, 0, 1, 1, 1})}}

	res, err := cluster.Run(context.Background(), g,
		cluster.WithDiffuser(diff),
		cluster.WithPartialDiffuser(&fakePartial{}),
		cluster.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Components)
	assert.Equal(t, cluster.Assignment{1, 1, 1, 2, 2, 2}, res.Assignment)
}

func TestRun_NeedsFallbackUsesPartialScore(t *testing.T) {
	g, _ := buildGraph(t, twoTriangles)
	partialScore := blockScore(t, []int{0, 0, 0, 1, 1, 1})
	diff := &fakeDiffuser{res: &diffusion.Result{Score: blockScore(t, []int{0, 1, 0, 1, 0, 1}), NeedsFallback: true}}
	partial := &fakePartial{score: partialScore}

	res, err := cluster.Run(context.Background(), g, cluster.WithDiffuser(diff), cluster.WithPartialDiffuser(partial))
	require.NoError(t, err)
	assert.Same(t, partialScore, res.Score)
	assert.False(t, res.Fuzzy)
}

func TestRun_ConfigurationErrorsLeaveGraphUntouched(t *testing.T) {
	tests := []struct {
		name string
		opts []cluster.Option
		want error
	}{
		{"unsupported algorithm", []cluster.Option{cluster.WithAlgorithm("DBSCAN")}, kmeans.ErrUnsupportedAlgorithm},
		{"range below two", []cluster.Option{cluster.WithClusterRange(1, 3)}, cluster.ErrBadClusterRange},
		{"range above vertex count", []cluster.Option{cluster.WithClusterRange(2, 9)}, cluster.ErrBadClusterRange},
		{"bad limit", []cluster.Option{cluster.WithLimit(0)}, cluster.ErrOptionViolation},
		{"bad iterations", []cluster.Option{cluster.WithMaxIterations(-1)}, cluster.ErrOptionViolation},
		{"bad workers", []cluster.Option{cluster.WithWorkers(0)}, cluster.ErrOptionViolation},
		{"bad threshold", []cluster.Option{cluster.WithAmbiguityThreshold(-0.1)}, cluster.ErrOptionViolation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, _ := buildGraph(t, twoTriangles)
			diff := &fakeDiffuser{res: &diffusion.Result{Score: blockScore(t, []int{0, 0, 0, 1, 1, 1})}}
			reg := metrics.NewRegistry()
			opts := append([]cluster.Option{cluster.WithDiffuser(diff), cluster.WithMetrics(reg)}, tc.opts...)

			res, err := cluster.Run(context.Background(), g, opts...)
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, res)
			assert.Equal(t, 0, diff.calls)
			assertNoLabels(t, g)
		})
	}
}

func TestRun_EdgelessGraph(t *testing.T) {
	g := core.NewGraph()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, g.AddVertex(id))
	}
	_, err := cluster.Run(context.Background(), g, cluster.WithClusterRange(2, 3))
	require.ErrorIs(t, err, sparsity.ErrNoEdges)
	assertNoLabels(t, g)

	_, err = cluster.Run(context.Background(), nil)
	assert.ErrorIs(t, err, cluster.ErrGraphNil)
}

func TestRun_DefaultDiffusers(t *testing.T) {
	g, idx := buildGraph(t, twoTriangles)

	res, err := cluster.Run(context.Background(), g, cluster.WithLogger(zaptest.NewLogger(t)), cluster.WithSeed(7))
	require.NoError(t, err)

	labels := labelsOf(t, g, idx)
	assert.Equal(t, []int(res.Assignment), labels)
	for _, l := range labels {
		assert.GreaterOrEqual(t, l, 0)
		assert.LessOrEqual(t, l, res.Search.Chosen)
	}
	rows, cols := res.Score.Rows(), res.Score.Cols()
	assert.Equal(t, 6, rows)
	assert.Equal(t, 6, cols)
	assert.LessOrEqual(t, matrix.AbsMax(res.Score), 1.0+1e-9)
}

func TestRun_Deterministic(t *testing.T) {
	run := func() cluster.Assignment {
		g, _ := buildGraph(t, append(append([]edge{}, twoTriangles...), edge{"f", "g", 1}, edge{"g", "h", -1}, edge{"h", "a", 0.5}))
		res, err := cluster.Run(context.Background(), g, cluster.WithSeed(11), cluster.WithClusterRange(2, 5))
		require.NoError(t, err)

		return res.Assignment
	}
	assert.Equal(t, run(), run())
}

func TestRun_PlantedPartition(t *testing.T) {
	sizes := []int{4, 4, 4}
	bopts := []builder.BuilderOption{builder.WithIDScheme(builder.PaddedIDFn(2))}
	g, err := builder.BuildGraph(nil, bopts, builder.PlantedPartition(sizes, 1, 1))
	require.NoError(t, err)
	planted := builder.PartitionLabels(core.NewIndexFromGraph(g), sizes, bopts...)
	diff := &fakeDiffuser{res: &diffusion.Result{Score: blockScore(t, planted)}}

	res, err := cluster.Run(context.Background(), g,
		cluster.WithDiffuser(diff),
		cluster.WithPartialDiffuser(&fakePartial{}),
		cluster.WithClusterRange(2, 4))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Search.Chosen)
	assert.InDelta(t, 1.0, res.Search.Score, 1e-12)
	assert.Equal(t, planted, []int(res.Assignment))
}

func BenchmarkRun_PlantedPartition(b *testing.B) {
	bopts := []builder.BuilderOption{builder.WithSeed(3), builder.WithUniformWeight(0.5, 1.5)}
	cons := []builder.Constructor{builder.PlantedPartition([]int{15, 15, 15}, 0.6, 0.1), builder.FlipSigns(0.05)}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g, err := builder.BuildGraph(nil, bopts, cons...)
		if err != nil {
			b.Fatal(err)
		}
		if _, err = cluster.Run(context.Background(), g, cluster.WithClusterRange(2, 5), cluster.WithSeed(1)); err != nil {
			b.Fatal(err)
		}
	}
}
