// SPDX-License-Identifier: MIT

package cluster_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sigclust/core"
	"github.com/katalvlaran/sigclust/diffusion"
	"github.com/katalvlaran/sigclust/matrix"
)

type edge struct {
	u, v string
	w    float64
}

// twoTriangles: a-b-c and d-e-f, positive inside, bridged by c-d = -1.
var twoTriangles = []edge{
	{"a", "b", 1}, {"a", "c", 1}, {"b", "c", 1},
	{"d", "e", 1}, {"d", "f", 1}, {"e", "f", 1},
	{"c", "d", -1},
}

func buildGraph(t *testing.T, edges []edge, isolated ...string) (*core.Graph, *core.Index) {
	t.Helper()
	g := core.NewGraph()
	for _, e := range edges {
		_, err := g.AddEdge(e.u, e.v, e.w)
		require.NoError(t, err)
	}
	for _, id := range isolated {
		require.NoError(t, g.AddVertex(id))
	}

	return g, core.NewIndexFromGraph(g)
}

// blockScore returns an n×n matrix with +1 between equal groups and -1 otherwise.
func blockScore(t *testing.T, groups []int) *matrix.Dense {
	t.Helper()
	rows := make([][]float64, len(groups))
	for i := range groups {
		rows[i] = make([]float64, len(groups))
		for j := range groups {
			if groups[i] == groups[j] {
				rows[i][j] = 1
			} else {
				rows[i][j] = -1
			}
		}
	}
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)

	return m
}

// diagTrajectory builds len(series[0]) matrices whose diagonal entry i at
// step s is series[i][s]; off-diagonal entries are zero.
func diagTrajectory(t *testing.T, series [][]float64) []matrix.Matrix {
	t.Helper()
	n := len(series)
	steps := len(series[0])
	out := make([]matrix.Matrix, steps)
	for s := 0; s < steps; s++ {
		m, err := matrix.NewDense(n, n)
		require.NoError(t, err)
		for i := 0; i < n; i++ {
			require.NoError(t, m.Set(i, i, series[i][s]))
		}
		out[s] = m
	}

	return out
}

func constSeries(v float64, steps int) []float64 {
	out := make([]float64, steps)
	for i := range out {
		out[i] = v
	}

	return out
}

type fakeDiffuser struct {
	res   *diffusion.Result
	calls int
}

func (f *fakeDiffuser) Diffuse(context.Context, *core.Graph, *core.Index, float64, int) (*diffusion.Result, error) {
	f.calls++

	return f.res, nil
}

type fakePartial struct {
	score matrix.Matrix
	calls int
}

func (f *fakePartial) PartialDiffuse(context.Context, *core.Graph, *core.Index) (matrix.Matrix, error) {
	f.calls++

	return f.score, nil
}
