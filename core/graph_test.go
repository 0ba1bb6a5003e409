// SPDX-License-Identifier: MIT

package core_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sigclust/core"
)

func TestAddEdge_Validation(t *testing.T) {
	g := core.NewGraph()

	_, err := g.AddEdge("", "B", 1)
	assert.ErrorIs(t, err, core.ErrEmptyVertexID)

	_, err = g.AddEdge("A", "B", math.NaN())
	assert.ErrorIs(t, err, core.ErrBadWeight)

	_, err = g.AddEdge("A", "B", math.Inf(-1))
	assert.ErrorIs(t, err, core.ErrBadWeight)

	_, err = g.AddEdge("A", "A", 1)
	assert.ErrorIs(t, err, core.ErrLoopNotAllowed)

	eid, err := g.AddEdge("A", "B", -2.5)
	require.NoError(t, err)
	assert.Equal(t, "e1", eid)

	// reverse orientation is the same undirected pair
	_, err = g.AddEdge("B", "A", 1)
	assert.ErrorIs(t, err, core.ErrMultiEdgeNotAllowed)
}

func TestWeight_OrientationFree(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("salt", "sugar", -3)
	require.NoError(t, err)

	w1, err := g.Weight("salt", "sugar")
	require.NoError(t, err)
	w2, err := g.Weight("sugar", "salt")
	require.NoError(t, err)
	assert.Equal(t, w1, w2)
	assert.Equal(t, -3.0, w1)

	_, err = g.Weight("salt", "pepper")
	assert.ErrorIs(t, err, core.ErrEdgeNotFound)
	assert.True(t, g.HasEdge("sugar", "salt"))
}

func TestLoops_IgnoredByNeighborIDs(t *testing.T) {
	g := core.NewGraph(core.WithLoops())
	_, err := g.AddEdge("A", "A", 5)
	require.NoError(t, err)
	_, err = g.AddEdge("A", "B", 1)
	require.NoError(t, err)

	ids, err := g.NeighborIDs("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, ids)

	deg, err := g.Degree("A")
	require.NoError(t, err)
	assert.Equal(t, 1, deg)

	edges, err := g.Neighbors("A")
	require.NoError(t, err)
	assert.Len(t, edges, 2)

	maxW, maxAbs, ok := g.MaxWeight()
	assert.True(t, ok)
	assert.Equal(t, 1.0, maxW)
	assert.Equal(t, 1.0, maxAbs)
}

func TestMaxWeight_AllNegative(t *testing.T) {
	g := core.NewGraph()
	_, _ = g.AddEdge("A", "B", -1)
	_, _ = g.AddEdge("B", "C", -4)

	maxW, maxAbs, ok := g.MaxWeight()
	require.True(t, ok)
	assert.Equal(t, -1.0, maxW)
	assert.Equal(t, 4.0, maxAbs)

	_, _, ok = core.NewGraph().MaxWeight()
	assert.False(t, ok)
}

func TestRemoveVertex_DropsIncidentEdges(t *testing.T) {
	g := core.NewGraph()
	_, _ = g.AddEdge("A", "B", 1)
	_, _ = g.AddEdge("B", "C", 1)
	_, _ = g.AddEdge("A", "C", -1)

	require.NoError(t, g.RemoveVertex("B"))
	assert.Equal(t, 2, g.VertexCount())
	assert.Equal(t, 1, g.EdgeCount())
	assert.False(t, g.HasEdge("A", "B"))
	assert.ErrorIs(t, g.RemoveVertex("B"), core.ErrVertexNotFound)
}

func TestEdges_InsertionOrder(t *testing.T) {
	g := core.NewGraph()
	pairs := [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "e"}, {"e", "f"},
		{"f", "g"}, {"g", "h"}, {"h", "i"}, {"i", "j"}, {"j", "k"}, {"k", "l"}}
	for _, p := range pairs {
		_, err := g.AddEdge(p[0], p[1], 1)
		require.NoError(t, err)
	}
	edges := g.Edges()
	require.Len(t, edges, len(pairs))
	for i, e := range edges {
		assert.Equal(t, pairs[i][0], e.From)
	}
}

func TestVertexAttribute(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddVertex("A"))

	_, ok := g.VertexAttribute("A", "cluster")
	assert.False(t, ok)

	require.NoError(t, g.SetVertexAttribute("A", "cluster", 2))
	v, ok := g.VertexAttribute("A", "cluster")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	assert.ErrorIs(t, g.SetVertexAttribute("Z", "cluster", 1), core.ErrVertexNotFound)
}

func TestClone_Independent(t *testing.T) {
	g := core.NewGraph()
	_, _ = g.AddEdge("A", "B", 2)
	require.NoError(t, g.SetVertexAttribute("A", "cluster", 1))

	c := g.Clone()
	require.NoError(t, c.SetVertexAttribute("A", "cluster", 7))
	_, err := c.AddEdge("B", "C", 1)
	require.NoError(t, err)

	v, _ := g.VertexAttribute("A", "cluster")
	assert.Equal(t, 1, v)
	assert.False(t, g.HasVertex("C"))
	assert.Equal(t, 1, g.EdgeCount())

	// clone continues the edge counter
	eid, err := c.AddEdge("C", "D", 1)
	require.NoError(t, err)
	assert.Equal(t, "e3", eid)
}

func TestInducedSubgraph(t *testing.T) {
	g := core.NewGraph()
	_, _ = g.AddEdge("A", "B", 1)
	_, _ = g.AddEdge("B", "C", -1)
	_, _ = g.AddEdge("C", "A", 1)

	sub := core.InducedSubgraph(g, map[string]bool{"A": true, "B": true})
	assert.Equal(t, []string{"A", "B"}, sub.Vertices())
	assert.Equal(t, 1, sub.EdgeCount())
	assert.Equal(t, 3, g.EdgeCount())

	require.NoError(t, g.SetVertexAttribute("A", "cluster", 1))
	sub = core.InducedSubgraph(g, map[string]bool{"A": true})
	v, ok := sub.VertexAttribute("A", "cluster")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	require.NoError(t, sub.SetVertexAttribute("A", "cluster", 2))
	v, _ = g.VertexAttribute("A", "cluster")
	assert.Equal(t, 1, v)
}

func TestFilterEdges(t *testing.T) {
	g := core.NewGraph()
	_, _ = g.AddEdge("A", "B", 1)
	_, _ = g.AddEdge("B", "C", -1)
	g.FilterEdges(func(e *core.Edge) bool { return e.Weight > 0 })
	assert.Equal(t, 1, g.EdgeCount())
	assert.False(t, g.HasEdge("C", "B"))
}

func TestConcurrentAddEdge(t *testing.T) {
	g := core.NewGraph()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = g.AddEdge("hub", string(rune('A'+i%26))+string(rune('a'+i/26)), float64(i))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, g.EdgeCount())
	assert.Equal(t, 51, g.VertexCount())
}

func TestIndex(t *testing.T) {
	g := core.NewGraph()
	_, _ = g.AddEdge("pepper", "salt", 1)
	_ = g.AddVertex("basil")

	idx := core.NewIndexFromGraph(g)
	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, []string{"basil", "pepper", "salt"}, idx.IDs())

	i, ok := idx.Position("salt")
	require.True(t, ok)
	assert.Equal(t, 2, i)
	assert.Equal(t, "basil", idx.ID(0))
	assert.Equal(t, "", idx.ID(3))

	_, err := core.NewIndex([]string{"a", "b", "a"})
	assert.ErrorIs(t, err, core.ErrDuplicateVertex)
	_, err = core.NewIndex([]string{""})
	assert.ErrorIs(t, err, core.ErrEmptyVertexID)
}
