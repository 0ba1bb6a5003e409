// SPDX-License-Identifier: MIT
//
// File: index.go
// Role: Index, a fixed bijection between vertex IDs and 0..n-1.
// Determinism:
//   - NewIndexFromGraph orders positions by Vertices() (lex asc).
// Concurrency:
//   - Index is immutable after construction; safe for concurrent reads.

package core

import "fmt"

// Index maps each vertex ID to a dense position and back.
// Matrix rows/cols, label slices and trajectory series all use these positions.
type Index struct {
	ids []string
	pos map[string]int
}

// NewIndex builds an Index from ids in the given order.
// Returns ErrEmptyVertexID or ErrDuplicateVertex on bad input.
func NewIndex(ids []string) (*Index, error) {
	idx := &Index{
		ids: make([]string, len(ids)),
		pos: make(map[string]int, len(ids)),
	}
	var i int
	var id string
	for i, id = range ids {
		if id == "" {
			return nil, ErrEmptyVertexID
		}
		if _, dup := idx.pos[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateVertex, id)
		}
		idx.ids[i] = id
		idx.pos[id] = i
	}

	return idx, nil
}

// NewIndexFromGraph snapshots the vertex set of g in lexicographic order.
func NewIndexFromGraph(g *Graph) *Index {
	ids := g.Vertices()
	idx := &Index{ids: ids, pos: make(map[string]int, len(ids))}
	for i, id := range ids {
		idx.pos[id] = i
	}

	return idx
}

// Len returns the number of indexed vertices.
func (x *Index) Len() int { return len(x.ids) }

// Position returns the dense position of id.
func (x *Index) Position(id string) (int, bool) {
	i, ok := x.pos[id]

	return i, ok
}

// ID returns the vertex ID at position i, or "" when out of range.
func (x *Index) ID(i int) string {
	if i < 0 || i >= len(x.ids) {
		return ""
	}

	return x.ids[i]
}

// IDs returns a copy of the ordered ID list.
func (x *Index) IDs() []string {
	out := make([]string, len(x.ids))
	copy(out, x.ids)

	return out
}
