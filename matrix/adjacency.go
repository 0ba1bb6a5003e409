// SPDX-License-Identifier: MIT
// Package matrix - signed adjacency builder.
//
//   - Undirected mirroring: A[i][j] == A[j][i] == weight(i,j).
//   - Self-loops are skipped; the diagonal is set to the caller's value.
//   - Absent edges are 0.
//   - Rows/cols follow the supplied core.Index, never map order.

package matrix

import (
	"fmt"

	"github.com/katalvlaran/sigclust/core"
)

// SignedAdjacency builds the n×n symmetric signed adjacency of g aligned
// with idx, writing diag on every diagonal cell.
//
// Errors:
//   - ErrGraphNil for a nil graph.
//   - ErrInvalidDimensions for an empty index.
//   - ErrIndexMismatch when an edge endpoint is not indexed or sizes differ.
//
// Complexity: O(V^2 + E).
func SignedAdjacency(g *core.Graph, idx *core.Index, diag float64) (*Dense, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if g.VertexCount() != idx.Len() {
		return nil, fmt.Errorf("SignedAdjacency: %d vertices vs %d indexed: %w",
			g.VertexCount(), idx.Len(), ErrIndexMismatch)
	}
	n := idx.Len()
	a, err := NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("SignedAdjacency: %w", err)
	}

	var e *core.Edge
	for _, e = range g.Edges() {
		if e.IsLoop() {
			continue
		}
		i, okI := idx.Position(e.From)
		j, okJ := idx.Position(e.To)
		if !okI || !okJ {
			return nil, fmt.Errorf("SignedAdjacency: edge %s: %w", e.ID, ErrIndexMismatch)
		}
		a.data[i*n+j] = e.Weight
		a.data[j*n+i] = e.Weight
	}
	for i := 0; i < n; i++ {
		a.data[i*n+i] = diag
	}

	return a, nil
}
