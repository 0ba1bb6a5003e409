// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first search over a core.Graph, returning
// hop distances, parent links, visit order and the full shortest-path DAG.
//
// What
//
//   - Explore vertices in non-decreasing hop distance from a start vertex.
//   - Returns a BFSResult containing:
//   - Order: visit sequence
//   - Depth: vertex → distance (edges) from start
//   - Parent: vertex → first predecessor (BFS tree)
//   - Preds: vertex → every predecessor lying on a shortest path
//   - PathCount: vertex → number of distinct shortest paths
//   - AllShortestPaths enumerates the shortest paths to a destination.
//   - PathProductMean averages the product of a per-edge function over all
//     shortest paths in linear time, without enumerating them.
//
// Edge weights never influence distances: only hop counts matter. Self-loops
// are skipped because core.NeighborIDs excludes the vertex itself.
//
// Determinism
//
//	core.NeighborIDs returns sorted IDs, so Order, Parent and Preds are
//	reproducible across runs.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - Time:   O(V + E)
//   - Memory: O(V + E) for the predecessor lists
//
// Usage
//
//	res, err := bfs.BFS(g, "salt", bfs.WithContext(ctx))
//	if err != nil {
//		// ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation, ctx or hook errors
//	}
//	mean, err := res.PathProductMean("pepper", func(u, v string) float64 {
//		w, _ := g.Weight(u, v)
//		return w
//	})
//
// Errors
//
//   - ErrGraphNil             if the graph pointer is nil.
//   - ErrStartVertexNotFound  if the start vertex does not exist.
//   - ErrOptionViolation      if invalid Option (e.g. negative MaxDepth).
//   - ErrUnreachable          from path queries on undiscovered vertices.
package bfs
