// SPDX-License-Identifier: MIT

// Package core provides a thread-safe in-memory signed graph and the Index
// bijection used to align vertex IDs with dense matrix positions.
//
// The Graph G = (V,E) is undirected and weighted:
//
//   - Every edge carries a finite float64 weight. Positive weights encode
//     co-occurrence, negative weights encode mutual exclusion.
//   - At most one edge joins any pair of vertices (ErrMultiEdgeNotAllowed).
//   - Self-loops are rejected unless the graph is built WithLoops(); when
//     present they are stored but ignored by scoring and path search.
//   - Constant-time edge lookup via mirrored maps:
//     adjacencyList[u][v] = edgeID = adjacencyList[v][u]
//   - Atomic Edge.ID generation ("e1", "e2", ...).
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency (muEdgeAdj).
//
// Vertices carry a Metadata map. The clustering pipeline writes its final
// label under the "cluster" key via SetVertexAttribute.
//
// Determinism:
//
//	Vertices(), NeighborIDs() return IDs sorted lexicographically.
//	Edges(), Neighbors() return edges in insertion order (Edge.ID).
//	NewIndexFromGraph assigns positions in Vertices() order.
//
// Errors:
//
//	ErrEmptyVertexID       - vertex ID is the empty string.
//	ErrVertexNotFound      - requested vertex does not exist.
//	ErrEdgeNotFound        - requested edge does not exist.
//	ErrBadWeight           - NaN or ±Inf weight.
//	ErrLoopNotAllowed      - self-loop when loops are disabled.
//	ErrMultiEdgeNotAllowed - second edge between the same endpoints.
//	ErrDuplicateVertex     - an Index was built from a list with repeated IDs.
//
// Quick example:
//
//	g := core.NewGraph()
//	_, _ = g.AddEdge("salt", "pepper", 3)
//	_, _ = g.AddEdge("salt", "sugar", -2)
//	idx := core.NewIndexFromGraph(g)
//	i, _ := idx.Position("pepper") // 0
package core
