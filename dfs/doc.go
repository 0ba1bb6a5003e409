// SPDX-License-Identifier: MIT

// Package dfs implements depth-first search on an undirected core.Graph and
// derives connected components from it.
//
// Key features:
//   - DFS(g, startID, opts...): single tree from startID, or the whole forest
//     with WithFullTraversal.
//   - Hooks: OnVisit (pre-order) and OnExit (post-order); a hook error aborts.
//   - Limits: MaxDepth and FilterNeighbor, with a SkippedNeighbors count.
//   - Components(g): connected components, each sorted, ordered by their
//     smallest vertex ID.
//
// Traversal is iterative, so deep chains do not grow the goroutine stack.
// Neighbors are visited in ascending ID order and self-loops are ignored,
// which makes Order and Parent reproducible.
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Errors:
//
//   - ErrGraphNil             if g is nil.
//   - ErrStartVertexNotFound  if startID is missing.
//   - context errors          if the context is done.
//   - any error returned by OnVisit or OnExit.
package dfs
