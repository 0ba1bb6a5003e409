// SPDX-License-Identifier: MIT

package bfs

import "fmt"

// AllShortestPaths enumerates every hop-shortest path from the search start
// to dest, each ordered start→dest. Enumeration stops after limit paths when
// limit > 0. Paths are produced in predecessor order, so the output is
// deterministic for a given graph.
//
// The number of shortest paths can grow exponentially; callers that only
// need an aggregate over all paths should use PathProductMean instead.
func (r *BFSResult) AllShortestPaths(dest string, limit int) ([][]string, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("%w: %q", ErrUnreachable, dest)
	}
	var (
		out   [][]string
		stack = []string{dest}
		walk  func(cur string) bool
	)
	walk = func(cur string) bool {
		if cur == r.Start {
			p := make([]string, len(stack))
			copy(p, stack)
			reverse(p)
			out = append(out, p)

			return limit <= 0 || len(out) < limit
		}
		for _, p := range r.Preds[cur] {
			stack = append(stack, p)
			more := walk(p)
			stack = stack[:len(stack)-1]
			if !more {
				return false
			}
		}

		return true
	}
	walk(dest)

	return out, nil
}

// PathProductMean returns the mean, over all hop-shortest paths from the
// start to dest, of the product of weight(u,v) along each path.
//
// It is computed by dynamic programming over the shortest-path DAG in visit
// order: S(start)=1, S(v)=Σ_{u∈Preds(v)} S(u)·weight(u,v), and the mean is
// S(dest)/PathCount(dest). This equals the explicit enumeration average
// without materializing the paths. The mean for the start itself is 1.
//
// Complexity: O(V + E) per call.
func (r *BFSResult) PathProductMean(dest string, weight func(u, v string) float64) (float64, error) {
	if !r.Reached(dest) {
		return 0, fmt.Errorf("%w: %q", ErrUnreachable, dest)
	}
	sums := make(map[string]float64, len(r.Order))
	sums[r.Start] = 1
	for _, v := range r.Order {
		if v == r.Start {
			continue
		}
		var s float64
		for _, u := range r.Preds[v] {
			s += sums[u] * weight(u, v)
		}
		sums[v] = s
		if v == dest {
			break
		}
	}

	return sums[dest] / r.PathCount[dest], nil
}

// PathProductMeans is PathProductMean for every reached vertex in one pass.
// Unreached vertices are absent from the result.
func (r *BFSResult) PathProductMeans(weight func(u, v string) float64) map[string]float64 {
	sums := make(map[string]float64, len(r.Order))
	sums[r.Start] = 1
	for _, v := range r.Order {
		if v == r.Start {
			continue
		}
		var s float64
		for _, u := range r.Preds[v] {
			s += sums[u] * weight(u, v)
		}
		sums[v] = s
	}
	for v, s := range sums {
		sums[v] = s / r.PathCount[v]
	}

	return sums
}
