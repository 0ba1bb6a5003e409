// SPDX-License-Identifier: MIT

package dfs

import (
	"context"
	"errors"
)

var (
	// ErrGraphNil is returned when DFS is called with a nil graph.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartVertexNotFound is returned when the start vertex does not exist.
	ErrStartVertexNotFound = errors.New("dfs: start vertex not found")
)

// Option configures a traversal.
type Option func(*DFSOptions)

// DFSOptions holds traversal settings.
type DFSOptions struct {
	// Ctx cancels the traversal.
	Ctx context.Context

	// OnVisit runs when a vertex is discovered.
	OnVisit func(id string) error

	// OnExit runs after all descendants of a vertex are finished.
	OnExit func(id string) error

	// MaxDepth stops descending below this depth; negative means no limit.
	MaxDepth int

	// FilterNeighbor returns false to skip a neighbor.
	FilterNeighbor func(id string) bool

	// FullTraversal restarts from every unvisited vertex.
	FullTraversal bool
}

// DefaultOptions returns a background context, no hooks, no depth limit.
func DefaultOptions() DFSOptions {
	return DFSOptions{
		Ctx:      context.Background(),
		MaxDepth: -1,
	}
}

// WithContext sets the cancellation context. nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *DFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit sets the pre-order hook.
func WithOnVisit(fn func(id string) error) Option {
	return func(o *DFSOptions) { o.OnVisit = fn }
}

// WithOnExit sets the post-order hook.
func WithOnExit(fn func(id string) error) Option {
	return func(o *DFSOptions) { o.OnExit = fn }
}

// WithMaxDepth limits the traversal depth.
func WithMaxDepth(limit int) Option {
	return func(o *DFSOptions) { o.MaxDepth = limit }
}

// WithFilterNeighbor skips neighbors for which fn returns false.
func WithFilterNeighbor(fn func(id string) bool) Option {
	return func(o *DFSOptions) { o.FilterNeighbor = fn }
}

// WithFullTraversal covers every component, ignoring startID.
func WithFullTraversal() Option {
	return func(o *DFSOptions) { o.FullTraversal = true }
}

// DFSResult captures the outcome of a depth-first traversal.
type DFSResult struct {
	// Order records vertices in finish (post-order) sequence.
	Order []string

	// Depth maps each vertex to its depth in its DFS tree.
	Depth map[string]int

	// Parent maps each non-root vertex to the vertex it was discovered from.
	Parent map[string]string

	// Visited flags reached vertices.
	Visited map[string]bool

	// Tree maps each vertex to the index of the DFS tree that reached it.
	// With FullTraversal on an undirected graph, trees are connected components.
	Tree map[string]int

	// Trees is the number of DFS trees grown.
	Trees int

	// SkippedNeighbors counts neighbors rejected by FilterNeighbor.
	SkippedNeighbors int
}
