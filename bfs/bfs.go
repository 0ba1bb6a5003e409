// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/sigclust/core"
)

// queueItem pairs a vertex ID with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph *core.Graph
	opts  BFSOptions
	ctx   context.Context
	queue []queueItem
	res   *BFSResult
}

// BFS runs breadth-first search on g starting from startID.
// Edge weights are ignored; self-loops are never followed.
// Returns ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation,
// a context error, or any OnVisit hook error.
func BFS(g *core.Graph, startID string, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}

	n := g.VertexCount()
	w := &walker{
		graph: g,
		opts:  o,
		ctx:   o.Ctx,
		queue: make([]queueItem, 0, n),
		res: &BFSResult{
			Start:     startID,
			Order:     make([]string, 0, n),
			Depth:     make(map[string]int, n),
			Parent:    make(map[string]string, n),
			Preds:     make(map[string][]string, n),
			PathCount: make(map[string]float64, n),
		},
	}

	w.res.Depth[startID] = 0
	w.res.PathCount[startID] = 1
	w.queue = append(w.queue, queueItem{id: startID})

	return w.res, w.loop()
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
		}
		if err := w.relax(item); err != nil {
			return err
		}
	}

	return nil
}

// relax discovers unseen neighbors and extends the shortest-path DAG.
// A neighbor at depth+1 that was already discovered gains item as an extra
// predecessor; its path count accumulates before it is dequeued, since all
// vertices at depth d are dequeued before any at depth d+1.
func (w *walker) relax(item queueItem) error {
	neighbors, err := w.graph.NeighborIDs(item.id)
	if err != nil {
		return fmt.Errorf("bfs: neighbors of %q: %w", item.id, err)
	}
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	for _, nbr := range neighbors {
		if !w.opts.FilterNeighbor(item.id, nbr) {
			continue
		}
		d, seen := w.res.Depth[nbr]
		switch {
		case !seen:
			w.res.Depth[nbr] = next
			w.res.Parent[nbr] = item.id
			w.res.Preds[nbr] = []string{item.id}
			w.res.PathCount[nbr] = w.res.PathCount[item.id]
			w.queue = append(w.queue, queueItem{id: nbr, depth: next})
		case d == next:
			w.res.Preds[nbr] = append(w.res.Preds[nbr], item.id)
			w.res.PathCount[nbr] += w.res.PathCount[item.id]
		}
	}

	return nil
}
