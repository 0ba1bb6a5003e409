// SPDX-License-Identifier: MIT

package dfs

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/sigclust/core"
)

// frame is one entry of the explicit DFS stack.
type frame struct {
	id    string
	depth int
	nbs   []string
	next  int
}

// dfsWalker encapsulates state during DFS.
type dfsWalker struct {
	graph *core.Graph
	opts  DFSOptions
	res   *DFSResult
}

// DFS performs depth-first search on g from startID, or over every component
// when WithFullTraversal is set. On a hook or context error the partial
// result is returned together with the error.
func DFS(g *core.Graph, startID string, opts ...Option) (*DFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if !o.FullTraversal && !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}

	vertices := g.Vertices()
	w := &dfsWalker{
		graph: g,
		opts:  o,
		res: &DFSResult{
			Order:   make([]string, 0, len(vertices)),
			Depth:   make(map[string]int, len(vertices)),
			Parent:  make(map[string]string, len(vertices)),
			Visited: make(map[string]bool, len(vertices)),
			Tree:    make(map[string]int, len(vertices)),
		},
	}

	if !o.FullTraversal {
		return w.res, w.tree(startID)
	}
	for _, v := range vertices {
		if w.res.Visited[v] {
			continue
		}
		if err := w.tree(v); err != nil {
			return w.res, err
		}
	}

	return w.res, nil
}

// tree grows one DFS tree from root.
func (w *dfsWalker) tree(root string) error {
	treeID := w.res.Trees
	w.res.Trees++

	stack := make([]*frame, 0, 16)
	push := func(id string, depth int) error {
		if err := w.opts.Ctx.Err(); err != nil {
			return err
		}
		w.res.Visited[id] = true
		w.res.Depth[id] = depth
		w.res.Tree[id] = treeID
		if w.opts.OnVisit != nil {
			if err := w.opts.OnVisit(id); err != nil {
				return fmt.Errorf("dfs: OnVisit hook for %q: %w", id, err)
			}
		}
		nbs, err := w.graph.NeighborIDs(id)
		if err != nil {
			return fmt.Errorf("dfs: NeighborIDs(%q): %w", id, err)
		}
		stack = append(stack, &frame{id: id, depth: depth, nbs: nbs})

		return nil
	}

	if err := push(root, 0); err != nil {
		return err
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next < len(top.nbs) && (w.opts.MaxDepth < 0 || top.depth < w.opts.MaxDepth) {
			nid := top.nbs[top.next]
			top.next++
			if w.opts.FilterNeighbor != nil && !w.opts.FilterNeighbor(nid) {
				w.res.SkippedNeighbors++

				continue
			}
			if w.res.Visited[nid] {
				continue
			}
			w.res.Parent[nid] = top.id
			if err := push(nid, top.depth+1); err != nil {
				return err
			}

			continue
		}

		stack = stack[:len(stack)-1]
		if w.opts.OnExit != nil {
			if err := w.opts.OnExit(top.id); err != nil {
				return fmt.Errorf("dfs: OnExit hook for %q: %w", top.id, err)
			}
		}
		w.res.Order = append(w.res.Order, top.id)
	}

	return nil
}

// Components returns the connected components of g. Each component is
// sorted; components are ordered by their smallest ID. Self-loops do not
// connect anything.
func Components(g *core.Graph) ([][]string, error) {
	res, err := DFS(g, "", WithFullTraversal())
	if err != nil {
		return nil, err
	}
	out := make([][]string, res.Trees)
	for id, t := range res.Tree {
		out[t] = append(out[t], id)
	}
	for _, c := range out {
		sort.Strings(c)
	}

	return out, nil
}
