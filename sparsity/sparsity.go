// SPDX-License-Identifier: MIT

// Package sparsity scores a partition of a signed graph.
//
// Each non-loop edge contributes ±1/|E|, where |E| counts non-loop edges:
//
//	inside a cluster: -1/|E| if w < 0, else +1/|E|
//	cut edge:         -1/|E| if w > 0, else +1/|E|
//
// The score therefore lies in [-1, 1]. +1 means every positive edge is kept
// inside a cluster and every negative edge is cut. Labels are opaque group
// identifiers: label 0 is scored as a group like any other.
//
// Edges are undirected, so the result does not depend on the orientation an
// edge was inserted with, nor on the order edges are visited.
package sparsity

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/sigclust/core"
)

var (
	// ErrNoEdges is returned when the graph has no non-loop edge.
	ErrNoEdges = errors.New("sparsity: graph has no edges")

	// ErrLabelsLength is returned when the label vector does not match the index.
	ErrLabelsLength = errors.New("sparsity: labels length does not match index")

	// ErrUnknownVertex is returned when an edge endpoint is missing from the index.
	ErrUnknownVertex = errors.New("sparsity: edge endpoint not indexed")

	// ErrGraphNil is returned for a nil graph.
	ErrGraphNil = errors.New("sparsity: graph is nil")
)

// Score returns the signed sparsity of labels over g.
// labels[i] is the group of idx.ID(i).
//
// Complexity: O(E).
func Score(g *core.Graph, idx *core.Index, labels []int) (float64, error) {
	if g == nil {
		return 0, ErrGraphNil
	}
	if len(labels) != idx.Len() {
		return 0, fmt.Errorf("%w: %d labels, %d vertices", ErrLabelsLength, len(labels), idx.Len())
	}

	var sum, total int
	for _, e := range g.Edges() {
		if e.IsLoop() {
			continue
		}
		i, okI := idx.Position(e.From)
		j, okJ := idx.Position(e.To)
		if !okI || !okJ {
			return 0, fmt.Errorf("%w: edge %s (%s, %s)", ErrUnknownVertex, e.ID, e.From, e.To)
		}
		total++
		sum += contribution(labels[i] == labels[j], e.Weight)
	}
	if total == 0 {
		return 0, ErrNoEdges
	}

	return float64(sum) / float64(total), nil
}

// contribution is the signed unit for one edge.
func contribution(inside bool, w float64) int {
	if inside {
		if w < 0 {
			return -1
		}

		return 1
	}
	if w > 0 {
		return -1
	}

	return 1
}

// ScoreInduced computes Score by extracting every cluster's induced subgraph
// and treating the remaining edges as cut. It is slower than Score, O(k·(V+E)),
// and exists as an independent formulation of the same quantity.
func ScoreInduced(g *core.Graph, idx *core.Index, labels []int) (float64, error) {
	if g == nil {
		return 0, ErrGraphNil
	}
	if len(labels) != idx.Len() {
		return 0, fmt.Errorf("%w: %d labels, %d vertices", ErrLabelsLength, len(labels), idx.Len())
	}

	members := make(map[int]map[string]bool)
	for i, l := range labels {
		if members[l] == nil {
			members[l] = make(map[string]bool)
		}
		members[l][idx.ID(i)] = true
	}

	inside := make(map[string]bool)
	var sum int
	for _, keep := range members {
		sub := core.InducedSubgraph(g, keep)
		for _, e := range sub.Edges() {
			if e.IsLoop() {
				continue
			}
			inside[e.ID] = true
			sum += contribution(true, e.Weight)
		}
	}

	var total int
	for _, e := range g.Edges() {
		if e.IsLoop() {
			continue
		}
		if _, ok := idx.Position(e.From); !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownVertex, e.From)
		}
		if _, ok := idx.Position(e.To); !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownVertex, e.To)
		}
		total++
		if !inside[e.ID] {
			sum += contribution(false, e.Weight)
		}
	}
	if total == 0 {
		return 0, ErrNoEdges
	}

	return float64(sum) / float64(total), nil
}
