// SPDX-License-Identifier: MIT

package cluster

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/sigclust/core"
	"github.com/katalvlaran/sigclust/sparsity"
)

// ValidateRemovals returns the subset of flagged positions confirmed as
// fuzzy. A node stays flagged when no single reassignment to another
// ordinary label present in a scores above baseline − opts.RemovalDelta,
// where baseline is the sparsity of a itself. Nodes with no alternative
// label stay flagged.
//
// a is not modified; the result is ascending and duplicate-free, so
// re-validating the result against the same assignment returns it unchanged.
func ValidateRemovals(g *core.Graph, idx *core.Index, flagged []int, a Assignment, opts Options) ([]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	n := idx.Len()
	if len(a) != n {
		return nil, fmt.Errorf("%w: %d != %d", ErrAssignmentLength, len(a), n)
	}
	nodes := dedupSorted(flagged)
	if len(nodes) == 0 {
		return []int{}, nil
	}
	for _, t := range nodes {
		if t < 0 || t >= n {
			return nil, fmt.Errorf("%w: %d", ErrNodeOutOfRange, t)
		}
	}

	baseline, err := sparsity.Score(g, idx, a)
	if err != nil {
		return nil, fmt.Errorf("cluster: removal baseline: %w", err)
	}
	labels := a.Labels()
	limit := baseline - opts.RemovalDelta
	trial := a.Clone()
	confirmed := make([]int, 0, len(nodes))
	for _, t := range nodes {
		own := a[t]
		bestAlt, tried := 0.0, false
		for _, l := range labels {
			if l == FuzzyLabel || l == own {
				continue
			}
			trial[t] = l
			s, err := sparsity.Score(g, idx, trial)
			if err != nil {
				return nil, fmt.Errorf("cluster: removal trial: %w", err)
			}
			if !tried || s > bestAlt {
				bestAlt, tried = s, true
			}
		}
		trial[t] = own
		if !tried || bestAlt <= limit {
			confirmed = append(confirmed, t)
		}
	}

	opts.logger().Info("fuzzy nodes confirmed",
		zap.Float64("baseline", baseline),
		zap.Strings("nodes", positionsToIDs(idx, confirmed)))

	return confirmed, nil
}

func dedupSorted(in []int) []int {
	out := make([]int, len(in))
	copy(out, in)
	sort.Ints(out)
	w := 0
	for i, v := range out {
		if i > 0 && v == out[i-1] {
			continue
		}
		out[w] = v
		w++
	}

	return out[:w]
}
