// SPDX-License-Identifier: MIT

package cluster

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/sigclust/bfs"
	"github.com/katalvlaran/sigclust/core"
)

// ScanReport is the outcome of ScanPathConflicts. All position lists are
// ascending.
type ScanReport struct {
	// Flagged is the union of the three rule lists.
	Flagged []int

	// SignConflict: resonance to the own oscillator has the same sign as to
	// the anti-correlated one, or the latter is zero.
	SignConflict []int

	// Negative: resonance to the own oscillator is negative.
	Negative []int

	// Weak: resonance to the own oscillator lies inside the ambiguity band.
	Weak []int

	// Resonance maps each core oscillator to its per-position resonance.
	Resonance map[int][]float64

	// Unreachable maps each core oscillator to the positions it cannot reach.
	Unreachable map[int][]int
}

// unreachableResonance is the resonance assigned when no path exists.
const unreachableResonance = -1.0

// ScanPathConflicts flags nodes whose path resonance to their cluster's
// oscillator contradicts the assignment.
//
// Edge weights are normalized by the largest weight (by the largest absolute
// weight when no weight is positive). The resonance of t to an oscillator o
// is the mean, over all hop-shortest paths o→t, of the product of normalized
// weights along the path; 1 for t == o and −1 when t is unreachable.
//
// For node t in cluster c with oscillator o = ClusterOscillator[c] and
// o' = ClusterOscillator[Anti[c]], t is flagged when
//
//	(a) sign(r(t,o)) == sign(r(t,o')) or r(t,o') == 0
//	(b) r(t,o) < 0
//	(c) -AmbiguityThreshold < r(t,o) < AmbiguityThreshold
//
// A rule whose oscillator is missing is skipped for that node.
func ScanPathConflicts(ctx context.Context, g *core.Graph, idx *core.Index, det *Detection, a Assignment, opts Options) (*ScanReport, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	n := idx.Len()
	if len(a) != n {
		return nil, fmt.Errorf("%w: %d != %d", ErrAssignmentLength, len(a), n)
	}
	rep := &ScanReport{
		Resonance:   make(map[int][]float64),
		Unreachable: make(map[int][]int),
	}
	if det.Empty() {
		return rep, nil
	}
	log := opts.logger()

	weight := normalizedWeight(g)
	oscs := det.Oscillators
	profiles := make([][]float64, len(oscs))
	missing := make([][]int, len(oscs))
	run := func(ctx context.Context, slot int) error {
		o := oscs[slot]
		res, err := bfs.BFS(g, idx.ID(o), bfs.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("cluster: paths from %q: %w", idx.ID(o), err)
		}
		means := res.PathProductMeans(weight)
		prof := make([]float64, n)
		for t := 0; t < n; t++ {
			v, ok := means[idx.ID(t)]
			if !ok {
				v = unreachableResonance
				missing[slot] = append(missing[slot], t)
			}
			prof[t] = v
		}
		profiles[slot] = prof

		return nil
	}

	if w := opts.workers(); w > 1 {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(w)
		for slot := range oscs {
			slot := slot
			eg.Go(func() error { return run(egCtx, slot) })
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	} else {
		for slot := range oscs {
			if err := run(ctx, slot); err != nil {
				return nil, err
			}
		}
	}

	for slot, o := range oscs {
		rep.Resonance[o] = profiles[slot]
		if len(missing[slot]) == 0 {
			continue
		}
		rep.Unreachable[o] = missing[slot]
		for _, t := range missing[slot] {
			log.Warn("could not find shortest path",
				zap.String("oscillator", idx.ID(o)),
				zap.String("target", idx.ID(t)))
			opts.Metrics.RecordUnreachable()
		}
	}

	flagged := make([]bool, n)
	thr := opts.AmbiguityThreshold
	for t := 0; t < n; t++ {
		c := a[t]
		o, ok := det.ClusterOscillator[c]
		if !ok {
			continue
		}
		r := rep.Resonance[o][t]
		if anti, ok := det.Anti[c]; ok {
			if oAnti, ok := det.ClusterOscillator[anti]; ok {
				rAnti := rep.Resonance[oAnti][t]
				if sign(r) == sign(rAnti) || rAnti == 0 {
					rep.SignConflict = append(rep.SignConflict, t)
					flagged[t] = true
				}
			}
		}
		if r < 0 {
			rep.Negative = append(rep.Negative, t)
			flagged[t] = true
		}
		if -thr < r && r < thr {
			rep.Weak = append(rep.Weak, t)
			flagged[t] = true
		}
	}
	for t, f := range flagged {
		if f {
			rep.Flagged = append(rep.Flagged, t)
		}
	}

	log.Info("path conflicts",
		zap.Strings("negative", positionsToIDs(idx, rep.Negative)),
		zap.Strings("weak", positionsToIDs(idx, rep.Weak)),
		zap.Strings("sign_conflict", positionsToIDs(idx, rep.SignConflict)))

	return rep, nil
}

// normalizedWeight returns a symmetric weight lookup scaled by the largest
// edge weight, falling back to the largest absolute weight and then to 1.
func normalizedWeight(g *core.Graph) func(u, v string) float64 {
	maxW, maxAbs, _ := g.MaxWeight()
	scale := maxW
	if scale <= 0 {
		scale = maxAbs
	}
	if scale == 0 {
		scale = 1
	}

	return func(u, v string) float64 {
		w, err := g.Weight(u, v)
		if err != nil {
			return 0
		}

		return w / scale
	}
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
