// SPDX-License-Identifier: MIT

package cluster

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/sigclust/core"
	"github.com/katalvlaran/sigclust/kmeans"
	"github.com/katalvlaran/sigclust/matrix"
	"github.com/katalvlaran/sigclust/sparsity"
)

// Candidate is the sparsity of the k-means partition with K clusters.
type Candidate struct {
	K     int
	Score float64
}

// SearchReport describes how the cluster count was chosen.
type SearchReport struct {
	// Baseline is the sparsity of a seeded random two-label partition.
	Baseline float64

	// Candidates holds one entry per k in [KMin, KMax], ascending.
	Candidates []Candidate

	// Chosen is the selected cluster count.
	Chosen int

	// Fallback is true when no candidate beat the baseline and KMin was used.
	Fallback bool

	// Score is the sparsity of the returned assignment.
	Score float64
}

// SearchHard picks the number of clusters by sparsity and returns labels in
// [1, Chosen] for every index position.
//
// Steps:
//  1. Score a seeded random two-label baseline (diagnostic only).
//  2. For each k in [KMin, KMax], cluster the score rows and score them.
//  3. Keep the highest score, smallest k on ties. If it does not beat the
//     baseline, warn and fall back to KMin.
//  4. Cluster once more at the chosen k and shift labels by +1.
//
// Errors: ErrGraphNil, ErrBadClusterRange, ErrScoreShape,
// kmeans.ErrUnsupportedAlgorithm, sparsity.ErrNoEdges, ctx errors.
// No partial assignment is returned on error.
func SearchHard(ctx context.Context, g *core.Graph, idx *core.Index, score matrix.Matrix, opts Options) (Assignment, *SearchReport, error) {
	if g == nil {
		return nil, nil, ErrGraphNil
	}
	n := idx.Len()
	if err := checkRange(opts.KMin, opts.KMax, n); err != nil {
		return nil, nil, err
	}
	if score == nil || score.Rows() != n || score.Cols() != n {
		return nil, nil, ErrScoreShape
	}
	clusterer, err := newClusterer(opts)
	if err != nil {
		return nil, nil, err
	}
	log := opts.logger()

	baseline, err := sparsity.Score(g, idx, randomLabels(n, opts.Seed))
	if err != nil {
		return nil, nil, fmt.Errorf("cluster: baseline: %w", err)
	}

	rows := matrix.RowVectors(score)
	cands := make([]Candidate, opts.KMax-opts.KMin+1)
	eval := func(ctx context.Context, slot int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		k := opts.KMin + slot
		labels, err := clusterer.FitPredict(rows, k)
		if err != nil {
			return fmt.Errorf("cluster: k=%d: %w", k, err)
		}
		s, err := sparsity.Score(g, idx, labels)
		if err != nil {
			return fmt.Errorf("cluster: k=%d: %w", k, err)
		}
		cands[slot] = Candidate{K: k, Score: s}

		return nil
	}

	if w := opts.workers(); w > 1 {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(w)
		for slot := range cands {
			slot := slot
			eg.Go(func() error { return eval(egCtx, slot) })
		}
		if err = eg.Wait(); err != nil {
			return nil, nil, err
		}
	} else {
		for slot := range cands {
			if err = eval(ctx, slot); err != nil {
				return nil, nil, err
			}
		}
	}

	rep := &SearchReport{Baseline: baseline, Candidates: cands}
	best := cands[0]
	for _, c := range cands {
		log.Info("candidate sparsity", zap.Int("k", c.K), zap.Float64("sparsity", c.Score))
		opts.Metrics.RecordCandidate(c.K, c.Score)
		if c.Score > best.Score {
			best = c
		}
	}
	rep.Chosen = best.K
	if best.Score <= baseline {
		log.Warn("random clustering performed best, using minimum cluster count",
			zap.Float64("baseline", baseline),
			zap.Float64("best", best.Score),
			zap.Int("k", opts.KMin))
		rep.Chosen = opts.KMin
		rep.Fallback = true
	}
	opts.Metrics.RecordBaseline(baseline, rep.Fallback)

	if err = ctx.Err(); err != nil {
		return nil, nil, err
	}
	labels, err := clusterer.FitPredict(rows, rep.Chosen)
	if err != nil {
		return nil, nil, fmt.Errorf("cluster: final k=%d: %w", rep.Chosen, err)
	}
	out := make(Assignment, n)
	for i, l := range labels {
		out[i] = l + 1
	}
	if rep.Score, err = sparsity.Score(g, idx, out); err != nil {
		return nil, nil, err
	}
	log.Info("hard clustering done",
		zap.Int("k", rep.Chosen),
		zap.Float64("sparsity", rep.Score),
		zap.Float64("baseline", baseline))

	return out, rep, nil
}

// checkRange validates KMin/KMax against n vertices.
func checkRange(kMin, kMax, n int) error {
	if kMin < 2 || kMax < kMin || kMax > n {
		return fmt.Errorf("%w: min=%d max=%d vertices=%d", ErrBadClusterRange, kMin, kMax, n)
	}

	return nil
}

// newClusterer resolves opts.Algorithm in opts.Registry.
func newClusterer(opts Options) (kmeans.Clusterer, error) {
	reg := opts.Registry
	if reg == nil {
		reg = kmeans.NewRegistry()
	}
	c, err := reg.New(opts.Algorithm, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}

	return c, nil
}

// randomLabels draws n labels uniformly from {0, 1}.
func randomLabels(n int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	out := make([]int, n)
	for i := range out {
		out[i] = rng.Intn(2)
	}

	return out
}
