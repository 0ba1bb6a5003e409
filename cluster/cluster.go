// SPDX-License-Identifier: MIT

package cluster

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/sigclust/core"
	"github.com/katalvlaran/sigclust/dfs"
	"github.com/katalvlaran/sigclust/diffusion"
	"github.com/katalvlaran/sigclust/matrix"
	"github.com/katalvlaran/sigclust/metrics"
	"github.com/katalvlaran/sigclust/sparsity"
)

// AttributeKey is the vertex attribute Run writes the final label to.
const AttributeKey = "cluster"

// Stage names used for logging and metrics.
const (
	StageDiffusion = "diffusion"
	StageFallback  = "fallback"
	StageSearch    = "search"
	StageDetect    = "detect"
	StageScan      = "scan"
	StageValidate  = "validate"
)

// Result is the outcome of Run.
type Result struct {
	// Graph is the input graph, now carrying AttributeKey on every vertex.
	Graph *core.Graph

	// Index aligns Score rows and Assignment positions with vertex IDs.
	Index *core.Index

	// Score is the matrix the hard search clustered on.
	Score matrix.Matrix

	// Assignment is the final labelling; 0 marks fuzzy nodes.
	Assignment Assignment

	// Memory reports that diffusion oscillated.
	Memory bool

	Diffusion *diffusion.Result
	Search    *SearchReport

	// Detection, Scan and Flagged are set only when fuzzy refinement ran.
	Detection *Detection
	Scan      *ScanReport
	Flagged   []int

	// Fuzzy reports whether fuzzy refinement ran.
	Fuzzy bool

	// Components is the number of connected components of the graph.
	// Nodes outside an oscillator's component get resonance -1 to it.
	Components int

	RunID string
}

// Label returns the final label of vertex id.
func (r *Result) Label(id string) (int, bool) {
	i, ok := r.Index.Position(id)
	if !ok {
		return 0, false
	}

	return r.Assignment[i], true
}

// Run clusters g and writes the label of every vertex to AttributeKey.
//
// Pipeline:
//  1. Diffuse. When the process oscillated or hit the iteration cap, the
//     score matrix comes from the PartialDiffuser instead.
//  2. SearchHard on the score matrix.
//  3. If diffusion oscillated and Fuzzy is set: DetectOscillators,
//     ScanPathConflicts, ValidateRemovals; confirmed nodes get FuzzyLabel.
//
// Configuration errors (ErrOptionViolation, ErrGraphNil,
// ErrBadClusterRange, kmeans.ErrUnsupportedAlgorithm, sparsity.ErrNoEdges)
// are returned before diffusion starts; the graph is written only after
// every stage succeeded.
func Run(ctx context.Context, g *core.Graph, opts ...Option) (res *Result, err error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if g == nil {
		return nil, ErrGraphNil
	}

	runID := uuid.NewString()
	log := o.logger().With(zap.String("run_id", runID))
	o.Logger = log
	if it, ok := o.Diffuser.(*diffusion.Iterative); ok && it.Logger == nil {
		withLog := *it
		withLog.Logger = log
		o.Diffuser = &withLog
	}

	path := metrics.PathHard
	defer func() {
		if err != nil {
			o.Metrics.RecordRun(path, metrics.StatusError)
			log.Error("clustering failed", zap.Error(err))

			return
		}
		o.Metrics.RecordRun(path, metrics.StatusOK)
	}()

	idx := core.NewIndexFromGraph(g)
	if err = checkRange(o.KMin, o.KMax, idx.Len()); err != nil {
		return nil, err
	}
	if _, err = newClusterer(o); err != nil {
		return nil, err
	}
	if _, _, ok := g.MaxWeight(); !ok {
		return nil, fmt.Errorf("cluster: %w", sparsity.ErrNoEdges)
	}
	comps, err := dfs.Components(g)
	if err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}
	if len(comps) > 1 {
		log.Warn("graph is disconnected", zap.Int("components", len(comps)))
	}
	log.Info("clustering started",
		zap.Int("vertices", idx.Len()),
		zap.Int("components", len(comps)),
		zap.Int("k_min", o.KMin),
		zap.Int("k_max", o.KMax),
		zap.Bool("fuzzy", o.Fuzzy))

	start := time.Now()
	dres, err := o.Diffuser.Diffuse(ctx, g, idx, o.Limit, o.MaxIterations)
	if err != nil {
		return nil, fmt.Errorf("cluster: diffusion: %w", err)
	}
	o.Metrics.ObserveStage(StageDiffusion, time.Since(start))

	score := dres.Score
	if dres.Memory || dres.NeedsFallback {
		log.Info("diffusion did not settle, using partial diffusion",
			zap.Bool("memory", dres.Memory),
			zap.Bool("needs_fallback", dres.NeedsFallback))
		start = time.Now()
		if score, err = o.PartialDiffuser.PartialDiffuse(ctx, g, idx); err != nil {
			return nil, fmt.Errorf("cluster: partial diffusion: %w", err)
		}
		o.Metrics.ObserveStage(StageFallback, time.Since(start))
	}

	start = time.Now()
	hard, search, err := SearchHard(ctx, g, idx, score, o)
	if err != nil {
		return nil, err
	}
	o.Metrics.ObserveStage(StageSearch, time.Since(start))

	res = &Result{
		Graph:      g,
		Index:      idx,
		Score:      score,
		Assignment: hard,
		Memory:     dres.Memory,
		Diffusion:  dres,
		Search:     search,
		Components: len(comps),
		RunID:      runID,
	}

	if dres.Memory && o.Fuzzy {
		path = metrics.PathFuzzy
		if err = refine(ctx, g, idx, dres.Trajectory, res, o); err != nil {
			return nil, err
		}
	}

	for i, id := range idx.IDs() {
		if err = g.SetVertexAttribute(id, AttributeKey, res.Assignment[i]); err != nil {
			return nil, fmt.Errorf("cluster: write %q: %w", id, err)
		}
	}
	log.Info("clustering done",
		zap.Int("clusters", search.Chosen),
		zap.Int("fuzzy_nodes", len(res.Flagged)))

	return res, nil
}

// refine runs detection, scan and validation, then relabels confirmed nodes.
func refine(ctx context.Context, g *core.Graph, idx *core.Index, traj []matrix.Matrix, res *Result, o Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	det, err := DetectOscillators(traj, idx, res.Assignment, o)
	if err != nil {
		return err
	}
	o.Metrics.ObserveStage(StageDetect, time.Since(start))

	start = time.Now()
	scan, err := ScanPathConflicts(ctx, g, idx, det, res.Assignment, o)
	if err != nil {
		return err
	}
	o.Metrics.ObserveStage(StageScan, time.Since(start))

	start = time.Now()
	confirmed, err := ValidateRemovals(g, idx, scan.Flagged, res.Assignment, o)
	if err != nil {
		return err
	}
	o.Metrics.ObserveStage(StageValidate, time.Since(start))
	o.Metrics.RecordFuzzy(len(confirmed))

	res.Detection = det
	res.Scan = scan
	res.Flagged = confirmed
	res.Assignment = res.Assignment.WithFuzzy(confirmed)
	res.Fuzzy = true

	return nil
}
