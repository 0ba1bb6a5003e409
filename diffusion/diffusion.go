// SPDX-License-Identifier: MIT

// Package diffusion produces the score matrix that the hard search clusters
// on, together with the convergence signals that route the pipeline.
//
// Two collaborators are defined by interface:
//
//   - Diffuser runs an iterative process and reports whether it settled,
//     oscillated (Memory, with a captured Trajectory) or ran out of iterations
//     (NeedsFallback).
//   - PartialDiffuser produces a best-effort score matrix in one shot and is
//     used whenever the iterative process did not settle.
//
// Iterative and HeatKernel are the default implementations; both build on
// gonum/mat for the numeric kernels.
package diffusion

import (
	"context"
	"errors"

	"github.com/katalvlaran/sigclust/core"
	"github.com/katalvlaran/sigclust/matrix"
)

var (
	// ErrGraphNil is returned for a nil graph.
	ErrGraphNil = errors.New("diffusion: graph is nil")

	// ErrEmptyGraph is returned for a graph without vertices.
	ErrEmptyGraph = errors.New("diffusion: graph has no vertices")

	// ErrBadLimit is returned for a non-positive convergence limit.
	ErrBadLimit = errors.New("diffusion: convergence limit must be > 0")

	// ErrBadIterations is returned for a non-positive iteration cap.
	ErrBadIterations = errors.New("diffusion: iterations must be > 0")
)

// Result carries the outcome of an iterative diffusion.
type Result struct {
	// Score is the last iterate, aligned with the index.
	Score matrix.Matrix

	// Memory reports an oscillation; Trajectory is then populated.
	Memory bool

	// NeedsFallback reports that the iteration cap was hit without settling.
	NeedsFallback bool

	// Trajectory holds the matrices captured after oscillation was detected.
	Trajectory []matrix.Matrix

	// Iterations is the number of steps performed before stopping.
	Iterations int
}

// Diffuser runs the primary, iterative diffusion.
type Diffuser interface {
	Diffuse(ctx context.Context, g *core.Graph, idx *core.Index, limit float64, iterations int) (*Result, error)
}

// PartialDiffuser produces a one-shot fallback score matrix.
type PartialDiffuser interface {
	PartialDiffuse(ctx context.Context, g *core.Graph, idx *core.Index) (matrix.Matrix, error)
}

func checkGraph(g *core.Graph, idx *core.Index) error {
	if g == nil {
		return ErrGraphNil
	}
	if idx.Len() == 0 {
		return ErrEmptyGraph
	}

	return nil
}
