// SPDX-License-Identifier: MIT

package diffusion

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/sigclust/core"
	"github.com/katalvlaran/sigclust/matrix"
)

// DefaultTrajectoryLength is the number of matrices captured once an
// oscillation is detected.
const DefaultTrajectoryLength = 5

// stallLimit is the number of consecutive non-decreasing errors that marks
// a memory effect.
const stallLimit = 2

// Iterative propagates the normalized signed adjacency through itself:
//
//	A ← adj(g) with SelfWeight on the diagonal, A ← A / max|A|
//	M₀ = A;  Mₜ₊₁ = Mₜ·A / max|Mₜ·A|
//
// The step error is the mean relative change (in percent) over the entries
// that were nonzero in Mₜ. The process settles once the error drops below
// the limit. When the error fails to decrease stallLimit times in a row the
// process is oscillating: the next TrajectoryLength iterates are captured and
// Memory is reported.
type Iterative struct {
	SelfWeight       float64
	TrajectoryLength int
	Logger           *zap.Logger
}

// NewIterative returns an Iterative with SelfWeight 1 and the default
// trajectory length.
func NewIterative(logger *zap.Logger) *Iterative {
	return &Iterative{SelfWeight: 1, TrajectoryLength: DefaultTrajectoryLength, Logger: logger}
}

var _ Diffuser = (*Iterative)(nil)

// Diffuse implements Diffuser.
func (d *Iterative) Diffuse(ctx context.Context, g *core.Graph, idx *core.Index, limit float64, iterations int) (*Result, error) {
	if err := checkGraph(g, idx); err != nil {
		return nil, err
	}
	if !(limit > 0) {
		return nil, fmt.Errorf("%w: %v", ErrBadLimit, limit)
	}
	if iterations <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadIterations, iterations)
	}
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	trajLen := d.TrajectoryLength
	if trajLen <= 0 {
		trajLen = DefaultTrajectoryLength
	}

	adj, err := matrix.SignedAdjacency(g, idx, d.SelfWeight)
	if err != nil {
		return nil, fmt.Errorf("diffusion: %w", err)
	}
	a := matrix.ToGonum(adj)
	normalize(a)

	cur := mat.DenseCopyOf(a)
	prevErr := math.Inf(1)
	stalls := 0
	res := &Result{}
	for res.Iterations < iterations {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		next := step(cur, a)
		res.Iterations++
		e := relativeError(cur, next)
		log.Debug("diffusion step",
			zap.Int("iteration", res.Iterations),
			zap.Float64("error", e))
		cur = next

		if e < limit {
			res.Score, err = matrix.FromGonum(cur)
			if err != nil {
				return nil, err
			}

			return res, nil
		}
		if e >= prevErr {
			stalls++
		} else {
			stalls = 0
		}
		prevErr = e

		if stalls >= stallLimit {
			log.Debug("diffusion memory effect", zap.Int("iteration", res.Iterations))
			res.Memory = true
			res.Trajectory = make([]matrix.Matrix, 0, trajLen)
			for len(res.Trajectory) < trajLen {
				if err = ctx.Err(); err != nil {
					return nil, err
				}
				cur = step(cur, a)
				m, err := matrix.FromGonum(cur)
				if err != nil {
					return nil, err
				}
				res.Trajectory = append(res.Trajectory, m)
			}
			res.Score = res.Trajectory[len(res.Trajectory)-1]

			return res, nil
		}
	}

	log.Debug("diffusion hit iteration cap", zap.Int("iterations", iterations))
	res.NeedsFallback = true
	res.Score, err = matrix.FromGonum(cur)
	if err != nil {
		return nil, err
	}

	return res, nil
}

// step returns cur·a normalized by its max absolute entry.
func step(cur, a *mat.Dense) *mat.Dense {
	var next mat.Dense
	next.Mul(cur, a)
	normalize(&next)

	return &next
}

// normalize divides m by max|m| in place; an all-zero matrix is left as is.
func normalize(m *mat.Dense) {
	r, c := m.Dims()
	var hi float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := math.Abs(m.At(i, j)); v > hi {
				hi = v
			}
		}
	}
	if hi > 0 {
		m.Scale(1/hi, m)
	}
}

// relativeError is the mean of |next-prev|/|prev| ×100 over entries where
// prev is nonzero. Returns 0 when prev is all zero.
func relativeError(prev, next *mat.Dense) float64 {
	r, c := prev.Dims()
	var sum float64
	var n int
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			p := prev.At(i, j)
			if p == 0 {
				continue
			}
			sum += math.Abs(next.At(i, j)-p) / math.Abs(p)
			n++
		}
	}
	if n == 0 {
		return 0
	}

	return sum / float64(n) * 100
}
