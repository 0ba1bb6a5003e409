// SPDX-License-Identifier: MIT

package diffusion

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/sigclust/core"
	"github.com/katalvlaran/sigclust/matrix"
)

// HeatKernel is the one-shot fallback: S = expm(T·Â) where Â is the signed
// adjacency (zero diagonal) scaled by its max absolute entry, and S is then
// scaled by max|S|. A zero T means 1.
type HeatKernel struct {
	T float64
}

var _ PartialDiffuser = HeatKernel{}

// PartialDiffuse implements PartialDiffuser.
func (h HeatKernel) PartialDiffuse(ctx context.Context, g *core.Graph, idx *core.Index) (matrix.Matrix, error) {
	if err := checkGraph(g, idx); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t := h.T
	if t == 0 {
		t = 1
	}

	adj, err := matrix.SignedAdjacency(g, idx, 0)
	if err != nil {
		return nil, fmt.Errorf("diffusion: %w", err)
	}
	a := matrix.ToGonum(adj)
	normalize(a)

	var tl, s mat.Dense
	tl.Scale(t, a)
	s.Exp(&tl)
	normalize(&s)

	out, err := matrix.FromGonum(&s)
	if err != nil {
		return nil, fmt.Errorf("diffusion: heat kernel: %w", err)
	}

	return out, nil
}
