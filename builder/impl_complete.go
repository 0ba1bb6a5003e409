// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/sigclust/core"
)

const (
	methodComplete   = "Complete"
	minCompleteNodes = 1
)

// Complete builds K_n. Each edge weight is drawn from the WeightFn, pairs
// emitted in (i asc, j asc) order.
//
// Complexity: O(n²).
func Complete(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minCompleteNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewVertices)
		}
		ids, err := addVertices(g, cfg, methodComplete, 0, n)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err = addDrawn(g, cfg, methodComplete, ids[i], ids[j], 0); err != nil {
					return err
				}
			}
		}

		return nil
	}
}

// addVertices inserts idFn(offset)..idFn(offset+n-1) and returns their IDs.
func addVertices(g *core.Graph, cfg builderConfig, method string, offset, n int) ([]string, error) {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = cfg.idFn(offset + i)
		if err := g.AddVertex(ids[i]); err != nil {
			return nil, fmt.Errorf("%s: AddVertex(%s): %w", method, ids[i], err)
		}
	}

	return ids, nil
}

// addDrawn adds u-v with the next drawn weight multiplied by sign.
// sign 0 keeps the drawn sign; ±1 forces the sign of |w|.
func addDrawn(g *core.Graph, cfg builderConfig, method, u, v string, sign float64) error {
	w, err := cfg.draw(method)
	if err != nil {
		return err
	}
	switch {
	case sign > 0 && w < 0, sign < 0 && w > 0:
		w = -w
	}
	if _, err = g.AddEdge(u, v, w); err != nil {
		return fmt.Errorf("%s: AddEdge(%s-%s, w=%g): %w", method, u, v, w, err)
	}

	return nil
}
