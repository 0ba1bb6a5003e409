// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/sigclust/core"
)

const (
	methodPath    = "Path"
	methodCycle   = "Cycle"
	minPathNodes  = 2
	minCycleNodes = 3
)

// Path builds P_n: 0-1, 1-2, ..., (n-2)-(n-1), weights from the WeightFn.
func Path(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}

		return chain(g, cfg, methodPath, n, false)
	}
}

// Cycle builds C_n: Path(n) plus the closing edge (n-1)-0.
func Cycle(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}

		return chain(g, cfg, methodCycle, n, true)
	}
}

func chain(g *core.Graph, cfg builderConfig, method string, n int, closed bool) error {
	ids, err := addVertices(g, cfg, method, 0, n)
	if err != nil {
		return err
	}
	for i := 1; i < n; i++ {
		if err = addDrawn(g, cfg, method, ids[i-1], ids[i], 0); err != nil {
			return err
		}
	}
	if closed {
		return addDrawn(g, cfg, method, ids[n-1], ids[0], 0)
	}

	return nil
}
