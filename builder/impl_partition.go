// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/sigclust/core"
)

const (
	methodPlanted   = "PlantedPartition"
	methodFlipSigns = "FlipSigns"
	minBlockSize    = 1
	probMin         = 0.0
	probMax         = 1.0
)

// PlantedPartition builds a signed stochastic block model. Vertices are
// numbered block by block: block b holds indices sizes[0]+...+sizes[b-1]
// onward. Each pair inside a block is joined with probability pIn by a
// positive edge; each pair across blocks with probability pOut by a
// negative edge. Magnitudes come from the WeightFn.
//
// An RNG is required unless both probabilities are 0 or 1.
//
// Complexity: O(n²) pair checks for n = Σ sizes.
func PlantedPartition(sizes []int, pIn, pOut float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if len(sizes) == 0 {
			return fmt.Errorf("%s: no blocks: %w", methodPlanted, ErrTooFewVertices)
		}
		for b, s := range sizes {
			if s < minBlockSize {
				return fmt.Errorf("%s: block %d size=%d < min=%d: %w", methodPlanted, b, s, minBlockSize, ErrTooFewVertices)
			}
		}
		for _, p := range []float64{pIn, pOut} {
			if p < probMin || p > probMax {
				return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w", methodPlanted, p, probMin, probMax, ErrInvalidProbability)
			}
		}
		if cfg.rng == nil && (fractional(pIn) || fractional(pOut)) {
			return fmt.Errorf("%s: %w", methodPlanted, ErrNeedRandSource)
		}

		block := blockIndex(sizes)
		ids, err := addVertices(g, cfg, methodPlanted, 0, len(block))
		if err != nil {
			return err
		}
		for i := range ids {
			for j := i + 1; j < len(ids); j++ {
				p, sign := pOut, -1.0
				if block[i] == block[j] {
					p, sign = pIn, 1.0
				}
				if !cfg.hit(p) {
					continue
				}
				if err = addDrawn(g, cfg, methodPlanted, ids[i], ids[j], sign); err != nil {
					return err
				}
			}
		}

		return nil
	}
}

// FlipSigns negates each existing non-loop edge with probability p,
// visiting edges in ID order.
func FlipSigns(p float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if p < probMin || p > probMax {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w", methodFlipSigns, p, probMin, probMax, ErrInvalidProbability)
		}
		if cfg.rng == nil && fractional(p) {
			return fmt.Errorf("%s: %w", methodFlipSigns, ErrNeedRandSource)
		}
		for _, e := range g.Edges() {
			if e.IsLoop() || !cfg.hit(p) {
				continue
			}
			from, to, w := e.From, e.To, e.Weight
			if err := g.RemoveEdge(e.ID); err != nil {
				return fmt.Errorf("%s: RemoveEdge(%s): %w", methodFlipSigns, e.ID, err)
			}
			if _, err := g.AddEdge(from, to, -w); err != nil {
				return fmt.Errorf("%s: AddEdge(%s-%s): %w", methodFlipSigns, from, to, err)
			}
		}

		return nil
	}
}

// PartitionLabels returns the planted block (1-based) of every vertex of
// PlantedPartition(sizes, ...), aligned with idx. Vertices of idx that the
// partition did not create get label 0.
func PartitionLabels(idx *core.Index, sizes []int, opts ...BuilderOption) []int {
	cfg := newBuilderConfig(opts...)
	labels := make([]int, idx.Len())
	for i, b := range blockIndex(sizes) {
		if pos, ok := idx.Position(cfg.idFn(i)); ok {
			labels[pos] = b + 1
		}
	}

	return labels
}

// blockIndex expands sizes into a per-vertex block number.
func blockIndex(sizes []int) []int {
	var out []int
	for b, s := range sizes {
		for k := 0; k < s; k++ {
			out = append(out, b)
		}
	}

	return out
}

func fractional(p float64) bool { return p > probMin && p < probMax }

// hit reports a Bernoulli(p) success. p of 0 or 1 never consumes the RNG.
func (c builderConfig) hit(p float64) bool {
	switch {
	case p <= probMin:
		return false
	case p >= probMax:
		return true
	default:
		return c.rng.Float64() < p
	}
}
