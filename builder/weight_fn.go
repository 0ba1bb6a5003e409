// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultEdgeWeight is the weight DefaultWeightFn returns.
const DefaultEdgeWeight float64 = 1

// WeightFn draws one edge weight. rng may be nil.
type WeightFn func(rng *rand.Rand) float64

// DefaultWeightFn always returns DefaultEdgeWeight.
func DefaultWeightFn(_ *rand.Rand) float64 {
	return DefaultEdgeWeight
}

// ConstantWeightFn always returns value. Panics on zero or non-finite value,
// since a zero weight carries no sign.
func ConstantWeightFn(value float64) WeightFn {
	if value == 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		panic(fmt.Sprintf("ConstantWeightFn: value must be finite and non-zero, got %g", value))
	}

	return func(_ *rand.Rand) float64 { return value }
}

// UniformWeightFn draws from U[min, max). Without an RNG it returns the
// midpoint. Panics if max < min.
func UniformWeightFn(min, max float64) WeightFn {
	if max < min {
		panic(fmt.Sprintf("UniformWeightFn: require min ≤ max, got min=%g, max=%g", min, max))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil || max == min {
			return (min + max) / 2
		}

		return min + rng.Float64()*(max-min)
	}
}

// draw returns the next weight and rejects zero and non-finite values.
func (c builderConfig) draw(method string) (float64, error) {
	w := c.weightFn(c.rng)
	if w == 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, fmt.Errorf("%s: weight %g: %w", method, w, ErrBadWeight)
	}

	return w, nil
}
