// SPDX-License-Identifier: MIT

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors.
// It is passed by value to constructors.
type builderConfig struct {
	// idFn maps a global vertex index to its ID.
	idFn IDFn
	// rng drives stochastic constructors; nil means no randomness.
	rng *rand.Rand
	// weightFn draws one edge weight.
	weightFn WeightFn
}

// newBuilderConfig applies opts over the deterministic defaults:
// DefaultIDFn, no RNG, DefaultWeightFn. Later options win.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:     DefaultIDFn,
		weightFn: DefaultWeightFn,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
