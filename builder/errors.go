// SPDX-License-Identifier: MIT

package builder

import "errors"

var (
	// ErrTooFewVertices indicates a size parameter below the topology minimum.
	ErrTooFewVertices = errors.New("builder: parameter too small")

	// ErrInvalidProbability indicates a probability outside [0, 1].
	ErrInvalidProbability = errors.New("builder: probability out of range")

	// ErrNeedRandSource indicates a stochastic constructor ran without an RNG.
	ErrNeedRandSource = errors.New("builder: rng is required")

	// ErrConstructFailed indicates a nil graph or constructor.
	ErrConstructFailed = errors.New("builder: construction failed")

	// ErrBadWeight indicates a weight function returned zero or a non-finite value.
	ErrBadWeight = errors.New("builder: weight must be finite and non-zero")
)
