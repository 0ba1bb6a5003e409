// SPDX-License-Identifier: MIT

package cluster

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/sigclust/diffusion"
	"github.com/katalvlaran/sigclust/kmeans"
	"github.com/katalvlaran/sigclust/logging"
	"github.com/katalvlaran/sigclust/metrics"
)

// Default parameter values.
const (
	DefaultLimit              = 2.0
	DefaultKMin               = 2
	DefaultKMax               = 4
	DefaultMaxIterations      = 20
	DefaultAmbiguityThreshold = 0.8
	DefaultAmplitudeThreshold = 0.5
	DefaultRemovalDelta       = 0.3
	DefaultSeed               = 42
)

// Option configures a clustering run via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation by Run.
type Option func(*Options)

// Options holds every tunable of the pipeline. Stage functions take Options
// by value; Run builds it from DefaultOptions and the supplied Option list.
type Options struct {
	// Limit is the diffusion convergence limit (percent error).
	Limit float64

	// KMin and KMax bound the candidate cluster counts.
	KMin, KMax int

	// MaxIterations caps the diffusion loop.
	MaxIterations int

	// AmbiguityThreshold flags nodes whose resonance to their own
	// oscillator lies strictly inside (-t, t).
	AmbiguityThreshold float64

	// AmplitudeThreshold is the minimum self-amplitude of an oscillator candidate.
	AmplitudeThreshold float64

	// RemovalDelta is how far below the baseline the best reassignment must
	// stay for a flagged node to be confirmed fuzzy.
	RemovalDelta float64

	// Algorithm names the clusterer in Registry.
	Algorithm string

	// Fuzzy enables oscillator-based refinement.
	Fuzzy bool

	// Seed drives the baseline and the clusterer.
	Seed int64

	// Workers > 1 parallelizes the k sweep and the per-oscillator paths.
	Workers int

	Logger          *zap.Logger
	Metrics         *metrics.Registry
	Diffuser        diffusion.Diffuser
	PartialDiffuser diffusion.PartialDiffuser
	Registry        *kmeans.Registry

	err error
}

// DefaultOptions returns the documented defaults with a no-op logger,
// no metrics, the iterative and heat-kernel diffusers and the built-in
// k-means registry.
func DefaultOptions() Options {
	return Options{
		Limit:              DefaultLimit,
		KMin:               DefaultKMin,
		KMax:               DefaultKMax,
		MaxIterations:      DefaultMaxIterations,
		AmbiguityThreshold: DefaultAmbiguityThreshold,
		AmplitudeThreshold: DefaultAmplitudeThreshold,
		RemovalDelta:       DefaultRemovalDelta,
		Algorithm:          kmeans.AlgorithmKMeans,
		Fuzzy:              true,
		Seed:               DefaultSeed,
		Workers:            1,
		Logger:             zap.NewNop(),
		Diffuser:           diffusion.NewIterative(nil),
		PartialDiffuser:    diffusion.HeatKernel{},
		Registry:           kmeans.NewRegistry(),
	}
}

func (o *Options) violate(format string, args ...interface{}) {
	if o.err == nil {
		o.err = fmt.Errorf("%w: "+format, append([]interface{}{ErrOptionViolation}, args...)...)
	}
}

// WithLimit sets the diffusion convergence limit; must be finite and > 0.
func WithLimit(limit float64) Option {
	return func(o *Options) {
		if !(limit > 0) || math.IsInf(limit, 0) {
			o.violate("limit must be > 0 (%v)", limit)

			return
		}
		o.Limit = limit
	}
}

// WithClusterRange sets KMin and KMax. Range checks against the vertex
// count happen in SearchHard (ErrBadClusterRange).
func WithClusterRange(kMin, kMax int) Option {
	return func(o *Options) {
		o.KMin, o.KMax = kMin, kMax
	}
}

// WithMaxIterations sets the diffusion iteration cap; must be > 0.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.violate("iterations must be > 0 (%d)", n)

			return
		}
		o.MaxIterations = n
	}
}

// WithAmbiguityThreshold sets the edge-scale threshold; must be >= 0.
func WithAmbiguityThreshold(t float64) Option {
	return func(o *Options) {
		if !(t >= 0) {
			o.violate("ambiguity threshold must be >= 0 (%v)", t)

			return
		}
		o.AmbiguityThreshold = t
	}
}

// WithAmplitudeThreshold sets the oscillator amplitude threshold; must be >= 0.
func WithAmplitudeThreshold(t float64) Option {
	return func(o *Options) {
		if !(t >= 0) {
			o.violate("amplitude threshold must be >= 0 (%v)", t)

			return
		}
		o.AmplitudeThreshold = t
	}
}

// WithRemovalDelta sets the removal delta; must be >= 0.
func WithRemovalDelta(d float64) Option {
	return func(o *Options) {
		if !(d >= 0) {
			o.violate("removal delta must be >= 0 (%v)", d)

			return
		}
		o.RemovalDelta = d
	}
}

// WithAlgorithm selects the clusterer by registry name.
func WithAlgorithm(name string) Option {
	return func(o *Options) { o.Algorithm = name }
}

// WithFuzzy toggles fuzzy refinement.
func WithFuzzy(enabled bool) Option {
	return func(o *Options) { o.Fuzzy = enabled }
}

// WithSeed sets the random seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithWorkers sets the worker count; must be >= 1.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.violate("workers must be >= 1 (%d)", n)

			return
		}
		o.Workers = n
	}
}

// WithLogger sets the logger. nil keeps the current one.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics sets the metrics registry.
func WithMetrics(r *metrics.Registry) Option {
	return func(o *Options) { o.Metrics = r }
}

// WithDiffuser replaces the primary diffuser. nil keeps the current one.
func WithDiffuser(d diffusion.Diffuser) Option {
	return func(o *Options) {
		if d != nil {
			o.Diffuser = d
		}
	}
}

// WithPartialDiffuser replaces the fallback diffuser. nil keeps the current one.
func WithPartialDiffuser(d diffusion.PartialDiffuser) Option {
	return func(o *Options) {
		if d != nil {
			o.PartialDiffuser = d
		}
	}
}

// WithRegistry replaces the clusterer registry. nil keeps the current one.
func WithRegistry(r *kmeans.Registry) Option {
	return func(o *Options) {
		if r != nil {
			o.Registry = r
		}
	}
}

// logger returns the configured logger or a no-op one.
func (o Options) logger() *zap.Logger {
	return logging.OrNop(o.Logger)
}

// workers returns the effective worker count.
func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}

	return o.Workers
}
