// SPDX-License-Identifier: MIT

// Package metrics holds the Prometheus instruments of clustering runs.
// Each Registry owns its own prometheus.Registry, so tests and concurrent
// runs never collide on global registration.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all clustering metrics.
type Registry struct {
	// RunsTotal counts finished runs by path (hard|fuzzy) and status (ok|error).
	RunsTotal *prometheus.CounterVec

	// CandidateSparsity is the last sparsity score observed per candidate k.
	CandidateSparsity *prometheus.GaugeVec

	// BaselineSparsity is the last random-baseline sparsity.
	BaselineSparsity prometheus.Gauge

	// FallbackTotal counts searches where the random baseline won.
	FallbackTotal prometheus.Counter

	// FuzzyNodesTotal counts nodes confirmed as fuzzy.
	FuzzyNodesTotal prometheus.Counter

	// UnreachablePathsTotal counts node/oscillator pairs with no path.
	UnreachablePathsTotal prometheus.Counter

	// StageDuration observes per-stage wall time in seconds.
	StageDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns a process-wide Registry, created on first use.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})

	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initRunMetrics()
	r.initRefinementMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

func (r *Registry) initRunMetrics() {
	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sigclust_runs_total",
			Help: "Total number of clustering runs",
		},
		[]string{"path", "status"}, // hard|fuzzy, ok|error
	)

	r.CandidateSparsity = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sigclust_candidate_sparsity",
			Help: "Sparsity score of the k-means candidate with k clusters",
		},
		[]string{"k"},
	)

	r.BaselineSparsity = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "sigclust_baseline_sparsity",
			Help: "Sparsity score of the random two-cluster baseline",
		},
	)

	r.FallbackTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "sigclust_baseline_fallback_total",
			Help: "Searches where no candidate beat the random baseline",
		},
	)

	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sigclust_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"stage"}, // diffuse, search, detect, scan, validate
	)
}

func (r *Registry) initRefinementMetrics() {
	r.FuzzyNodesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "sigclust_fuzzy_nodes_total",
			Help: "Nodes confirmed as fuzzy",
		},
	)

	r.UnreachablePathsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "sigclust_unreachable_paths_total",
			Help: "Node and oscillator pairs without a connecting path",
		},
	)
}
