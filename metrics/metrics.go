// SPDX-License-Identifier: MIT

package metrics

import (
	"strconv"
	"time"
)

// Run paths and statuses used as label values.
const (
	PathHard    = "hard"
	PathFuzzy   = "fuzzy"
	StatusOK    = "ok"
	StatusError = "error"
)

// Recorders are nil-safe: a nil *Registry records nothing.

// RecordRun records a finished run.
func (r *Registry) RecordRun(path, status string) {
	if r == nil {
		return
	}
	r.RunsTotal.WithLabelValues(path, status).Inc()
}

// RecordCandidate records the sparsity of the candidate with k clusters.
func (r *Registry) RecordCandidate(k int, score float64) {
	if r == nil {
		return
	}
	r.CandidateSparsity.WithLabelValues(strconv.Itoa(k)).Set(score)
}

// RecordBaseline records the random-baseline sparsity and whether the
// search fell back to the minimum cluster count.
func (r *Registry) RecordBaseline(score float64, fallback bool) {
	if r == nil {
		return
	}
	r.BaselineSparsity.Set(score)
	if fallback {
		r.FallbackTotal.Inc()
	}
}

// RecordFuzzy adds n confirmed fuzzy nodes.
func (r *Registry) RecordFuzzy(n int) {
	if r == nil {
		return
	}
	r.FuzzyNodesTotal.Add(float64(n))
}

// RecordUnreachable counts one pair without a path.
func (r *Registry) RecordUnreachable() {
	if r == nil {
		return
	}
	r.UnreachablePathsTotal.Inc()
}

// ObserveStage records the duration of one pipeline stage.
func (r *Registry) ObserveStage(stage string, d time.Duration) {
	if r == nil {
		return
	}
	r.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}
