// SPDX-License-Identifier: MIT

// Package cluster partitions a signed graph and flags ambiguous ("fuzzy")
// nodes.
//
// What
//
//   - SearchHard: k-means over the rows of a diffusion score matrix for every
//     k in [KMin, KMax]; the k with the best sparsity wins. Labels start at 1.
//   - DetectOscillators: nodes whose self-similarity swings across an
//     oscillating diffusion trajectory, paired by anti-correlation.
//   - ScanPathConflicts: flags nodes whose shortest-path weight products to
//     their cluster's oscillator disagree with their label.
//   - ValidateRemovals: keeps a flag only when no reassignment to another
//     cluster recovers the sparsity.
//   - Run: the full pipeline, writing the "cluster" attribute on every vertex.
//
// Labels
//
//	0 (FuzzyLabel) marks fuzzy nodes; ordinary clusters are 1..k.
//	Assignments are indexed by core.Index position and passed by value
//	between stages.
//
// Determinism
//
//	The random baseline and the clusterer are seeded from Options.Seed, and
//	every tie is broken by index order. Workers > 1 parallelizes the k sweep
//	and the per-oscillator path search without changing results.
//
// Errors
//
//	Configuration errors (invalid options, nil graph, bad cluster range,
//	unknown algorithm, edgeless graph) are returned before any vertex
//	attribute is written. Data degeneracies (random baseline wins, missing
//	oscillators, unreachable nodes) are logged and the run continues.
package cluster
