// SPDX-License-Identifier: MIT

// Package sigclust clusters signed graphs: it finds groups of nodes that
// are positively connected inside and negatively connected across, and
// marks the nodes that do not settle into any group as fuzzy.
//
// What is inside:
//
//   - Core primitives: a thread-safe undirected signed graph with vertex
//     attributes, plus a stable vertex Index for matrix alignment.
//   - Scoring: signed sparsity of a labelling, in [-1, 1].
//   - Diffusion: an iterative signed diffusion that reports convergence or
//     oscillation ("memory"), and a heat-kernel partial diffusion fallback.
//   - Clustering: a seeded k-means sweep over the diffusion scores, then
//     oscillator detection, path-sign scanning and removal validation for
//     the fuzzy nodes.
//   - Plumbing: edge-list I/O, YAML configuration, zap logging, Prometheus
//     metrics and the sigclust command.
//
// Layout:
//
//	core/      graph, vertex, edge and Index types
//	matrix/    dense matrices and helpers on gonum
//	sparsity/  signed sparsity score
//	bfs/       shortest-hop search and path weight products
//	dfs/       depth-first search and connected components
//	diffusion/ iterative and heat-kernel diffusers
//	kmeans/    Clusterer interface and seeded k-means++
//	cluster/   SearchHard, DetectOscillators, ScanPathConflicts,
//	           ValidateRemovals and Run
//	builder/   seeded signed-graph fixtures
//	graphio/   CSV/TSV edge lists in, node,cluster assignments out
//	config/    YAML configuration with validation
//	logging/   zap logger construction
//	metrics/   Prometheus collectors
//	cmd/       the sigclust CLI
//
// Quick example:
//
//	a───b       a, b, c: +1 to each other
//	 \ /        d, e, f: +1 to each other
//	  c - - d   c - d:   -1
//	       / \
//	      e───f
//
// yields two clusters {a, b, c} and {d, e, f}.
//
//	go install github.com/katalvlaran/sigclust/cmd/sigclust@latest
package sigclust
