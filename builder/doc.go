// SPDX-License-Identifier: MIT

// Package builder generates deterministic signed graphs for tests,
// benchmarks and examples.
//
// A fixture is assembled by BuildGraph from one or more Constructors:
//
//	g, err := builder.BuildGraph(nil,
//		[]builder.BuilderOption{builder.WithSeed(7)},
//		builder.PlantedPartition([]int{10, 10, 10}, 0.8, 0.2),
//		builder.FlipSigns(0.05))
//
// Components:
//
//   - Options: WithSeed, WithRand, WithIDScheme, WithWeightFn and the
//     WithConstantWeight / WithUniformWeight shortcuts.
//   - ID schemes (IDFn): DefaultIDFn ("0","1",...), SymbolIDFn ("A".."Z"),
//     ExcelColumnIDFn ("A".."Z","AA",...), PaddedIDFn, PrefixIDFn.
//   - Weights (WeightFn): DefaultWeightFn, ConstantWeightFn, UniformWeightFn.
//     Weights may be negative.
//   - Topologies: Complete, Path, Cycle take their sign from the WeightFn.
//     PlantedPartition draws positive edges inside blocks and negative
//     edges across them. FlipSigns perturbs an existing graph.
//
// The same options, seed and constructor order always produce the same
// graph. Constructors return sentinel errors and never panic; option
// constructors panic on nil arguments.
package builder
