// SPDX-License-Identifier: MIT

// Package matrix provides a bounds-checked row-major Dense matrix, builders
// that turn a signed core.Graph into an aligned adjacency matrix, and bridges
// to gonum for the numeric kernels of the diffusion stage.
//
// Every matrix produced from a graph is aligned with a core.Index: row and
// column i both correspond to idx.ID(i).
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c).
//   - SignedAdjacency: O(V^2 + E).
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}
