// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// FromRows builds a Dense from equal-length rows.
// Returns ErrInvalidDimensions for empty input, ErrDimensionMismatch for
// ragged rows and ErrNaNInf for non-finite values.
func FromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("FromRows: %w", ErrInvalidDimensions)
	}
	c := len(rows[0])
	m, _ := NewDense(len(rows), c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("FromRows: row %d has %d cols, want %d: %w", i, len(row), c, ErrDimensionMismatch)
		}
		for j, v := range row {
			if err := m.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("FromRows: %w", err)
			}
		}
	}

	return m, nil
}

// RowVectors returns every row of m as an independent slice.
// The result is the feature layout expected by kmeans.Clusterer.
func RowVectors(m Matrix) [][]float64 {
	if d, ok := m.(*Dense); ok {
		out := make([][]float64, d.r)
		for i := range out {
			out[i] = d.Row(i)
		}

		return out
	}
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = make([]float64, m.Cols())
		for j := range out[i] {
			out[i][j], _ = m.At(i, j)
		}
	}

	return out
}

// AbsMax returns max |m[i][j]|. An all-zero matrix yields 0.
func AbsMax(m Matrix) float64 {
	var best float64
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, _ := m.At(i, j)
			if a := math.Abs(v); a > best {
				best = a
			}
		}
	}

	return best
}

// DiagonalSeries returns the time series of diagonal entry i across the
// trajectory: out[t] = traj[t][i][i].
//
// Errors:
//   - ErrNilMatrix for a nil element.
//   - ErrNonSquare for a non-square element.
//   - ErrOutOfRange when i is not a valid diagonal position of every element.
func DiagonalSeries(traj []Matrix, i int) ([]float64, error) {
	out := make([]float64, len(traj))
	for t, m := range traj {
		if m == nil {
			return nil, fmt.Errorf("DiagonalSeries: step %d: %w", t, ErrNilMatrix)
		}
		if m.Rows() != m.Cols() {
			return nil, fmt.Errorf("DiagonalSeries: step %d: %w", t, ErrNonSquare)
		}
		v, err := m.At(i, i)
		if err != nil {
			return nil, fmt.Errorf("DiagonalSeries: step %d: %w", t, err)
		}
		out[t] = v
	}

	return out, nil
}

// ToGonum copies m into a gonum *mat.Dense.
func ToGonum(m Matrix) *mat.Dense {
	r, c := m.Rows(), m.Cols()
	if d, ok := m.(*Dense); ok {
		buf := make([]float64, len(d.data))
		copy(buf, d.data)

		return mat.NewDense(r, c, buf)
	}
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, _ := m.At(i, j)
			out.Set(i, j, v)
		}
	}

	return out
}

// FromGonum copies a gonum matrix into a Dense.
// Returns ErrNaNInf if any element is non-finite.
func FromGonum(g mat.Matrix) (*Dense, error) {
	r, c := g.Dims()
	d, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if err = d.Set(i, j, g.At(i, j)); err != nil {
				return nil, fmt.Errorf("FromGonum: %w", err)
			}
		}
	}

	return d, nil
}
