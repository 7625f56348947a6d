// Package mat provides construction helpers for gonum dense matrices used
// throughout the combination estimators.
package mat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrColMismatch        = errors.New("column size mismatch")
	ErrUninitializedArray = errors.New("uninitialized array")
)

// NewDenseFromArray converts a row-major 2D slice into a gonum dense matrix.
// All rows must have the same length.
func NewDenseFromArray(x [][]float64) (*mat.Dense, error) {
	m := len(x)

	n := -1
	for i, row := range x {
		if n >= 0 && len(row) != n {
			return nil, fmt.Errorf("at row %d, %w", i, ErrColMismatch)
		}
		if n < 0 {
			n = len(row)
		}
	}
	if m == 0 || n <= 0 {
		return nil, fmt.Errorf("input has %d rows and %d columns, %w", m, n, ErrUninitializedArray)
	}

	// flatten to row order
	data := make([]float64, 0, m*n)
	for _, row := range x {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}

// WithOnes prepends a constant 1.0 column to the input matrix producing the
// design matrix for an intercept fit.
func WithOnes(x mat.Matrix) (*mat.Dense, error) {
	if x == nil {
		return nil, ErrUninitializedArray
	}
	m, _ := x.Dims()

	ones := make([]float64, m)
	floats.AddConst(1.0, ones)
	onesMx := mat.NewDense(1, m, ones)
	xT := x.T()

	var xWithOnes mat.Dense
	xWithOnes.Stack(onesMx, xT)

	var out mat.Dense
	out.CloneFrom(xWithOnes.T())
	return &out, nil
}

// Col returns a copy of column j of x.
func Col(j int, x mat.Matrix) []float64 {
	return mat.Col(nil, j, x)
}

// Row returns a copy of row i of x.
func Row(i int, x mat.Matrix) []float64 {
	return mat.Row(nil, i, x)
}
