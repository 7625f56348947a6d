package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestQRSolver(t *testing.T) {
	// y = 2 + 3t
	design := mat.NewDense(5, 2, []float64{
		1.0, 0.0,
		1.0, 1.0,
		1.0, 2.0,
		1.0, 3.0,
		1.0, 4.0,
	})
	y := []float64{2.0, 5.0, 8.0, 11.0, 14.0}

	coef, err := NewQRSolver().Solve(design, y)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2.0, 3.0}, coef, 1e-10)
}

func TestQRSolverOverdetermined(t *testing.T) {
	// noisy y = 1 + 2t with symmetric noise cancelling out
	design := mat.NewDense(4, 2, []float64{
		1.0, 0.0,
		1.0, 1.0,
		1.0, 2.0,
		1.0, 3.0,
	})
	y := []float64{1.5, 2.5, 5.5, 6.5}

	coef, err := NewQRSolver().Solve(design, y)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.3, 1.8}, coef, 1e-10)
}

func TestQRSolverSingular(t *testing.T) {
	// second column is a shifted copy of the first making the design rank 2
	design := mat.NewDense(5, 3, []float64{
		1.0, 1.0, 2.0,
		1.0, 2.0, 3.0,
		1.0, 3.0, 4.0,
		1.0, 4.0, 5.0,
		1.0, 5.0, 6.0,
	})
	y := []float64{1.0, 2.0, 3.0, 4.0, 5.0}

	_, err := NewQRSolver().Solve(design, y)
	require.ErrorIs(t, err, ErrSingular)
}

func TestQRSolverWideDesign(t *testing.T) {
	// more columns than rows is underdetermined
	design := mat.NewDense(2, 3, []float64{
		1.0, 2.0, 3.0,
		4.0, 5.0, 6.0,
	})
	_, err := NewQRSolver().Solve(design, []float64{1.0, 2.0})
	require.ErrorIs(t, err, ErrSingular)
}

func TestQRSolverLenMismatch(t *testing.T) {
	design := mat.NewDense(2, 1, []float64{1.0, 1.0})
	_, err := NewQRSolver().Solve(design, []float64{1.0})
	require.ErrorIs(t, err, ErrLenMismatch)

	_, err = NewQRSolver().Solve(nil, []float64{1.0})
	require.ErrorIs(t, err, ErrNoInput)
}
