package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func sumToOne(n int) (*mat.Dense, []float64) {
	aeq := mat.NewDense(1, n, nil)
	for i := 0; i < n; i++ {
		aeq.Set(0, i, 1.0)
	}
	return aeq, []float64{1.0}
}

func TestActiveSetSolverEquality(t *testing.T) {
	// min 0.5*(w1^2 + w2^2) s.t. w1 + w2 = 1
	aeq, beq := sumToOne(2)
	p := &QuadProg{
		Q:   mat.NewSymDense(2, []float64{1.0, 0.0, 0.0, 1.0}),
		C:   []float64{0.0, 0.0},
		Aeq: aeq,
		Beq: beq,
	}

	w, err := NewActiveSetSolver().Solve(p)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, w, 1e-10)
}

func TestActiveSetSolverBindingBound(t *testing.T) {
	// unconstrained-in-sign optimum is (1.5, -1.5), the bound pins w2 at 0
	aeq, beq := sumToOne(2)
	p := &QuadProg{
		Q:           mat.NewSymDense(2, []float64{1.0, 0.0, 0.0, 1.0}),
		C:           []float64{1.0, -1.0},
		Aeq:         aeq,
		Beq:         beq,
		NonNegative: true,
	}

	w, err := NewActiveSetSolver().Solve(p)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.0, 0.0}, w, 1e-10)
}

func TestActiveSetSolverInteriorOptimum(t *testing.T) {
	// bounds inactive, matches the equality-only solution
	aeq, beq := sumToOne(3)
	p := &QuadProg{
		Q:           mat.NewSymDense(3, []float64{1.0, 0.0, 0.0, 0.0, 1.0, 0.0, 0.0, 0.0, 1.0}),
		C:           []float64{0.0, 0.0, 0.0},
		Aeq:         aeq,
		Beq:         beq,
		NonNegative: true,
	}

	w, err := NewActiveSetSolver().Solve(p)
	require.NoError(t, err)
	exp := 1.0 / 3.0
	assert.InDeltaSlice(t, []float64{exp, exp, exp}, w, 1e-10)
}

func TestActiveSetSolverBadDims(t *testing.T) {
	aeq, beq := sumToOne(2)
	p := &QuadProg{
		Q:   mat.NewSymDense(3, nil),
		C:   []float64{0.0, 0.0},
		Aeq: aeq,
		Beq: beq,
	}
	_, err := NewActiveSetSolver().Solve(p)
	require.ErrorIs(t, err, ErrLenMismatch)

	_, err = NewActiveSetSolver().Solve(nil)
	require.ErrorIs(t, err, ErrNoInput)
}
