package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// DefaultLPTolerance is the simplex pivot tolerance.
const DefaultLPTolerance = 1e-10

// SimplexSolver solves standard form linear programs with gonum's simplex
// implementation.
type SimplexSolver struct {
	Tolerance float64
}

// NewSimplexSolver returns a simplex linear program solver with the default
// tolerance.
func NewSimplexSolver() *SimplexSolver {
	return &SimplexSolver{
		Tolerance: DefaultLPTolerance,
	}
}

// Solve minimizes c'*x subject to a*x = b and x >= 0.
func (s *SimplexSolver) Solve(c []float64, a *mat.Dense, b []float64) ([]float64, error) {
	if a == nil {
		return nil, ErrNoInput
	}
	m, n := a.Dims()
	if len(c) != n || len(b) != m {
		return nil, fmt.Errorf("linear program dimensions are inconsistent, %w", ErrLenMismatch)
	}

	_, x, err := lp.Simplex(c, a, b, s.Tolerance, nil)
	if err != nil {
		return nil, fmt.Errorf("simplex failed, %w, %w", err, ErrInfeasible)
	}
	return x, nil
}
