// Package solver contains the numeric backends used by the combination
// estimators. Each backend is defined as an interface with a gonum-based
// default implementation so estimators can substitute deterministic
// stand-ins under test.
package solver

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrSingular     = errors.New("singular or near-singular system")
	ErrInfeasible   = errors.New("no feasible solution")
	ErrNotConverged = errors.New("solver did not converge")
	ErrNoInput      = errors.New("no input matrix")
	ErrLenMismatch  = errors.New("input lengths are inconsistent")
)

// LinearSolver solves the least squares problem min ||y - x*coef||^2
// returning one coefficient per column of x. Intercepts are handled by the
// caller stacking a constant column.
type LinearSolver interface {
	Solve(x mat.Matrix, y []float64) ([]float64, error)
}

// EigenSolver computes the full eigendecomposition of a symmetric matrix,
// returning eigenvalues in ascending order with eigenvectors stored as the
// corresponding columns.
type EigenSolver interface {
	Decompose(s *mat.SymDense) ([]float64, *mat.Dense, error)
}

// QuadProg describes the quadratic program
//
//	min 0.5*w'*Q*w - c'*w  s.t.  Aeq*w = Beq, w >= 0 (if NonNegative)
type QuadProg struct {
	Q           *mat.SymDense
	C           []float64
	Aeq         *mat.Dense
	Beq         []float64
	NonNegative bool
}

// QuadProgSolver solves a QuadProg returning the optimal weight vector.
type QuadProgSolver interface {
	Solve(p *QuadProg) ([]float64, error)
}

// LinProgSolver solves the standard form linear program
// min c'*x s.t. a*x = b, x >= 0.
type LinProgSolver interface {
	Solve(c []float64, a *mat.Dense, b []float64) ([]float64, error)
}

// Imputer fills NaN entries of the input matrix in place.
type Imputer interface {
	Impute(x *mat.Dense) error
}
