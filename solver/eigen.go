package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SymEigenSolver decomposes symmetric matrices with gonum's EigenSym.
type SymEigenSolver struct{}

// NewSymEigenSolver returns a symmetric eigendecomposition solver.
func NewSymEigenSolver() *SymEigenSolver {
	return &SymEigenSolver{}
}

// Decompose returns the eigenvalues of s in ascending order along with the
// matrix of eigenvectors stored column wise in the same order.
func (e *SymEigenSolver) Decompose(s *mat.SymDense) ([]float64, *mat.Dense, error) {
	if s == nil {
		return nil, nil, ErrNoInput
	}

	var es mat.EigenSym
	if ok := es.Factorize(s, true); !ok {
		return nil, nil, fmt.Errorf("eigendecomposition failed to converge, %w", ErrNotConverged)
	}

	values := es.Values(nil)
	vectors := new(mat.Dense)
	es.VectorsTo(vectors)
	return values, vectors, nil
}
