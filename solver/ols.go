package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// rcondTolerance is the relative diagonal magnitude of the R factor below
// which the design matrix is treated as rank deficient.
const rcondTolerance = 1e-12

// QRSolver computes least squares solutions using QR factorization with
// back substitution.
type QRSolver struct{}

// NewQRSolver returns a QR least squares solver.
func NewQRSolver() *QRSolver {
	return &QRSolver{}
}

// Solve computes the least squares coefficients of y on the columns of x.
// Returns ErrSingular when the design matrix is rank deficient.
func (q *QRSolver) Solve(x mat.Matrix, y []float64) ([]float64, error) {
	if x == nil {
		return nil, ErrNoInput
	}
	m, n := x.Dims()
	if len(y) != m {
		return nil, fmt.Errorf("design matrix has %d rows and target has %d, %w", m, len(y), ErrLenMismatch)
	}
	if m < n {
		return nil, fmt.Errorf("design matrix has %d rows for %d columns, %w", m, n, ErrSingular)
	}

	yMx := mat.NewDense(1, m, y)

	qr := new(mat.QR)
	qr.Factorize(x)

	qm := new(mat.Dense)
	r := new(mat.Dense)

	qr.QTo(qm)
	qr.RTo(r)
	yq := new(mat.Dense)
	yq.Mul(yMx, qm)

	// rank deficiency shows up as a vanishing diagonal in R
	maxDiag := 0.0
	for i := 0; i < n; i++ {
		maxDiag = math.Max(maxDiag, math.Abs(r.At(i, i)))
	}
	for i := 0; i < n; i++ {
		if math.Abs(r.At(i, i)) < rcondTolerance*maxDiag {
			return nil, fmt.Errorf("rank deficient design matrix, %w", ErrSingular)
		}
	}

	c := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		c[i] = yq.At(0, i)
		for j := i + 1; j < n; j++ {
			c[i] -= c[j] * r.At(i, j)
		}
		c[i] /= r.At(i, i)
	}
	return c, nil
}
