package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultImputeIterations caps the refinement passes over all columns.
	DefaultImputeIterations = 20
	// DefaultImputeTolerance stops iterating once the largest imputed value
	// change falls below it.
	DefaultImputeTolerance = 1e-8
)

// RegressionImputer fills missing values through iterative regression. Each
// missing entry starts at its column mean and is refined by regressing the
// column on all other columns over the rows where it was observed, repeating
// until the imputed values settle.
type RegressionImputer struct {
	Solver     LinearSolver
	Iterations int
	Tolerance  float64
}

// NewRegressionImputer returns a regression imputer backed by the QR least
// squares solver.
func NewRegressionImputer() *RegressionImputer {
	return &RegressionImputer{
		Solver:     NewQRSolver(),
		Iterations: DefaultImputeIterations,
		Tolerance:  DefaultImputeTolerance,
	}
}

// Impute fills NaN entries of x in place.
func (r *RegressionImputer) Impute(x *mat.Dense) error {
	if x == nil {
		return ErrNoInput
	}
	m, n := x.Dims()

	// track originally missing entries per column
	missing := make([][]int, n)
	var anyMissing bool
	for j := 0; j < n; j++ {
		var obs, obsCnt float64
		for i := 0; i < m; i++ {
			if math.IsNaN(x.At(i, j)) {
				missing[j] = append(missing[j], i)
				continue
			}
			obs += x.At(i, j)
			obsCnt++
		}
		if obsCnt == 0 {
			return fmt.Errorf("column %d has no observed values, %w", j, ErrInfeasible)
		}
		if len(missing[j]) == 0 {
			continue
		}
		anyMissing = true

		colMean := obs / obsCnt
		for _, i := range missing[j] {
			x.Set(i, j, colMean)
		}
	}
	if !anyMissing {
		return nil
	}
	if n < 2 {
		// a single column imputes to its mean
		return nil
	}

	for iter := 0; iter < r.Iterations; iter++ {
		maxChange := 0.0
		for j := 0; j < n; j++ {
			if len(missing[j]) == 0 {
				continue
			}
			change, err := r.refineColumn(x, j, missing[j])
			if err != nil {
				// rank deficient predictors leave the column at its
				// current fill
				continue
			}
			maxChange = math.Max(maxChange, change)
		}
		if maxChange < r.Tolerance {
			break
		}
	}
	return nil
}

// refineColumn regresses column j on all other columns over the rows where j
// was observed and replaces the missing entries with predictions. Returns
// the largest absolute change.
func (r *RegressionImputer) refineColumn(x *mat.Dense, j int, missingRows []int) (float64, error) {
	m, n := x.Dims()

	missingSet := make(map[int]struct{}, len(missingRows))
	for _, i := range missingRows {
		missingSet[i] = struct{}{}
	}

	design := make([]float64, 0, (m-len(missingRows))*n)
	target := make([]float64, 0, m-len(missingRows))
	for i := 0; i < m; i++ {
		if _, ok := missingSet[i]; ok {
			continue
		}
		design = append(design, 1.0)
		for c := 0; c < n; c++ {
			if c == j {
				continue
			}
			design = append(design, x.At(i, c))
		}
		target = append(target, x.At(i, j))
	}
	if len(target) < n {
		return 0.0, fmt.Errorf("too few observed rows to regress column %d, %w", j, ErrSingular)
	}

	coef, err := r.Solver.Solve(mat.NewDense(len(target), n, design), target)
	if err != nil {
		return 0.0, err
	}

	maxChange := 0.0
	for _, i := range missingRows {
		pred := coef[0]
		ci := 1
		for c := 0; c < n; c++ {
			if c == j {
				continue
			}
			pred += coef[ci] * x.At(i, c)
			ci++
		}
		maxChange = math.Max(maxChange, math.Abs(pred-x.At(i, j)))
		x.Set(i, j, pred)
	}
	return maxChange, nil
}
