package combine

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrWeightLenMismatch reports weights not matching the forecast columns.
var ErrWeightLenMismatch = fmt.Errorf("weights do not match forecast columns, %w", ErrNotFit)

// Apply combines a forecast matrix into a single series,
// combined_t = intercept + sum_i(weights_i * forecast_{t,i}).
func Apply(weights []float64, intercept float64, x mat.Matrix) ([]float64, error) {
	if x == nil {
		return nil, ErrNoDataset
	}
	_, n := x.Dims()
	if len(weights) != n {
		return nil, fmt.Errorf("got %d weights for %d columns, %w", len(weights), n, ErrWeightLenMismatch)
	}

	w := mat.NewDense(n, 1, weights)
	var combined mat.Dense
	combined.Mul(x, w)

	out := mat.Col(nil, 0, &combined)
	floats.AddConst(intercept, out)
	return out, nil
}

// RowStat reduces one row of candidate forecasts to a single value. The
// input row is scratch space owned by the caller.
type RowStat func(row []float64) float64

// ApplyRowStat combines a forecast matrix by applying the row statistic to
// every row. Returns nil for a nil matrix so optional test data flows
// through.
func ApplyRowStat(stat RowStat, x mat.Matrix) []float64 {
	if x == nil {
		return nil
	}
	m, n := x.Dims()
	out := make([]float64, m)
	row := make([]float64, n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			row[j] = x.At(i, j)
		}
		out[i] = stat(row)
	}
	return out
}
