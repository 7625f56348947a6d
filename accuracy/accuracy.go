// Package accuracy computes forecast accuracy statistics comparing a
// predicted series against the observed actuals.
package accuracy

import (
	"errors"
	"fmt"
	"math"
)

var ErrLenMismatch = errors.New("predicted and actual have different lengths")

// Scores tracks the accuracy statistics of a combined forecast against the
// actual observations. MASE scales the absolute error by the in-sample mean
// absolute error of a random-walk benchmark and is NaN when no scale is
// available.
type Scores struct {
	ME   float64 `json:"mean_error"`
	MAE  float64 `json:"mean_absolute_error"`
	RMSE float64 `json:"root_mean_squared_error"`
	MPE  float64 `json:"mean_percentage_error"`
	MAPE float64 `json:"mean_absolute_percentage_error"`
	MASE float64 `json:"mean_absolute_scaled_error"`
}

// NewScores calculates the accuracy statistics given the predicted and actual
// input slice values. scale is the mean absolute one-step difference of the
// training actuals used for MASE, computed with NaiveScale.
func NewScores(predicted, actual []float64, scale float64) (*Scores, error) {
	me, err := ME(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean error, %w", err)
	}
	mae, err := MAE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean absolute error, %w", err)
	}
	rmse, err := RMSE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute root mean squared error, %w", err)
	}
	mpe, err := MPE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean percentage error, %w", err)
	}
	mape, err := MAPE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean absolute percentage error, %w", err)
	}

	mase := math.NaN()
	if scale > 0 {
		mase = mae / scale
	}

	return &Scores{
		ME:   me,
		MAE:  mae,
		RMSE: rmse,
		MPE:  mpe,
		MAPE: mape,
		MASE: mase,
	}, nil
}

// NaiveScale computes the mean absolute one-step difference of the input
// series. This is the in-sample error of a random-walk forecast and serves
// as the MASE denominator.
func NaiveScale(actual []float64) float64 {
	var sum float64
	var cnt int
	for i := 1; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(actual[i-1]) {
			continue
		}
		sum += math.Abs(actual[i] - actual[i-1])
		cnt++
	}
	if cnt == 0 {
		return 0.0
	}
	return sum / float64(cnt)
}

// ME computes the mean error, sum(y-yhat)/n. A score of 0 means errors cancel
// out or a perfect match.
func ME(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrLenMismatch)
	}

	me := 0.0
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		me += actual[i] - predicted[i]
	}
	me /= float64(len(actual))
	return me, nil
}

// MAE computes the mean absolute error, sum(abs(y-yhat))/n. A score of 0
// means a perfect match with no errors.
func MAE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrLenMismatch)
	}

	mae := 0.0
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		mae += math.Abs(actual[i] - predicted[i])
	}
	mae /= float64(len(actual))
	return mae, nil
}

// RMSE computes the root mean squared error, sqrt(sum((y-yhat)^2)/n).
func RMSE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrLenMismatch)
	}

	mse := 0.0
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		mse += math.Pow(actual[i]-predicted[i], 2.0)
	}
	mse /= float64(len(actual))
	return math.Sqrt(mse), nil
}

// MPE calculates the mean percentage error, 100*sum((y-yhat)/y)/n. Zero
// actual values are skipped.
func MPE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrLenMismatch)
	}

	mpe := 0.0
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) || actual[i] == 0 {
			continue
		}
		mpe += (actual[i] - predicted[i]) / actual[i]
	}
	mpe *= 100.0 / float64(len(actual))
	return mpe, nil
}

// MAPE calculates the mean absolute percentage error,
// 100*sum(abs((y-yhat)/y))/n. Zero actual values are skipped.
func MAPE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrLenMismatch)
	}

	mape := 0.0
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) || actual[i] == 0 {
			continue
		}
		mape += math.Abs((actual[i] - predicted[i]) / actual[i])
	}
	mape *= 100.0 / float64(len(actual))
	return mape, nil
}
