package combine

import (
	"fmt"

	"github.com/aouyang1/go-forecomb/accuracy"
	"github.com/aouyang1/go-forecomb/dataset"
)

// Result is the output of a single combination fit. It is produced once and
// never mutated, downstream reporting and plotting only read it.
type Result struct {
	// Method names the estimator that produced this result.
	Method string `json:"method"`

	// Models mirrors the forecast set model names, aligned with Weights.
	Models []string `json:"models"`

	// Weights holds one weight per candidate model. Row-wise methods
	// report uniform nominal weights, see RowWise.
	Weights []float64 `json:"weights"`

	// Intercept is present for regression type methods and nil for pure
	// weight methods.
	Intercept *float64 `json:"intercept,omitempty"`

	// RowWise marks methods applying a per-row statistic instead of a
	// fixed weight vector. Their fitted values are not reproducible from
	// Weights alone.
	RowWise bool `json:"row_wise,omitempty"`

	// FittedTrain is the combined forecast over the training period.
	FittedTrain []float64 `json:"fitted_train"`

	// AccuracyTrain scores FittedTrain against the training actuals.
	AccuracyTrain *accuracy.Scores `json:"accuracy_train"`

	// ForecastsTest and AccuracyTest are present iff the forecast set
	// carried the corresponding test inputs.
	ForecastsTest []float64        `json:"forecasts_test,omitempty"`
	AccuracyTest  *accuracy.Scores `json:"accuracy_test,omitempty"`

	// Input retains the forecast set the result was estimated from for
	// reproducibility and plotting.
	Input *dataset.ForecastSet `json:"-"`
}

// newWeightResult assembles a Result for a fixed weight vector method,
// applying the weights to the training and optional test matrices and
// scoring both.
func newWeightResult(method string, set *dataset.ForecastSet, weights []float64, intercept *float64) (*Result, error) {
	b := 0.0
	if intercept != nil {
		b = *intercept
	}

	fitted, err := Apply(weights, b, set.ForecastsTrain)
	if err != nil {
		return nil, fmt.Errorf("unable to apply weights to training forecasts, %w", err)
	}
	return assembleResult(method, set, weights, intercept, false, fitted, func() ([]float64, error) {
		return Apply(weights, b, set.ForecastsTest)
	})
}

// newRowWiseResult assembles a Result for a per-row statistic method.
func newRowWiseResult(method string, set *dataset.ForecastSet, rowStat RowStat) (*Result, error) {
	n := set.NumModels()
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0 / float64(n)
	}

	fitted := ApplyRowStat(rowStat, set.ForecastsTrain)
	return assembleResult(method, set, weights, nil, true, fitted, func() ([]float64, error) {
		return ApplyRowStat(rowStat, set.ForecastsTest), nil
	})
}

func assembleResult(
	method string,
	set *dataset.ForecastSet,
	weights []float64,
	intercept *float64,
	rowWise bool,
	fitted []float64,
	predictTest func() ([]float64, error),
) (*Result, error) {
	scale := accuracy.NaiveScale(set.ActualTrain)

	accTrain, err := accuracy.NewScores(fitted, set.ActualTrain, scale)
	if err != nil {
		return nil, fmt.Errorf("unable to score training fit, %w", err)
	}

	res := &Result{
		Method:        method,
		Models:        append([]string{}, set.ModelNames...),
		Weights:       weights,
		Intercept:     intercept,
		RowWise:       rowWise,
		FittedTrain:   fitted,
		AccuracyTrain: accTrain,
		Input:         set.Copy(),
	}

	if set.HasTest() {
		testForecast, err := predictTest()
		if err != nil {
			return nil, fmt.Errorf("unable to apply weights to test forecasts, %w", err)
		}
		res.ForecastsTest = testForecast

		if set.ActualTest != nil {
			accTest, err := accuracy.NewScores(testForecast, set.ActualTest, scale)
			if err != nil {
				return nil, fmt.Errorf("unable to score test forecast, %w", err)
			}
			res.AccuracyTest = accTest
		}
	}
	return res, nil
}
