// Package combine implements the forecast combination estimators. Every
// method consumes an immutable dataset.ForecastSet and produces a Result
// holding the estimated weights, the fitted training series, optional test
// period forecasts, and accuracy scores for both.
package combine

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-forecomb/dataset"
)

// ErrNotFit is the parent of every estimation failure and can be matched
// with errors.Is.
var ErrNotFit = errors.New("unable to fit combination method")

var (
	ErrNoDataset       = fmt.Errorf("no forecast set, %w", ErrNotFit)
	ErrUnderdetermined = fmt.Errorf("underdetermined system, %w", ErrNotFit)
)

// Method estimates combination weights from a forecast set. Fit is a pure
// function of its input, the set is never mutated, and independent fits may
// run concurrently over the same set.
type Method interface {
	Name() string
	Fit(set *dataset.ForecastSet) (*Result, error)
}

// checkFit validates the shared degrees-of-freedom requirement. Fitting
// needs strictly more training rows than candidate models.
func checkFit(set *dataset.ForecastSet) error {
	if set == nil || set.ForecastsTrain == nil {
		return ErrNoDataset
	}
	m, n := set.ForecastsTrain.Dims()
	if m < n+1 {
		return fmt.Errorf("%d training rows for %d models, %w", m, n, ErrUnderdetermined)
	}
	return nil
}

// All returns one default-configured instance of every combination method.
func All() []Method {
	return []Method{
		NewSimpleAverage(),
		NewMedian(),
		NewTrimmedMean(nil),
		NewWinsorizedMean(nil),
		NewInverseRank(),
		NewBatesGranger(),
		NewOLS(nil),
		NewLAD(nil),
		NewStandardEigenvector(nil),
		NewBiasCorrectedEigenvector(nil),
		NewConstrainedLS(nil),
	}
}
