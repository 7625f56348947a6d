// Package forecomb combines a panel of candidate model forecasts into a
// single series. A Combiner wraps one combination method, fitting it to a
// validated forecast set and exposing the estimated weights, fitted values,
// accuracy scores, summaries, and plots.
package forecomb

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-forecomb/combine"
	"github.com/aouyang1/go-forecomb/dataset"
)

var (
	ErrUntrainedCombiner = errors.New("combiner has not been fit yet")
	ErrNoMethodInModel   = errors.New("no method set in model")
	ErrUnknownMethod     = errors.New("unknown combination method")
)

// Combiner fits a single combination method and can generate combined
// forecasts from new candidate forecast panels.
type Combiner struct {
	opt *Options

	set    *dataset.ForecastSet
	result *combine.Result
	model  *Model
}

// New creates a new instance of a Combiner using the provided options. If no
// options are provided a default is used.
func New(opt *Options) (*Combiner, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if opt.Method == nil {
		opt.Method = combine.NewSimpleAverage()
	}
	return &Combiner{opt: opt}, nil
}

// NewFromModel creates a new instance of a Combiner from a pre-existing
// model. This should be generated from a previous combiner call to Model()
// and can generate combined forecasts immediately, skipping the fit.
func NewFromModel(model Model) (*Combiner, error) {
	if model.Method == "" {
		return nil, ErrNoMethodInModel
	}
	if _, err := rowStatFor(model.Method, len(model.Models), model.TrimFraction); model.RowWise && err != nil {
		return nil, err
	}
	m := model
	return &Combiner{model: &m}, nil
}

// Fit estimates the combination weights from the input forecast set.
func (c *Combiner) Fit(set *dataset.ForecastSet) error {
	if c.opt == nil || c.opt.Method == nil {
		return fmt.Errorf("combiner loaded from a model cannot be refit, %w", ErrNoMethodInModel)
	}
	res, err := c.opt.Method.Fit(set)
	if err != nil {
		return fmt.Errorf("unable to fit %q, %w", c.opt.Method.Name(), err)
	}
	c.set = set
	c.result = res
	m := c.buildModel(res)
	c.model = &m
	return nil
}

// Result returns the combination result of the fit which includes the
// weights, fitted values, and accuracy scores.
func (c *Combiner) Result() *combine.Result {
	return c.result
}

// TrainingData returns the forecast set used to fit the current combiner.
func (c *Combiner) TrainingData() *dataset.ForecastSet {
	return c.set
}

// Weights returns all fit weights associated with each candidate model name.
func (c *Combiner) Weights() (map[string]float64, error) {
	if c.model == nil {
		return nil, ErrUntrainedCombiner
	}
	w := make(map[string]float64, len(c.model.Models))
	for i, name := range c.model.Models {
		w[name] = c.model.Weights[i]
	}
	return w, nil
}

// Intercept returns the intercept of the combination fit, 0 for pure weight
// methods.
func (c *Combiner) Intercept() float64 {
	if c.model == nil || c.model.Intercept == nil {
		return 0.0
	}
	return *c.model.Intercept
}

// Predict applies the fit combination to a new panel of candidate forecasts
// with the same column order as the training set.
func (c *Combiner) Predict(forecasts [][]float64) ([]float64, error) {
	if c.model == nil {
		return nil, ErrUntrainedCombiner
	}
	return c.model.Predict(forecasts)
}

// ModelEq returns a string representation of the fit combination
// represented as y ~ b + m1x1 + m2x2 ...
func (c *Combiner) ModelEq() (string, error) {
	if c.model == nil {
		return "", ErrUntrainedCombiner
	}
	return c.model.Eq(), nil
}

// Model generates a serializable representation of the combination fit.
// This can be used to initialize a new Combiner for immediate predictions
// skipping the training step.
func (c *Combiner) Model() (Model, error) {
	if c.model == nil {
		return Model{}, ErrUntrainedCombiner
	}
	return *c.model, nil
}

func (c *Combiner) buildModel(res *combine.Result) Model {
	m := Model{
		Method:    res.Method,
		Models:    append([]string{}, res.Models...),
		Weights:   append([]float64{}, res.Weights...),
		Intercept: res.Intercept,
		RowWise:   res.RowWise,
	}
	switch method := c.opt.Method.(type) {
	case *combine.TrimmedMean:
		m.TrimFraction = method.Fraction()
	case *combine.WinsorizedMean:
		m.TrimFraction = method.Fraction()
	}
	return m
}

// rowStatFor maps a row-wise method name to its row statistic.
func rowStatFor(method string, n int, trimFraction float64) (combine.RowStat, error) {
	switch method {
	case combine.MethodMedian:
		return combine.RowMedian, nil
	case combine.MethodTrimmedMean:
		k := combine.TrimCount(trimFraction, n)
		return func(row []float64) float64 {
			return combine.RowTrimmedMean(row, k)
		}, nil
	case combine.MethodWinsorizedMean:
		k := combine.TrimCount(trimFraction, n)
		return func(row []float64) float64 {
			return combine.RowWinsorizedMean(row, k)
		}, nil
	}
	return nil, fmt.Errorf("%q has no row statistic, %w", method, ErrUnknownMethod)
}
