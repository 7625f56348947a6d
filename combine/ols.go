package combine

import (
	"fmt"

	"github.com/aouyang1/go-forecomb/dataset"
	mat_ "github.com/aouyang1/go-forecomb/mat"
	"github.com/aouyang1/go-forecomb/solver"
)

// MethodOLS regresses the actuals on the candidate forecasts.
const MethodOLS = "ols"

// OLSOptions configures the ordinary least squares combination.
type OLSOptions struct {
	// Solver computes the least squares fit. Defaults to the QR solver.
	Solver solver.LinearSolver
}

// NewDefaultOLSOptions returns OLS options backed by the QR solver.
func NewDefaultOLSOptions() *OLSOptions {
	return &OLSOptions{
		Solver: solver.NewQRSolver(),
	}
}

// Validate runs basic validation on OLS options.
func (o *OLSOptions) Validate() (*OLSOptions, error) {
	if o == nil {
		o = NewDefaultOLSOptions()
	}
	if o.Solver == nil {
		o.Solver = solver.NewQRSolver()
	}
	return o, nil
}

// OLS estimates an intercept and unrestricted weights by ordinary least
// squares. The weights can be negative and need not sum to 1, and the fit
// is unstable under collinear candidates. An exactly singular design fails
// with ErrNotFit.
type OLS struct {
	opt *OLSOptions
}

// NewOLS returns an ordinary least squares combination. If no options are
// provided a default is used.
func NewOLS(opt *OLSOptions) *OLS {
	return &OLS{opt: opt}
}

func (o *OLS) Name() string { return MethodOLS }

func (o *OLS) Fit(set *dataset.ForecastSet) (*Result, error) {
	opt, err := o.opt.Validate()
	if err != nil {
		return nil, err
	}
	if err := checkFit(set); err != nil {
		return nil, err
	}

	design, err := mat_.WithOnes(set.ForecastsTrain)
	if err != nil {
		return nil, fmt.Errorf("unable to build design matrix, %w", err)
	}

	coef, err := opt.Solver.Solve(design, set.ActualTrain)
	if err != nil {
		return nil, fmt.Errorf("unable to solve least squares, %w, %w", err, ErrNotFit)
	}

	intercept := coef[0]
	return newWeightResult(MethodOLS, set, coef[1:], &intercept)
}
