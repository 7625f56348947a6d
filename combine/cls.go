package combine

import (
	"fmt"

	"github.com/aouyang1/go-forecomb/dataset"
	"github.com/aouyang1/go-forecomb/solver"
	"gonum.org/v1/gonum/mat"
)

// MethodCLS minimizes in-sample squared error over the weight simplex.
const MethodCLS = "constrained least squares"

// CLSOptions configures the constrained least squares combination.
type CLSOptions struct {
	// NonNegative additionally restricts weights to be non-negative,
	// confining them to the simplex.
	NonNegative bool

	// Solver computes the quadratic program. Defaults to the active set
	// solver.
	Solver solver.QuadProgSolver
}

// NewDefaultCLSOptions returns constrained least squares options with
// non-negative simplex weights.
func NewDefaultCLSOptions() *CLSOptions {
	return &CLSOptions{
		NonNegative: true,
		Solver:      solver.NewActiveSetSolver(),
	}
}

// Validate runs basic validation on constrained least squares options.
func (c *CLSOptions) Validate() (*CLSOptions, error) {
	if c == nil {
		c = NewDefaultCLSOptions()
	}
	if c.Solver == nil {
		c.Solver = solver.NewActiveSetSolver()
	}
	return c, nil
}

// ConstrainedLS minimizes in-sample squared error subject to the weights
// summing to 1, optionally non-negative. There is no intercept. The
// constraints trade some fit for stability under correlated candidates.
type ConstrainedLS struct {
	opt *CLSOptions
}

// NewConstrainedLS returns a constrained least squares combination. If no
// options are provided a default is used.
func NewConstrainedLS(opt *CLSOptions) *ConstrainedLS {
	return &ConstrainedLS{opt: opt}
}

func (c *ConstrainedLS) Name() string { return MethodCLS }

func (c *ConstrainedLS) Fit(set *dataset.ForecastSet) (*Result, error) {
	opt, err := c.opt.Validate()
	if err != nil {
		return nil, err
	}
	if err := checkFit(set); err != nil {
		return nil, err
	}

	f := set.ForecastsTrain
	_, n := f.Dims()

	// min ||y - F*w||^2 becomes min 0.5*w'(F'F)w - (F'y)'w
	var ftf mat.Dense
	ftf.Mul(f.T(), f)
	q := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			q.SetSym(i, j, ftf.At(i, j))
		}
	}

	y := mat.NewDense(len(set.ActualTrain), 1, set.ActualTrain)
	var fty mat.Dense
	fty.Mul(f.T(), y)
	lin := mat.Col(nil, 0, &fty)

	aeq := mat.NewDense(1, n, nil)
	for j := 0; j < n; j++ {
		aeq.Set(0, j, 1.0)
	}

	weights, err := opt.Solver.Solve(&solver.QuadProg{
		Q:           q,
		C:           lin,
		Aeq:         aeq,
		Beq:         []float64{1.0},
		NonNegative: opt.NonNegative,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to solve constrained quadratic program, %w, %w", err, ErrNotFit)
	}
	return newWeightResult(MethodCLS, set, weights, nil)
}
