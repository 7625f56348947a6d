package combine

import (
	"fmt"

	"github.com/aouyang1/go-forecomb/dataset"
	"github.com/aouyang1/go-forecomb/solver"
	"gonum.org/v1/gonum/mat"
)

// MethodLAD minimizes the sum of absolute residuals.
const MethodLAD = "lad"

// LADOptions configures the least absolute deviations combination.
type LADOptions struct {
	// Solver computes the linear program. Defaults to the simplex solver.
	Solver solver.LinProgSolver
}

// NewDefaultLADOptions returns LAD options backed by the simplex solver.
func NewDefaultLADOptions() *LADOptions {
	return &LADOptions{
		Solver: solver.NewSimplexSolver(),
	}
}

// Validate runs basic validation on LAD options.
func (l *LADOptions) Validate() (*LADOptions, error) {
	if l == nil {
		l = NewDefaultLADOptions()
	}
	if l.Solver == nil {
		l.Solver = solver.NewSimplexSolver()
	}
	return l, nil
}

// LAD estimates an intercept and unrestricted weights by least absolute
// deviations, trading efficiency for outlier resistance. The fit is posed
// as the standard form linear program
//
//	min sum(u+ + u-)  s.t.  b0 + F*w + u+ - u- = y
//
// with every variable split into its positive and negative part.
type LAD struct {
	opt *LADOptions
}

// NewLAD returns a least absolute deviations combination. If no options are
// provided a default is used.
func NewLAD(opt *LADOptions) *LAD {
	return &LAD{opt: opt}
}

func (l *LAD) Name() string { return MethodLAD }

func (l *LAD) Fit(set *dataset.ForecastSet) (*Result, error) {
	opt, err := l.opt.Validate()
	if err != nil {
		return nil, err
	}
	if err := checkFit(set); err != nil {
		return nil, err
	}

	m, n := set.ForecastsTrain.Dims()

	// variable layout: b0+, b0-, w+_1..n, w-_1..n, u+_1..m, u-_1..m
	cols := 2 + 2*n + 2*m
	c := make([]float64, cols)
	for i := 2 + 2*n; i < cols; i++ {
		c[i] = 1.0
	}

	a := mat.NewDense(m, cols, nil)
	for t := 0; t < m; t++ {
		a.Set(t, 0, 1.0)
		a.Set(t, 1, -1.0)
		for j := 0; j < n; j++ {
			v := set.ForecastsTrain.At(t, j)
			a.Set(t, 2+j, v)
			a.Set(t, 2+n+j, -v)
		}
		a.Set(t, 2+2*n+t, 1.0)
		a.Set(t, 2+2*n+m+t, -1.0)
	}

	x, err := opt.Solver.Solve(c, a, set.ActualTrain)
	if err != nil {
		return nil, fmt.Errorf("unable to solve absolute deviation program, %w, %w", err, ErrNotFit)
	}

	intercept := x[0] - x[1]
	weights := make([]float64, n)
	for j := 0; j < n; j++ {
		weights[j] = x[2+j] - x[2+n+j]
	}
	return newWeightResult(MethodLAD, set, weights, &intercept)
}
