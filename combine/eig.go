package combine

import (
	"fmt"
	"math"

	"github.com/aouyang1/go-forecomb/dataset"
	"github.com/aouyang1/go-forecomb/solver"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const (
	// MethodEIG1 is the standard eigenvector combination.
	MethodEIG1 = "standard eigenvector"
	// MethodEIG2 is the bias-corrected eigenvector combination.
	MethodEIG2 = "bias-corrected eigenvector"
)

// EigOptions configures the eigenvector combinations.
type EigOptions struct {
	// Solver computes the eigendecomposition. Defaults to the symmetric
	// gonum solver.
	Solver solver.EigenSolver
}

// NewDefaultEigOptions returns eigenvector options backed by the symmetric
// gonum solver.
func NewDefaultEigOptions() *EigOptions {
	return &EigOptions{
		Solver: solver.NewSymEigenSolver(),
	}
}

// Validate runs basic validation on eigenvector options.
func (e *EigOptions) Validate() (*EigOptions, error) {
	if e == nil {
		e = NewDefaultEigOptions()
	}
	if e.Solver == nil {
		e.Solver = solver.NewSymEigenSolver()
	}
	return e, nil
}

// StandardEigenvector derives weights from an eigenvector of the sample
// mean squared prediction error matrix, normalized to sum to 1. The
// eigenvector minimizing the implied combined error is selected, making the
// weights stable under collinear candidates where regression weights bounce.
type StandardEigenvector struct {
	opt *EigOptions
}

// NewStandardEigenvector returns the standard eigenvector combination. If
// no options are provided a default is used.
func NewStandardEigenvector(opt *EigOptions) *StandardEigenvector {
	return &StandardEigenvector{opt: opt}
}

func (s *StandardEigenvector) Name() string { return MethodEIG1 }

func (s *StandardEigenvector) Fit(set *dataset.ForecastSet) (*Result, error) {
	opt, err := s.opt.Validate()
	if err != nil {
		return nil, err
	}
	if err := checkFit(set); err != nil {
		return nil, err
	}

	errs := errorMatrix(set, nil)
	weights, err := eigenvectorWeights(opt.Solver, errs)
	if err != nil {
		return nil, err
	}
	return newWeightResult(MethodEIG1, set, weights, nil)
}

// BiasCorrectedEigenvector removes each candidate's mean bias before running
// the eigenvector selection and reintroduces the bias as an intercept,
// intercept = mean(actual) - sum_i(weights_i * mean(forecast_i)).
type BiasCorrectedEigenvector struct {
	opt *EigOptions
}

// NewBiasCorrectedEigenvector returns the bias-corrected eigenvector
// combination. If no options are provided a default is used.
func NewBiasCorrectedEigenvector(opt *EigOptions) *BiasCorrectedEigenvector {
	return &BiasCorrectedEigenvector{opt: opt}
}

func (b *BiasCorrectedEigenvector) Name() string { return MethodEIG2 }

func (b *BiasCorrectedEigenvector) Fit(set *dataset.ForecastSet) (*Result, error) {
	opt, err := b.opt.Validate()
	if err != nil {
		return nil, err
	}
	if err := checkFit(set); err != nil {
		return nil, err
	}

	n := set.NumModels()
	meanActual := stat.Mean(set.ActualTrain, nil)
	meanForecasts := make([]float64, n)
	for j := 0; j < n; j++ {
		meanForecasts[j] = stat.Mean(mat.Col(nil, j, set.ForecastsTrain), nil)
	}

	bias := make([]float64, n)
	for j := 0; j < n; j++ {
		bias[j] = meanActual - meanForecasts[j]
	}

	errs := errorMatrix(set, bias)
	weights, err := eigenvectorWeights(opt.Solver, errs)
	if err != nil {
		return nil, err
	}

	intercept := meanActual
	for j := 0; j < n; j++ {
		intercept -= weights[j] * meanForecasts[j]
	}
	return newWeightResult(MethodEIG2, set, weights, &intercept)
}

// errorMatrix builds the T x N matrix of training errors, subtracting the
// per model bias when provided.
func errorMatrix(set *dataset.ForecastSet, bias []float64) *mat.Dense {
	m, n := set.ForecastsTrain.Dims()
	errs := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			e := set.ActualTrain[i] - set.ForecastsTrain.At(i, j)
			if bias != nil {
				e -= bias[j]
			}
			errs.Set(i, j, e)
		}
	}
	return errs
}

// eigenvectorWeights builds the scaled error cross product matrix, selects
// the eigenvector minimizing the implied combined error among those with a
// non-vanishing component sum, and normalizes it to sum to 1.
func eigenvectorWeights(es solver.EigenSolver, errs *mat.Dense) ([]float64, error) {
	m, n := errs.Dims()

	var cross mat.Dense
	cross.Mul(errs.T(), errs)
	cross.Scale(1.0/float64(m), &cross)

	sigma := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sigma.SetSym(i, j, cross.At(i, j))
		}
	}

	values, vectors, err := es.Decompose(sigma)
	if err != nil {
		return nil, fmt.Errorf("unable to decompose error matrix, %w, %w", err, ErrNotFit)
	}

	// each eigenvector v implies combined error lambda / sum(v)^2 once
	// rescaled to sum to 1
	bestIdx := -1
	bestVal := math.Inf(1)
	colSums := make([]float64, n)
	for j := 0; j < n; j++ {
		var ds float64
		for i := 0; i < n; i++ {
			ds += vectors.At(i, j)
		}
		colSums[j] = ds
		if ds*ds < 1e-12 {
			continue
		}
		adj := values[j] / (ds * ds)
		if adj < bestVal {
			bestVal = adj
			bestIdx = j
		}
	}
	if bestIdx < 0 {
		return nil, fmt.Errorf("no eigenvector with non-vanishing component sum, %w", ErrNotFit)
	}

	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		weights[i] = vectors.At(i, bestIdx) / colSums[bestIdx]
	}
	return weights, nil
}
