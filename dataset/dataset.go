// Package dataset validates raw actual and candidate forecast inputs and
// assembles them into an immutable ForecastSet consumed by every combination
// estimator. Missing value handling and the collinearity screen happen here,
// before any estimation.
package dataset

import (
	"errors"
	"fmt"
	"math"

	mat_ "github.com/aouyang1/go-forecomb/mat"
	"github.com/aouyang1/go-forecomb/solver"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidInput is the parent of every bundle construction failure and can
// be matched with errors.Is.
var ErrInvalidInput = errors.New("invalid input data")

var (
	ErrNoActual           = fmt.Errorf("no actual observations, %w", ErrInvalidInput)
	ErrDimensionMismatch  = fmt.Errorf("dimension mismatch, %w", ErrInvalidInput)
	ErrDuplicateModelName = fmt.Errorf("duplicate model name, %w", ErrInvalidInput)
	ErrAllMissingColumn   = fmt.Errorf("forecast column has no observed values, %w", ErrInvalidInput)
	ErrTooFewModels       = fmt.Errorf("fewer than 2 usable candidate models, %w", ErrInvalidInput)
	ErrMissingValues      = fmt.Errorf("input contains missing values, %w", ErrInvalidInput)
	ErrTestWithoutData    = fmt.Errorf("actual test observations provided without test forecasts, %w", ErrInvalidInput)
)

// MinModels is the smallest number of candidate models worth combining.
const MinModels = 2

// MissingPolicy selects how NaN entries in the inputs are handled. The
// policy is always explicit, the default rejects missing values.
type MissingPolicy int

const (
	// MissingError fails construction on any NaN input.
	MissingError MissingPolicy = iota
	// MissingOmit drops any row containing a NaN in the actuals or any
	// forecast column.
	MissingOmit
	// MissingImpute fills NaN forecast entries using the configured
	// Imputer. Rows with a missing actual are still dropped since the
	// target cannot be imputed.
	MissingImpute
)

// Options configures bundle construction.
type Options struct {
	// ModelNames labels the forecast columns. Defaults to
	// model_1..model_N when empty.
	ModelNames []string

	// ActualTest and ForecastsTest hold an optional evaluation period.
	// ForecastsTest may be supplied without ActualTest for pure
	// prediction, the reverse is invalid.
	ActualTest    []float64
	ForecastsTest [][]float64

	// Missing selects the missing value policy.
	Missing MissingPolicy

	// Imputer used under MissingImpute. Defaults to the iterative
	// regression imputer.
	Imputer solver.Imputer

	// Collinearity enables the VIF screen when non-nil.
	Collinearity *CollinearityOptions
}

// NewDefaultOptions returns bundle options rejecting missing values with no
// collinearity screen.
func NewDefaultOptions() *Options {
	return &Options{
		Missing: MissingError,
	}
}

// ForecastSet bundles the training and optional test data shared by all
// combination methods. Constructed once by New and treated as immutable, the
// constructor copies every input and estimators never write to it.
type ForecastSet struct {
	ActualTrain    []float64
	ForecastsTrain *mat.Dense
	ActualTest     []float64
	ForecastsTest  *mat.Dense
	ModelNames     []string
}

// New validates the raw inputs and builds a ForecastSet. Construction order
// is validation, missing value handling, then the optional collinearity
// screen.
func New(actual []float64, forecasts [][]float64, opt *Options) (*ForecastSet, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if len(actual) == 0 {
		return nil, ErrNoActual
	}

	train, err := mat_.NewDenseFromArray(forecasts)
	if err != nil {
		return nil, fmt.Errorf("unable to build training forecast matrix, %w, %w", err, ErrInvalidInput)
	}
	m, n := train.Dims()
	if m != len(actual) {
		return nil, fmt.Errorf("%d training forecast rows for %d actual observations, %w", m, len(actual), ErrDimensionMismatch)
	}
	if n < MinModels {
		return nil, fmt.Errorf("got %d models, %w", n, ErrTooFewModels)
	}

	names, err := modelNames(opt.ModelNames, n)
	if err != nil {
		return nil, err
	}

	var test *mat.Dense
	if opt.ForecastsTest != nil {
		test, err = mat_.NewDenseFromArray(opt.ForecastsTest)
		if err != nil {
			return nil, fmt.Errorf("unable to build test forecast matrix, %w, %w", err, ErrInvalidInput)
		}
		tm, tn := test.Dims()
		if tn != n {
			return nil, fmt.Errorf("test forecasts have %d columns, training has %d, %w", tn, n, ErrDimensionMismatch)
		}
		if opt.ActualTest != nil && len(opt.ActualTest) != tm {
			return nil, fmt.Errorf("%d test forecast rows for %d actual observations, %w", tm, len(opt.ActualTest), ErrDimensionMismatch)
		}
	} else if opt.ActualTest != nil {
		return nil, ErrTestWithoutData
	}

	d := &ForecastSet{
		ActualTrain:    copySlice(actual),
		ForecastsTrain: train,
		ActualTest:     copySlice(opt.ActualTest),
		ForecastsTest:  test,
		ModelNames:     names,
	}

	if err := d.handleMissing(opt); err != nil {
		return nil, err
	}
	if opt.Collinearity != nil {
		if err := d.screenCollinearity(opt.Collinearity); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func modelNames(names []string, n int) ([]string, error) {
	if len(names) == 0 {
		names = make([]string, 0, n)
		for i := 0; i < n; i++ {
			names = append(names, fmt.Sprintf("model_%d", i+1))
		}
		return names, nil
	}
	if len(names) != n {
		return nil, fmt.Errorf("got %d model names for %d forecast columns, %w", len(names), n, ErrDimensionMismatch)
	}
	seen := make(map[string]struct{}, n)
	for _, name := range names {
		if _, exists := seen[name]; exists {
			return nil, fmt.Errorf("%q, %w", name, ErrDuplicateModelName)
		}
		seen[name] = struct{}{}
	}
	return copyStrings(names), nil
}

// NumModels returns the number of candidate models.
func (d *ForecastSet) NumModels() int {
	_, n := d.ForecastsTrain.Dims()
	return n
}

// TrainLen returns the number of training observations.
func (d *ForecastSet) TrainLen() int {
	return len(d.ActualTrain)
}

// TestLen returns the number of test forecast rows, 0 without test data.
func (d *ForecastSet) TestLen() int {
	if d.ForecastsTest == nil {
		return 0
	}
	m, _ := d.ForecastsTest.Dims()
	return m
}

// HasTest reports whether test period forecasts are present.
func (d *ForecastSet) HasTest() bool {
	return d.ForecastsTest != nil
}

// Copy returns a deep copy of the set.
func (d *ForecastSet) Copy() *ForecastSet {
	cp := &ForecastSet{
		ActualTrain: copySlice(d.ActualTrain),
		ActualTest:  copySlice(d.ActualTest),
		ModelNames:  copyStrings(d.ModelNames),
	}
	if d.ForecastsTrain != nil {
		cp.ForecastsTrain = mat.DenseCopyOf(d.ForecastsTrain)
	}
	if d.ForecastsTest != nil {
		cp.ForecastsTest = mat.DenseCopyOf(d.ForecastsTest)
	}
	return cp
}

// Split partitions a train-only set into a new set whose last rows form the
// test period. trainFrac is the fraction of rows kept for training.
func (d *ForecastSet) Split(trainFrac float64) (*ForecastSet, error) {
	if trainFrac <= 0.0 || trainFrac >= 1.0 {
		return nil, fmt.Errorf("train fraction %f must be in (0, 1), %w", trainFrac, ErrInvalidInput)
	}
	if d.HasTest() {
		return nil, fmt.Errorf("set already has a test period, %w", ErrInvalidInput)
	}
	m, n := d.ForecastsTrain.Dims()
	cut := int(math.Ceil(trainFrac * float64(m)))
	if cut < MinModels+1 || cut >= m {
		return nil, fmt.Errorf("train fraction %f leaves no usable split of %d rows, %w", trainFrac, m, ErrInvalidInput)
	}

	cp := &ForecastSet{
		ActualTrain:    copySlice(d.ActualTrain[:cut]),
		ActualTest:     copySlice(d.ActualTrain[cut:]),
		ModelNames:     copyStrings(d.ModelNames),
		ForecastsTrain: mat.DenseCopyOf(d.ForecastsTrain.Slice(0, cut, 0, n)),
		ForecastsTest:  mat.DenseCopyOf(d.ForecastsTrain.Slice(cut, m, 0, n)),
	}
	return cp, nil
}

func copySlice(s []float64) []float64 {
	if s == nil {
		return nil
	}
	cp := make([]float64, len(s))
	copy(cp, s)
	return cp
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	cp := make([]string, len(s))
	copy(cp, s)
	return cp
}
