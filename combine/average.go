package combine

import (
	"fmt"
	"sort"

	"github.com/aouyang1/go-forecomb/dataset"
)

const (
	// MethodSimpleAverage gives every candidate the same weight.
	MethodSimpleAverage = "simple average"
	// MethodMedian takes the pointwise median across candidates.
	MethodMedian = "median"
	// MethodTrimmedMean drops extreme candidates per row before averaging.
	MethodTrimmedMean = "trimmed mean"
	// MethodWinsorizedMean caps extreme candidates per row before averaging.
	MethodWinsorizedMean = "winsorized mean"
)

// DefaultTrimFraction is the share of candidates trimmed or winsorized,
// split between both tails.
const DefaultTrimFraction = 0.1

// SimpleAverage combines with uniform 1/N weights and no intercept.
type SimpleAverage struct{}

// NewSimpleAverage returns the equal weights method.
func NewSimpleAverage() *SimpleAverage {
	return &SimpleAverage{}
}

func (s *SimpleAverage) Name() string { return MethodSimpleAverage }

// Fit assigns every candidate model the weight 1/N.
func (s *SimpleAverage) Fit(set *dataset.ForecastSet) (*Result, error) {
	if err := checkFit(set); err != nil {
		return nil, err
	}
	n := set.NumModels()
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0 / float64(n)
	}
	return newWeightResult(MethodSimpleAverage, set, weights, nil)
}

// Median combines with the pointwise median across candidates per row. This
// is a row statistic rather than a fixed weight vector.
type Median struct{}

// NewMedian returns the pointwise median method.
func NewMedian() *Median {
	return &Median{}
}

func (m *Median) Name() string { return MethodMedian }

func (m *Median) Fit(set *dataset.ForecastSet) (*Result, error) {
	if err := checkFit(set); err != nil {
		return nil, err
	}
	return newRowWiseResult(MethodMedian, set, RowMedian)
}

// TrimOptions configures the trimmed and winsorized means.
type TrimOptions struct {
	// TrimFraction is the total share of candidates affected, half per
	// tail. Must be in [0, 1).
	TrimFraction float64
}

// NewDefaultTrimOptions returns trim options with the default fraction.
func NewDefaultTrimOptions() *TrimOptions {
	return &TrimOptions{
		TrimFraction: DefaultTrimFraction,
	}
}

// Validate runs basic validation on trim options.
func (t *TrimOptions) Validate() (*TrimOptions, error) {
	if t == nil {
		t = NewDefaultTrimOptions()
	}
	if t.TrimFraction < 0.0 || t.TrimFraction >= 1.0 {
		return nil, fmt.Errorf("trim fraction %f must be in [0, 1), %w", t.TrimFraction, ErrNotFit)
	}
	return t, nil
}

// TrimmedMean drops the k most extreme candidates per tail per row and
// averages the remainder, k = floor(TrimFraction*N/2).
type TrimmedMean struct {
	opt *TrimOptions
}

// NewTrimmedMean returns a trimmed mean method. If no options are provided
// a default is used.
func NewTrimmedMean(opt *TrimOptions) *TrimmedMean {
	return &TrimmedMean{opt: opt}
}

func (t *TrimmedMean) Name() string { return MethodTrimmedMean }

// Fraction returns the effective trim fraction.
func (t *TrimmedMean) Fraction() float64 {
	opt, err := t.opt.Validate()
	if err != nil {
		return 0.0
	}
	return opt.TrimFraction
}

func (t *TrimmedMean) Fit(set *dataset.ForecastSet) (*Result, error) {
	opt, err := t.opt.Validate()
	if err != nil {
		return nil, err
	}
	if err := checkFit(set); err != nil {
		return nil, err
	}
	k := TrimCount(opt.TrimFraction, set.NumModels())
	return newRowWiseResult(MethodTrimmedMean, set, func(row []float64) float64 {
		return RowTrimmedMean(row, k)
	})
}

// WinsorizedMean caps the k most extreme candidates per tail per row at the
// nearest retained value and averages all of them.
type WinsorizedMean struct {
	opt *TrimOptions
}

// NewWinsorizedMean returns a winsorized mean method. If no options are
// provided a default is used.
func NewWinsorizedMean(opt *TrimOptions) *WinsorizedMean {
	return &WinsorizedMean{opt: opt}
}

func (w *WinsorizedMean) Name() string { return MethodWinsorizedMean }

// Fraction returns the effective trim fraction.
func (w *WinsorizedMean) Fraction() float64 {
	opt, err := w.opt.Validate()
	if err != nil {
		return 0.0
	}
	return opt.TrimFraction
}

func (w *WinsorizedMean) Fit(set *dataset.ForecastSet) (*Result, error) {
	opt, err := w.opt.Validate()
	if err != nil {
		return nil, err
	}
	if err := checkFit(set); err != nil {
		return nil, err
	}
	k := TrimCount(opt.TrimFraction, set.NumModels())
	return newRowWiseResult(MethodWinsorizedMean, set, func(row []float64) float64 {
		return RowWinsorizedMean(row, k)
	})
}

// TrimCount returns the number of candidates affected per tail for a trim
// fraction over n models, capped so at least one candidate remains.
func TrimCount(frac float64, n int) int {
	k := int(frac * float64(n) / 2.0)
	if 2*k >= n {
		k = (n - 1) / 2
	}
	return k
}

// RowMedian returns the median of the row.
func RowMedian(row []float64) float64 {
	sorted := append([]float64{}, row...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2.0
}

// RowTrimmedMean averages the row after dropping the k smallest and k
// largest values.
func RowTrimmedMean(row []float64, k int) float64 {
	sorted := append([]float64{}, row...)
	sort.Float64s(sorted)

	var sum float64
	for i := k; i < len(sorted)-k; i++ {
		sum += sorted[i]
	}
	return sum / float64(len(sorted)-2*k)
}

// RowWinsorizedMean averages the row after capping the k smallest values at
// the (k+1)-th and the k largest at the (n-k)-th.
func RowWinsorizedMean(row []float64, k int) float64 {
	sorted := append([]float64{}, row...)
	sort.Float64s(sorted)
	n := len(sorted)

	var sum float64
	for i := 0; i < n; i++ {
		switch {
		case i < k:
			sum += sorted[k]
		case i >= n-k:
			sum += sorted[n-k-1]
		default:
			sum += sorted[i]
		}
	}
	return sum / float64(n)
}
