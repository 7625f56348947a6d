package dataset

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/aouyang1/go-forecomb/solver"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DefaultVIFThreshold flags a candidate model whose variance inflation
// factor exceeds it as collinear.
const DefaultVIFThreshold = 30.0

// CollinearityOptions configures the predictor screen run at construction
// time. Several estimators are numerically unstable under near-collinear
// candidates so the screen drops the worst offender and re-checks until all
// remaining columns pass. Dropped models are logged.
type CollinearityOptions struct {
	// Threshold is the maximum acceptable VIF. Defaults to
	// DefaultVIFThreshold when zero.
	Threshold float64
}

// NewDefaultCollinearityOptions returns screen options with the default VIF
// threshold.
func NewDefaultCollinearityOptions() *CollinearityOptions {
	return &CollinearityOptions{
		Threshold: DefaultVIFThreshold,
	}
}

// screenCollinearity repeatedly drops the highest VIF column above the
// threshold, warning on each drop. Fails once fewer than MinModels usable
// columns remain.
func (d *ForecastSet) screenCollinearity(opt *CollinearityOptions) error {
	threshold := opt.Threshold
	if threshold == 0 {
		threshold = DefaultVIFThreshold
	}

	for {
		_, n := d.ForecastsTrain.Dims()
		vifs, err := VarianceInflationFactors(d.ForecastsTrain)
		if err != nil {
			return fmt.Errorf("unable to compute variance inflation factors, %w, %w", err, ErrInvalidInput)
		}

		maxIdx := -1
		maxVIF := threshold
		for j, v := range vifs {
			if v > maxVIF {
				maxVIF = v
				maxIdx = j
			}
		}
		if maxIdx < 0 {
			return nil
		}

		slog.Warn("dropping collinear candidate model",
			"model", d.ModelNames[maxIdx],
			"vif", maxVIF,
			"threshold", threshold,
		)
		if n-1 < MinModels {
			return fmt.Errorf("collinearity screen left %d models, %w", n-1, ErrTooFewModels)
		}
		d.dropColumn(maxIdx)
	}
}

// VarianceInflationFactors computes the VIF of every column of x, regressing
// each on all others with an intercept. A perfectly predictable column
// reports +Inf.
func VarianceInflationFactors(x *mat.Dense) ([]float64, error) {
	m, n := x.Dims()
	if n < MinModels {
		return nil, fmt.Errorf("need at least %d columns, %w", MinModels, ErrTooFewModels)
	}

	qr := solver.NewQRSolver()
	vifs := make([]float64, n)
	design := mat.NewDense(m, n, nil)
	ones := make([]float64, m)
	for i := range ones {
		ones[i] = 1.0
	}
	design.SetCol(0, ones)

	for j := 0; j < n; j++ {
		target := mat.Col(nil, j, x)
		c := 1
		for other := 0; other < n; other++ {
			if other == j {
				continue
			}
			design.SetCol(c, mat.Col(nil, other, x))
			c++
		}

		coef, err := qr.Solve(design, target)
		if err != nil {
			// the other columns fully determine this one
			vifs[j] = math.Inf(1)
			continue
		}

		predicted := make([]float64, m)
		for i := 0; i < m; i++ {
			v := coef[0]
			ci := 1
			for other := 0; other < n; other++ {
				if other == j {
					continue
				}
				v += coef[ci] * x.At(i, other)
				ci++
			}
			predicted[i] = v
		}

		r2 := stat.RSquaredFrom(predicted, target, nil)
		if r2 >= 1.0-1e-12 {
			vifs[j] = math.Inf(1)
			continue
		}
		vifs[j] = 1.0 / (1.0 - r2)
	}
	return vifs, nil
}

// dropColumn removes the j-th candidate model from the training and test
// matrices along with its name.
func (d *ForecastSet) dropColumn(j int) {
	d.ModelNames = append(d.ModelNames[:j], d.ModelNames[j+1:]...)
	d.ForecastsTrain = removeColumn(d.ForecastsTrain, j)
	if d.ForecastsTest != nil {
		d.ForecastsTest = removeColumn(d.ForecastsTest, j)
	}
}

func removeColumn(x *mat.Dense, j int) *mat.Dense {
	m, n := x.Dims()
	next := mat.NewDense(m, n-1, nil)
	c := 0
	for col := 0; col < n; col++ {
		if col == j {
			continue
		}
		next.SetCol(c, mat.Col(nil, col, x))
		c++
	}
	return next
}
