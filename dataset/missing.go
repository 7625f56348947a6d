package dataset

import (
	"fmt"
	"math"

	"github.com/aouyang1/go-forecomb/solver"
	"gonum.org/v1/gonum/mat"
)

// handleMissing applies the configured missing value policy to the training
// and test data in place.
func (d *ForecastSet) handleMissing(opt *Options) error {
	if err := d.checkAllMissingColumns(); err != nil {
		return err
	}

	switch opt.Missing {
	case MissingError:
		if d.hasNaN() {
			return ErrMissingValues
		}
		return nil
	case MissingOmit:
		d.omitTrainRows()
		d.omitTestRows()
	case MissingImpute:
		imputer := opt.Imputer
		if imputer == nil {
			imputer = solver.NewRegressionImputer()
		}
		// the target cannot be imputed so those rows still drop
		d.omitTrainRowsMissingActual()
		if err := imputer.Impute(d.ForecastsTrain); err != nil {
			return fmt.Errorf("unable to impute training forecasts, %w, %w", err, ErrInvalidInput)
		}
		if d.ForecastsTest != nil {
			if err := imputer.Impute(d.ForecastsTest); err != nil {
				return fmt.Errorf("unable to impute test forecasts, %w, %w", err, ErrInvalidInput)
			}
		}
	default:
		return fmt.Errorf("unknown missing value policy %d, %w", opt.Missing, ErrInvalidInput)
	}

	if d.TrainLen() == 0 {
		return fmt.Errorf("no training rows remain after missing value handling, %w", ErrInvalidInput)
	}
	return nil
}

func (d *ForecastSet) checkAllMissingColumns() error {
	for _, x := range []*mat.Dense{d.ForecastsTrain, d.ForecastsTest} {
		if x == nil {
			continue
		}
		m, n := x.Dims()
		for j := 0; j < n; j++ {
			allNaN := true
			for i := 0; i < m; i++ {
				if !math.IsNaN(x.At(i, j)) {
					allNaN = false
					break
				}
			}
			if allNaN {
				return fmt.Errorf("model %q, %w", d.ModelNames[j], ErrAllMissingColumn)
			}
		}
	}
	return nil
}

func (d *ForecastSet) hasNaN() bool {
	for _, v := range d.ActualTrain {
		if math.IsNaN(v) {
			return true
		}
	}
	for _, v := range d.ActualTest {
		if math.IsNaN(v) {
			return true
		}
	}
	for _, x := range []*mat.Dense{d.ForecastsTrain, d.ForecastsTest} {
		if x == nil {
			continue
		}
		m, n := x.Dims()
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				if math.IsNaN(x.At(i, j)) {
					return true
				}
			}
		}
	}
	return false
}

// omitTrainRows drops any training row with a NaN actual or forecast.
func (d *ForecastSet) omitTrainRows() {
	d.filterTrain(func(i int) bool {
		if math.IsNaN(d.ActualTrain[i]) {
			return false
		}
		return !rowHasNaN(d.ForecastsTrain, i)
	})
}

// omitTrainRowsMissingActual drops only training rows with a NaN actual.
func (d *ForecastSet) omitTrainRowsMissingActual() {
	d.filterTrain(func(i int) bool {
		return !math.IsNaN(d.ActualTrain[i])
	})
}

// omitTestRows drops any test row with a NaN actual or forecast.
func (d *ForecastSet) omitTestRows() {
	if d.ForecastsTest == nil {
		return
	}
	m, n := d.ForecastsTest.Dims()
	keep := make([]int, 0, m)
	for i := 0; i < m; i++ {
		if d.ActualTest != nil && math.IsNaN(d.ActualTest[i]) {
			continue
		}
		if rowHasNaN(d.ForecastsTest, i) {
			continue
		}
		keep = append(keep, i)
	}
	if len(keep) == m {
		return
	}
	if len(keep) == 0 {
		d.ForecastsTest = nil
		d.ActualTest = nil
		return
	}

	next := mat.NewDense(len(keep), n, nil)
	var nextActual []float64
	for to, from := range keep {
		next.SetRow(to, mat.Row(nil, from, d.ForecastsTest))
		if d.ActualTest != nil {
			nextActual = append(nextActual, d.ActualTest[from])
		}
	}
	d.ForecastsTest = next
	if d.ActualTest != nil {
		d.ActualTest = nextActual
	}
}

func (d *ForecastSet) filterTrain(keepRow func(i int) bool) {
	m, n := d.ForecastsTrain.Dims()
	keep := make([]int, 0, m)
	for i := 0; i < m; i++ {
		if keepRow(i) {
			keep = append(keep, i)
		}
	}
	if len(keep) == m {
		return
	}
	if len(keep) == 0 {
		d.ActualTrain = nil
		return
	}

	next := mat.NewDense(len(keep), n, nil)
	nextActual := make([]float64, 0, len(keep))
	for to, from := range keep {
		next.SetRow(to, mat.Row(nil, from, d.ForecastsTrain))
		nextActual = append(nextActual, d.ActualTrain[from])
	}
	d.ForecastsTrain = next
	d.ActualTrain = nextActual
}

func rowHasNaN(x *mat.Dense, i int) bool {
	_, n := x.Dims()
	for j := 0; j < n; j++ {
		if math.IsNaN(x.At(i, j)) {
			return true
		}
	}
	return false
}
