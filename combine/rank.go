package combine

import (
	"fmt"
	"sort"

	"github.com/aouyang1/go-forecomb/accuracy"
	"github.com/aouyang1/go-forecomb/dataset"
	"gonum.org/v1/gonum/mat"
)

const (
	// MethodInverseRank weights candidates inversely to their historical
	// error rank.
	MethodInverseRank = "inverse rank"
	// MethodBatesGranger weights candidates inversely to their historical
	// mean squared error.
	MethodBatesGranger = "bates-granger"
)

// InverseRank ranks candidates by training RMSE and assigns weights
// proportional to the inverse rank, so the historically best model
// contributes most.
type InverseRank struct{}

// NewInverseRank returns the inverse rank method.
func NewInverseRank() *InverseRank {
	return &InverseRank{}
}

func (r *InverseRank) Name() string { return MethodInverseRank }

func (r *InverseRank) Fit(set *dataset.ForecastSet) (*Result, error) {
	if err := checkFit(set); err != nil {
		return nil, err
	}

	rmses, err := perModelError(set, accuracy.RMSE)
	if err != nil {
		return nil, err
	}

	ranks := averageRanks(rmses)
	weights := make([]float64, len(ranks))
	var total float64
	for i, rank := range ranks {
		weights[i] = 1.0 / rank
		total += weights[i]
	}
	for i := range weights {
		weights[i] /= total
	}
	return newWeightResult(MethodInverseRank, set, weights, nil)
}

// BatesGranger assigns weights proportional to the inverse training MSE of
// each candidate. Candidates with zero error split the full weight evenly.
type BatesGranger struct{}

// NewBatesGranger returns the inverse MSE method.
func NewBatesGranger() *BatesGranger {
	return &BatesGranger{}
}

func (b *BatesGranger) Name() string { return MethodBatesGranger }

func (b *BatesGranger) Fit(set *dataset.ForecastSet) (*Result, error) {
	if err := checkFit(set); err != nil {
		return nil, err
	}

	rmses, err := perModelError(set, accuracy.RMSE)
	if err != nil {
		return nil, err
	}

	weights := make([]float64, len(rmses))

	// a zero error candidate takes over entirely, split among ties
	var perfect []int
	for i, rmse := range rmses {
		if rmse == 0.0 {
			perfect = append(perfect, i)
		}
	}
	if len(perfect) > 0 {
		for _, i := range perfect {
			weights[i] = 1.0 / float64(len(perfect))
		}
		return newWeightResult(MethodBatesGranger, set, weights, nil)
	}

	var total float64
	for i, rmse := range rmses {
		weights[i] = 1.0 / (rmse * rmse)
		total += weights[i]
	}
	for i := range weights {
		weights[i] /= total
	}
	return newWeightResult(MethodBatesGranger, set, weights, nil)
}

// perModelError computes an error statistic of every candidate column
// against the training actuals.
func perModelError(set *dataset.ForecastSet, stat func(predicted, actual []float64) (float64, error)) ([]float64, error) {
	n := set.NumModels()
	out := make([]float64, n)
	for j := 0; j < n; j++ {
		v, err := stat(mat.Col(nil, j, set.ForecastsTrain), set.ActualTrain)
		if err != nil {
			return nil, fmt.Errorf("unable to score model %q, %w", set.ModelNames[j], err)
		}
		out[j] = v
	}
	return out, nil
}

// averageRanks assigns ascending ranks starting at 1 with ties sharing the
// average of their positions.
func averageRanks(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return values[idx[a]] < values[idx[b]]
	})

	ranks := make([]float64, n)
	for pos := 0; pos < n; {
		end := pos
		for end+1 < n && values[idx[end+1]] == values[idx[pos]] {
			end++
		}
		// positions pos..end share the same value
		avg := float64(pos+end)/2.0 + 1.0
		for i := pos; i <= end; i++ {
			ranks[idx[i]] = avg
		}
		pos = end + 1
	}
	return ranks
}
