package combine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInverseRank(t *testing.T) {
	// model_1 is exact, model_2 is off by a constant 1
	actual := []float64{1.0, 2.0, 3.0, 4.0}
	forecasts := [][]float64{
		{1.0, 2.0},
		{2.0, 3.0},
		{3.0, 4.0},
		{4.0, 5.0},
	}
	set := testSet(t, actual, forecasts, nil)

	res, err := NewInverseRank().Fit(set)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2.0 / 3.0, 1.0 / 3.0}, res.Weights, 1e-12)
	assert.Nil(t, res.Intercept)
}

func TestInverseRankTies(t *testing.T) {
	// identical errors share the averaged rank and split evenly
	actual := []float64{1.0, 2.0, 3.0, 4.0}
	forecasts := [][]float64{
		{2.0, 0.0},
		{3.0, 1.0},
		{4.0, 2.0},
		{5.0, 3.0},
	}
	set := testSet(t, actual, forecasts, nil)

	res, err := NewInverseRank().Fit(set)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, res.Weights, 1e-12)
}

func TestBatesGranger(t *testing.T) {
	// model_1 MSE 1, model_2 MSE 4 gives inverse MSE weights 4/5, 1/5
	actual := []float64{1.0, 2.0, 3.0, 4.0}
	forecasts := [][]float64{
		{2.0, 3.0},
		{3.0, 4.0},
		{4.0, 5.0},
		{5.0, 6.0},
	}
	set := testSet(t, actual, forecasts, nil)

	res, err := NewBatesGranger().Fit(set)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.8, 0.2}, res.Weights, 1e-12)
	assert.Nil(t, res.Intercept)
}

func TestBatesGrangerPerfectModel(t *testing.T) {
	// a zero error candidate takes the full weight
	actual := []float64{1.0, 2.0, 3.0, 4.0}
	forecasts := [][]float64{
		{1.0, 2.0},
		{2.0, 3.0},
		{3.0, 4.0},
		{4.0, 5.0},
	}
	set := testSet(t, actual, forecasts, nil)

	res, err := NewBatesGranger().Fit(set)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.0, 0.0}, res.Weights, 1e-12)
	assert.InDeltaSlice(t, actual, res.FittedTrain, 1e-12)
}

func TestAverageRanks(t *testing.T) {
	testData := map[string]struct {
		values   []float64
		expected []float64
	}{
		"distinct": {
			values:   []float64{3.0, 1.0, 2.0},
			expected: []float64{3.0, 1.0, 2.0},
		},
		"two way tie": {
			values:   []float64{2.0, 1.0, 1.0},
			expected: []float64{3.0, 1.5, 1.5},
		},
		"all tied": {
			values:   []float64{1.0, 1.0, 1.0},
			expected: []float64{2.0, 2.0, 2.0},
		},
	}
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.InDeltaSlice(t, td.expected, averageRanks(td.values), 1e-12)
		})
	}
}
