package combine

import (
	"testing"

	"github.com/aouyang1/go-forecomb/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOLSExactRecovery(t *testing.T) {
	// actual = 2 + 0.5*model_1 + 0.5*model_2 with no residual
	forecasts := [][]float64{
		{1.0, 2.0},
		{2.0, 1.0},
		{3.0, 4.0},
		{5.0, 3.0},
	}
	actual := make([]float64, len(forecasts))
	for i, row := range forecasts {
		actual[i] = 2.0 + 0.5*row[0] + 0.5*row[1]
	}
	set := testSet(t, actual, forecasts, nil)

	res, err := NewOLS(nil).Fit(set)
	require.NoError(t, err)

	require.NotNil(t, res.Intercept)
	assert.InDelta(t, 2.0, *res.Intercept, 1e-8)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, res.Weights, 1e-8)
	assert.InDeltaSlice(t, actual, res.FittedTrain, 1e-8)
	assert.InDelta(t, 0.0, res.AccuracyTrain.RMSE, 1e-8)
}

func TestOLSSingularDesign(t *testing.T) {
	// model_2 is model_1 shifted by 1 which is collinear with the
	// intercept column
	actual := []float64{1.0, 2.0, 3.0, 4.0, 5.0}
	forecasts := [][]float64{
		{1.0, 2.0},
		{2.0, 3.0},
		{3.0, 4.0},
		{4.0, 5.0},
		{5.0, 6.0},
	}
	set := testSet(t, actual, forecasts, nil)

	_, err := NewOLS(nil).Fit(set)
	require.ErrorIs(t, err, ErrNotFit)
}

func TestOLSTestPeriod(t *testing.T) {
	forecasts := [][]float64{
		{1.0, 2.0},
		{2.0, 1.0},
		{3.0, 4.0},
		{5.0, 3.0},
	}
	actual := make([]float64, len(forecasts))
	for i, row := range forecasts {
		actual[i] = 1.0 + 2.0*row[0] - 1.0*row[1]
	}
	set := testSet(t, actual, forecasts, &dataset.Options{
		ForecastsTest: [][]float64{
			{6.0, 2.0},
			{7.0, 3.0},
		},
	})

	res, err := NewOLS(nil).Fit(set)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{11.0, 12.0}, res.ForecastsTest, 1e-8)
	assert.Nil(t, res.AccuracyTest)
}
