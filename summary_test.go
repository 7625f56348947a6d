package forecomb

import (
	"testing"

	"github.com/aouyang1/go-forecomb/combine"
	"github.com/aouyang1/go-forecomb/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	set := testSet(t,
		[]float64{1.0, 2.0, 3.0, 4.0},
		[][]float64{
			{1.0, 2.0},
			{2.0, 3.0},
			{3.0, 4.0},
			{4.0, 5.0},
		},
		&dataset.Options{
			ModelNames: []string{"arima", "ets"},
			ActualTest: []float64{5.0, 6.0},
			ForecastsTest: [][]float64{
				{5.0, 6.0},
				{6.0, 7.0},
			},
		},
	)

	res, err := combine.NewSimpleAverage().Fit(set)
	require.NoError(t, err)

	out := Summary(res)
	assert.Contains(t, out, "Method: simple average")
	assert.Contains(t, out, "arima")
	assert.Contains(t, out, "ets")
	assert.Contains(t, out, "Training Set")
	assert.Contains(t, out, "Test Set")
	assert.Contains(t, out, "RMSE")
}

func TestSummaryTrainOnly(t *testing.T) {
	set := testSet(t,
		[]float64{1.0, 2.0, 3.0, 4.0},
		[][]float64{
			{1.0, 2.0},
			{2.0, 3.0},
			{3.0, 4.0},
			{4.0, 5.0},
		},
		nil,
	)

	res, err := combine.NewMedian().Fit(set)
	require.NoError(t, err)

	out := Summary(res)
	assert.Contains(t, out, "row-wise")
	assert.Contains(t, out, "Training Set")
	assert.NotContains(t, out, "Test Set")
}

func TestSummaryNil(t *testing.T) {
	assert.Empty(t, Summary(nil))
}

func TestCombinerSummary(t *testing.T) {
	set := testSet(t,
		[]float64{2.0, 2.0, 2.0},
		[][]float64{
			{1.0, 3.0},
			{1.0, 3.0},
			{1.0, 3.0},
		},
		nil,
	)
	c, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, c.Fit(set))

	out, err := c.Summary()
	require.NoError(t, err)
	assert.Contains(t, out, "Method: simple average")
}
