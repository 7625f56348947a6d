package accuracy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScoresPerfect(t *testing.T) {
	actual := []float64{1.3, 2.7, 3.1, 4.9, 5.2}
	predicted := make([]float64, len(actual))
	copy(predicted, actual)

	scores, err := NewScores(predicted, actual, NaiveScale(actual))
	require.NoError(t, err)

	assert.InDelta(t, 0.0, scores.ME, 1e-12)
	assert.InDelta(t, 0.0, scores.MAE, 1e-12)
	assert.InDelta(t, 0.0, scores.RMSE, 1e-12)
	assert.InDelta(t, 0.0, scores.MPE, 1e-12)
	assert.InDelta(t, 0.0, scores.MAPE, 1e-12)
	assert.InDelta(t, 0.0, scores.MASE, 1e-12)
}

func TestNewScores(t *testing.T) {
	actual := []float64{1.0, 2.0, 3.0, 4.0}
	predicted := []float64{2.0, 1.0, 4.0, 3.0}

	scores, err := NewScores(predicted, actual, NaiveScale(actual))
	require.NoError(t, err)

	assert.InDelta(t, 0.0, scores.ME, 1e-12)
	assert.InDelta(t, 1.0, scores.MAE, 1e-12)
	assert.InDelta(t, 1.0, scores.RMSE, 1e-12)
	// (-1/1 + 1/2 - 1/3 + 1/4) * 100 / 4
	assert.InDelta(t, -14.583333, scores.MPE, 1e-5)
	// (1/1 + 1/2 + 1/3 + 1/4) * 100 / 4
	assert.InDelta(t, 52.083333, scores.MAPE, 1e-5)
	assert.InDelta(t, 1.0, scores.MASE, 1e-12)
}

func TestNewScoresNoScale(t *testing.T) {
	actual := []float64{1.0, 2.0}
	scores, err := NewScores(actual, actual, 0.0)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(scores.MASE))
}

func TestLenMismatch(t *testing.T) {
	_, err := NewScores([]float64{1.0, 2.0}, []float64{1.0}, 0.0)
	require.ErrorIs(t, err, ErrLenMismatch)

	for name, fn := range map[string]func(p, a []float64) (float64, error){
		"me":   ME,
		"mae":  MAE,
		"rmse": RMSE,
		"mpe":  MPE,
		"mape": MAPE,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := fn([]float64{1.0, 2.0}, []float64{1.0})
			require.ErrorIs(t, err, ErrLenMismatch)
		})
	}
}

func TestSkipsNaN(t *testing.T) {
	actual := []float64{1.0, math.NaN(), 3.0}
	predicted := []float64{1.0, 2.0, 3.0}

	mae, err := MAE(predicted, actual)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, mae, 1e-12)
}

func TestNaiveScale(t *testing.T) {
	assert.InDelta(t, 1.0, NaiveScale([]float64{1.0, 2.0, 3.0, 4.0}), 1e-12)
	assert.InDelta(t, 0.0, NaiveScale([]float64{5.0}), 1e-12)
	assert.InDelta(t, 2.0, NaiveScale([]float64{1.0, 3.0, math.NaN(), 2.0}), 1e-12)
}
