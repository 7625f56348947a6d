package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRegressionImputerLinearRelation(t *testing.T) {
	// col2 = 2*col1 + 1 with one missing entry
	x := mat.NewDense(6, 2, []float64{
		1.0, 3.0,
		2.0, 5.0,
		3.0, math.NaN(),
		4.0, 9.0,
		5.0, 11.0,
		6.0, 13.0,
	})

	require.NoError(t, NewRegressionImputer().Impute(x))
	assert.InDelta(t, 7.0, x.At(2, 1), 1e-6)
}

func TestRegressionImputerMultipleGaps(t *testing.T) {
	// col2 = 2*col1 + 1 with col3 = col1^2 breaking collinearity
	x := mat.NewDense(6, 3, []float64{
		1.0, 3.0, 1.0,
		2.0, 5.0, 4.0,
		3.0, math.NaN(), 9.0,
		4.0, 9.0, 16.0,
		5.0, math.NaN(), 25.0,
		6.0, 13.0, 36.0,
	})

	require.NoError(t, NewRegressionImputer().Impute(x))
	assert.InDelta(t, 7.0, x.At(2, 1), 1e-6)
	assert.InDelta(t, 11.0, x.At(4, 1), 1e-6)
}

func TestRegressionImputerNoMissing(t *testing.T) {
	orig := []float64{1.0, 2.0, 3.0, 4.0}
	x := mat.NewDense(2, 2, append([]float64{}, orig...))

	require.NoError(t, NewRegressionImputer().Impute(x))
	assert.Equal(t, orig, x.RawMatrix().Data)
}

func TestRegressionImputerAllMissingColumn(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{
		1.0, math.NaN(),
		2.0, math.NaN(),
	})
	require.ErrorIs(t, NewRegressionImputer().Impute(x), ErrInfeasible)
}

func TestRegressionImputerNil(t *testing.T) {
	require.ErrorIs(t, NewRegressionImputer().Impute(nil), ErrNoInput)
}
