package combine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestApply(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{
		2.0, 4.0,
		6.0, 8.0,
	})

	combined, err := Apply([]float64{0.5, 0.5}, 1.0, x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{4.0, 8.0}, combined, 1e-12)
}

func TestApplyWeightMismatch(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{
		2.0, 4.0,
		6.0, 8.0,
	})

	_, err := Apply([]float64{0.5}, 0.0, x)
	require.ErrorIs(t, err, ErrWeightLenMismatch)
	require.ErrorIs(t, err, ErrNotFit)
}

func TestApplyNilMatrix(t *testing.T) {
	_, err := Apply([]float64{0.5, 0.5}, 0.0, nil)
	require.ErrorIs(t, err, ErrNoDataset)
}

func TestApplyRowStat(t *testing.T) {
	x := mat.NewDense(2, 3, []float64{
		1.0, 2.0, 3.0,
		4.0, 6.0, 5.0,
	})

	combined := ApplyRowStat(RowMedian, x)
	assert.InDeltaSlice(t, []float64{2.0, 5.0}, combined, 1e-12)

	assert.Nil(t, ApplyRowStat(RowMedian, nil))
}
