package forecomb

import (
	"fmt"
	"strings"

	"github.com/aouyang1/go-forecomb/combine"
	mat_ "github.com/aouyang1/go-forecomb/mat"
)

// Model is a serializable representation of a combination fit. It carries
// everything needed to combine a new forecast panel without refitting.
type Model struct {
	Method       string    `json:"method"`
	Models       []string  `json:"models"`
	Weights      []float64 `json:"weights"`
	Intercept    *float64  `json:"intercept,omitempty"`
	RowWise      bool      `json:"row_wise,omitempty"`
	TrimFraction float64   `json:"trim_fraction,omitempty"`
}

// Predict applies the model to a new panel of candidate forecasts with the
// same column order as the training set.
func (m Model) Predict(forecasts [][]float64) ([]float64, error) {
	x, err := mat_.NewDenseFromArray(forecasts)
	if err != nil {
		return nil, fmt.Errorf("unable to build forecast panel, %w", err)
	}
	_, n := x.Dims()
	if n != len(m.Models) {
		return nil, fmt.Errorf("panel has %d columns, model expects %d, %w", n, len(m.Models), combine.ErrWeightLenMismatch)
	}

	if m.RowWise {
		stat, err := rowStatFor(m.Method, n, m.TrimFraction)
		if err != nil {
			return nil, err
		}
		return combine.ApplyRowStat(stat, x), nil
	}

	intercept := 0.0
	if m.Intercept != nil {
		intercept = *m.Intercept
	}
	return combine.Apply(m.Weights, intercept, x)
}

// Eq returns a string representation of the combination represented as
// y ~ b + m1x1 + m2x2 ...
func (m Model) Eq() string {
	var sb strings.Builder
	sb.WriteString("y ~ ")
	if m.RowWise {
		sb.WriteString(m.Method)
		return sb.String()
	}
	if m.Intercept != nil {
		sb.WriteString(fmt.Sprintf("%.4f", *m.Intercept))
	} else {
		sb.WriteString("0")
	}
	for i, name := range m.Models {
		sb.WriteString(fmt.Sprintf(" + %.4f*%s", m.Weights[i], name))
	}
	return sb.String()
}
