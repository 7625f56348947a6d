package forecomb

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/aouyang1/go-forecomb/accuracy"
	"github.com/aouyang1/go-forecomb/combine"
)

// Summary renders a human readable report of a combination result with the
// method, the per model weight table, and accuracy statistics for the
// training and optional test set.
func Summary(res *combine.Result) string {
	if res == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Method: %s\n", res.Method)
	if res.Intercept != nil {
		fmt.Fprintf(&sb, "Intercept: %.6f\n", *res.Intercept)
	}
	if res.RowWise {
		sb.WriteString("Weights (nominal, applied row-wise):\n")
	} else {
		sb.WriteString("Weights:\n")
	}

	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	for i, name := range res.Models {
		fmt.Fprintf(tw, "  %s\t%.6f\n", name, res.Weights[i])
	}
	tw.Flush()

	sb.WriteString("\nAccuracy:\n")
	tw = tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  \tME\tMAE\tRMSE\tMPE\tMAPE\tMASE\n")
	writeScores(tw, "Training Set", res.AccuracyTrain)
	if res.AccuracyTest != nil {
		writeScores(tw, "Test Set", res.AccuracyTest)
	}
	tw.Flush()
	return sb.String()
}

func writeScores(tw *tabwriter.Writer, label string, s *accuracy.Scores) {
	mase := "-"
	if !math.IsNaN(s.MASE) {
		mase = fmt.Sprintf("%.4f", s.MASE)
	}
	fmt.Fprintf(tw, "  %s\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%s\n",
		label, s.ME, s.MAE, s.RMSE, s.MPE, s.MAPE, mase)
}

// Summary renders a human readable report of the current fit.
func (c *Combiner) Summary() (string, error) {
	if c.result == nil {
		return "", ErrUntrainedCombiner
	}
	return Summary(c.result), nil
}
