package forecomb

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/aouyang1/go-forecomb/combine"
	"github.com/aouyang1/go-forecomb/dataset"
)

// ErrNoUsableMethod means every candidate combination method failed to fit.
var ErrNoUsableMethod = errors.New("no combination method could be fit")

// AutoOptions configures automatic method selection.
type AutoOptions struct {
	// Methods is the candidate pool. Defaults to every registered method.
	Methods []combine.Method
}

// NewDefaultAutoOptions returns auto selection options over every
// registered method.
func NewDefaultAutoOptions() *AutoOptions {
	return &AutoOptions{
		Methods: combine.All(),
	}
}

// MethodScore is one leaderboard entry of an AutoCombine run.
type MethodScore struct {
	Method string  `json:"method"`
	RMSE   float64 `json:"rmse"`
}

// AutoCombine fits every candidate method on the forecast set and returns
// the result with the lowest RMSE along with the full leaderboard sorted
// best first. Selection uses test period RMSE when test actuals are
// present, training RMSE otherwise. Methods failing to fit are skipped with
// a warning.
func AutoCombine(set *dataset.ForecastSet, opt *AutoOptions) (*combine.Result, []MethodScore, error) {
	if opt == nil {
		opt = NewDefaultAutoOptions()
	}
	if len(opt.Methods) == 0 {
		opt.Methods = combine.All()
	}

	useTest := set != nil && set.ActualTest != nil

	var best *combine.Result
	bestRMSE := 0.0
	scores := make([]MethodScore, 0, len(opt.Methods))
	for _, method := range opt.Methods {
		res, err := method.Fit(set)
		if err != nil {
			slog.Warn("skipping combination method", "method", method.Name(), "error", err.Error())
			continue
		}

		rmse := res.AccuracyTrain.RMSE
		if useTest {
			rmse = res.AccuracyTest.RMSE
		}
		scores = append(scores, MethodScore{Method: res.Method, RMSE: rmse})

		if best == nil || rmse < bestRMSE {
			best = res
			bestRMSE = rmse
		}
	}
	if best == nil {
		return nil, nil, fmt.Errorf("all %d methods failed, %w", len(opt.Methods), ErrNoUsableMethod)
	}

	sort.Slice(scores, func(a, b int) bool {
		return scores[a].RMSE < scores[b].RMSE
	})
	return best, scores, nil
}
