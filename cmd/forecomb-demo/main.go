// Command forecomb-demo fits every combination method on a synthetic
// candidate forecast panel, prints the leaderboard and the winning summary,
// and writes the fitted model and an HTML plot of the fit.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	forecomb "github.com/aouyang1/go-forecomb"
	"github.com/aouyang1/go-forecomb/combine"
	"github.com/aouyang1/go-forecomb/dataset"
	"github.com/goccy/go-json"
	"github.com/pkg/profile"
)

func generateSeries(n int) ([]float64, [][]float64) {
	actual := make([]float64, n)
	forecasts := make([][]float64, n)
	period := 1440.0
	for i := 0; i < n; i++ {
		y := 98.3 + 10.5*math.Sin(2.0*math.Pi*float64(i)/period)
		actual[i] = y
		forecasts[i] = []float64{
			y + 2.7,
			y + 3.2*math.Sin(2.0*math.Pi*float64(i)/97.0),
			98.3 + 10.5*math.Sin(2.0*math.Pi*float64(i-30)/period),
		}
	}
	return actual, forecasts
}

func run() error {
	n := flag.Int("n", 7*1440, "number of observations to generate")
	plotPath := flag.String("plot", "fit.html", "output path of the fit plot")
	modelPath := flag.String("model", "model.json", "output path of the fitted model")
	cpuProfile := flag.Bool("profile", false, "write a CPU profile to the working directory")
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	actual, forecasts := generateSeries(*n)
	cut := *n * 4 / 5
	set, err := dataset.New(actual[:cut], forecasts[:cut], &dataset.Options{
		ModelNames:    []string{"biased", "noisy", "lagged"},
		ActualTest:    actual[cut:],
		ForecastsTest: forecasts[cut:],
	})
	if err != nil {
		return err
	}

	best, scores, err := forecomb.AutoCombine(set, nil)
	if err != nil {
		return err
	}

	fmt.Println("Leaderboard:")
	for _, s := range scores {
		fmt.Printf("  %-28s %.4f\n", s.Method, s.RMSE)
	}
	fmt.Println()
	fmt.Println(forecomb.Summary(best))

	// refit the winner through a combiner for the model and plot outputs
	var winner combine.Method
	for _, m := range combine.All() {
		if m.Name() == best.Method {
			winner = m
			break
		}
	}
	c, err := forecomb.New(&forecomb.Options{Method: winner})
	if err != nil {
		return err
	}
	if err := c.Fit(set); err != nil {
		return err
	}
	m, err := c.Model()
	if err != nil {
		return err
	}
	bytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(*modelPath, bytes, 0o644); err != nil {
		return err
	}
	return c.PlotFit(*plotPath)
}

func main() {
	if err := run(); err != nil {
		slog.Error("demo failed", "error", err.Error())
		os.Exit(1)
	}
}
