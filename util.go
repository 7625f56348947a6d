package forecomb

import (
	"fmt"
	"io"
	"os"

	"github.com/aouyang1/go-forecomb/combine"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineCombination generates an echart line chart for a combination result
// plotting the actual values against the combined fit over the training
// period, continuing into the test period when present.
func LineCombination(res *combine.Result) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: fmt.Sprintf("Combined Forecast Fit - %s", res.Method),
			},
		),
	)

	numTrain := len(res.FittedTrain)
	numTest := len(res.ForecastsTest)

	idx := make([]int, 0, numTrain+numTest)
	lineDataActual := make([]opts.LineData, 0, numTrain+numTest)
	lineDataFit := make([]opts.LineData, 0, numTrain+numTest)

	for i := 0; i < numTrain; i++ {
		idx = append(idx, i+1)
		lineDataActual = append(lineDataActual, opts.LineData{Value: res.Input.ActualTrain[i]})
		lineDataFit = append(lineDataFit, opts.LineData{Value: res.FittedTrain[i]})
	}
	for i := 0; i < numTest; i++ {
		idx = append(idx, numTrain+i+1)
		if res.Input.ActualTest != nil {
			lineDataActual = append(lineDataActual, opts.LineData{Value: res.Input.ActualTest[i]})
		}
		lineDataFit = append(lineDataFit, opts.LineData{Value: res.ForecastsTest[i]})
	}

	line.SetXAxis(idx).
		AddSeries("Actual", lineDataActual).
		AddSeries("Combined", lineDataFit)
	return line
}

// BarWeights generates an echart bar chart showing the weight assigned to
// each candidate model.
func BarWeights(res *combine.Result) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Combination Weights",
			},
		),
	)

	barData := make([]opts.BarData, 0, len(res.Weights))
	for _, w := range res.Weights {
		barData = append(barData, opts.BarData{Value: w})
	}

	bar.SetXAxis(res.Models).
		AddSeries("Weight", barData)
	return bar
}

// PlotFit uses the Apache Echarts library to generate an html file showing
// the resulting combined fit and the weight distribution.
func (c *Combiner) PlotFit(path string) error {
	if c.result == nil {
		return ErrUntrainedCombiner
	}

	page := components.NewPage()
	page.AddCharts(
		LineCombination(c.result),
		BarWeights(c.result),
	)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	return page.Render(io.MultiWriter(file))
}
