package report

import (
	"fmt"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/rwtaggart/framebench/harness"
)

// Chart file names written by WriteCharts.
const (
	LinearChartFile = "timings_linear.png"
	LogChartFile    = "timings_log.png"
)

// WriteCharts renders duration-versus-size charts into dir: one with
// linear axes and one with log-log axes. Each variant becomes one
// line-and-points series; elapsed times are averaged over trials.
func WriteCharts(dir string, samples []harness.Sample) error {
	if len(samples) == 0 {
		return fmt.Errorf("no samples to chart")
	}

	series := buildSeries(samples)

	linear := filepath.Join(dir, LinearChartFile)
	if err := renderChart(linear, series, false); err != nil {
		return fmt.Errorf("render linear chart: %w", err)
	}

	logLog := filepath.Join(dir, LogChartFile)
	if err := renderChart(logLog, series, true); err != nil {
		return fmt.Errorf("render log chart: %w", err)
	}

	return nil
}

type chartSeries struct {
	name string
	xys  plotter.XYs
}

// buildSeries converts samples into one XY series per variant: x is
// the cell count, y the mean elapsed seconds.
func buildSeries(samples []harness.Sample) []chartSeries {
	variants := variantOrder(samples)
	shapes := shapeOrder(samples)
	means := meanByVariantShape(samples)

	series := make([]chartSeries, 0, len(variants))

	for _, v := range variants {
		xys := make(plotter.XYs, 0, len(shapes))

		for _, sh := range shapes {
			mean, ok := means[key{v, sh}]
			if !ok {
				continue
			}

			sec := mean.Seconds()
			if sec <= 0 {
				// Log axes cannot plot zero; clamp to clock resolution.
				sec = float64(time.Nanosecond) / float64(time.Second)
			}

			xys = append(xys, plotter.XY{
				X: float64(sh.rows * sh.cols),
				Y: sec,
			})
		}

		series = append(series, chartSeries{name: v, xys: xys})
	}

	return series
}

func renderChart(path string, series []chartSeries, logScale bool) error {
	p := plot.New()
	p.Title.Text = "Element-wise table comparison"
	p.X.Label.Text = "cells (rows × cols)"
	p.Y.Label.Text = "seconds"
	p.Legend.Top = true
	p.Legend.Left = true

	if logScale {
		p.X.Scale = plot.LogScale{}
		p.Y.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	args := make([]interface{}, 0, 2*len(series))
	for _, s := range series {
		args = append(args, s.name, s.xys)
	}

	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return fmt.Errorf("add series: %w", err)
	}

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}

	return nil
}
