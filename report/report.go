// Package report formats timing samples into a CSV file, chart images,
// and a terminal comparison table.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/rwtaggart/framebench/harness"
)

// WriteCSV writes the samples as CSV with a stable column ordering:
// variant, rows, cols, trial, duration_ns. Rows appear in sample
// order.
func WriteCSV(w io.Writer, samples []harness.Sample) error {
	cw := csv.NewWriter(w)

	header := []string{"variant", "rows", "cols", "trial", "duration_ns"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, s := range samples {
		record := []string{
			s.Variant,
			strconv.Itoa(s.Rows),
			strconv.Itoa(s.Cols),
			strconv.Itoa(s.Trial),
			strconv.FormatInt(s.Elapsed.Nanoseconds(), 10),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write sample: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Summarize writes a markdown comparison table per shape, with each
// variant's mean elapsed time and its slowdown relative to the fastest
// variant for that shape.
func Summarize(w io.Writer, samples []harness.Sample) error {
	if len(samples) == 0 {
		return fmt.Errorf("no samples to report")
	}

	variants := variantOrder(samples)
	shapes := shapeOrder(samples)
	means := meanByVariantShape(samples)

	fmt.Fprintln(w, "## Comparison Results")

	for _, shape := range shapes {
		fastest := time.Duration(0)

		for _, v := range variants {
			mean, ok := means[key{v, shape}]
			if !ok {
				continue
			}

			if fastest == 0 || mean < fastest {
				fastest = mean
			}
		}

		fmt.Fprintln(w)
		fmt.Fprintf(w, "### %dx%d (%d cells)\n", shape.rows, shape.cols,
			shape.rows*shape.cols)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Variant | Elapsed | Slowdown |")
		fmt.Fprintln(w, "|---------|---------|----------|")

		for _, v := range variants {
			mean, ok := means[key{v, shape}]
			if !ok {
				continue
			}

			slowdown := 1.0
			if fastest > 0 {
				slowdown = float64(mean) / float64(fastest)
			}

			fmt.Fprintf(w, "| %s | %s | %.2fx |\n",
				v, formatDuration(mean), slowdown)
		}
	}

	return nil
}

type shape struct {
	rows int
	cols int
}

type key struct {
	variant string
	shape   shape
}

// variantOrder returns variant names in first-appearance order.
func variantOrder(samples []harness.Sample) []string {
	seen := make(map[string]bool)

	var order []string

	for _, s := range samples {
		if !seen[s.Variant] {
			seen[s.Variant] = true

			order = append(order, s.Variant)
		}
	}

	return order
}

// shapeOrder returns the distinct shapes sorted by ascending cell
// count.
func shapeOrder(samples []harness.Sample) []shape {
	seen := make(map[shape]bool)

	var shapes []shape

	for _, s := range samples {
		sh := shape{rows: s.Rows, cols: s.Cols}
		if !seen[sh] {
			seen[sh] = true

			shapes = append(shapes, sh)
		}
	}

	sort.Slice(shapes, func(i, j int) bool {
		ci, cj := shapes[i].rows*shapes[i].cols, shapes[j].rows*shapes[j].cols
		if ci != cj {
			return ci < cj
		}

		return shapes[i].rows < shapes[j].rows
	})

	return shapes
}

// meanByVariantShape averages the elapsed time over trials for each
// (variant, shape) combination.
func meanByVariantShape(samples []harness.Sample) map[key]time.Duration {
	totals := make(map[key]time.Duration)
	counts := make(map[key]int)

	for _, s := range samples {
		k := key{s.Variant, shape{rows: s.Rows, cols: s.Cols}}
		totals[k] += s.Elapsed
		counts[k]++
	}

	means := make(map[key]time.Duration, len(totals))
	for k, total := range totals {
		means[k] = total / time.Duration(counts[k])
	}

	return means
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%.1fµs", float64(d)/float64(time.Microsecond))
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
