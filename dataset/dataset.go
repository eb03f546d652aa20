// Package dataset generates pairs of integer table files for the
// comparison benchmark. Each shape produces two CSV files: table A
// with uniformly random cells, and table B equal to A plus a small
// per-cell offset.
package dataset

import (
	"fmt"
	mrand "math/rand"
	"os"
	"path/filepath"

	"github.com/rwtaggart/framebench/table"
)

// Config controls dataset generation parameters.
type Config struct {
	Shapes    []Shape
	PrefixA   string
	PrefixB   string
	Seed      int64
	MinValue  int64
	MaxValue  int64
	MaxOffset int64
}

// Summary contains statistics about a generation run.
type Summary struct {
	PairsWritten int
	CellsWritten int
	Files        []string
}

// Generator produces deterministic table pairs from a Config.
type Generator struct {
	cfg Config
	rng *mrand.Rand
}

// NewGenerator creates a Generator from the given Config.
func NewGenerator(cfg Config) *Generator {
	return &Generator{
		cfg: cfg,
		rng: mrand.New(mrand.NewSource(cfg.Seed)),
	}
}

// Generate writes one pair of table files per configured shape into
// dir, creating the directory if needed, and returns a Summary.
func (g *Generator) Generate(dir string) (Summary, error) {
	var summary Summary

	if len(g.cfg.Shapes) == 0 {
		return summary, fmt.Errorf("no shapes configured")
	}

	if g.cfg.MaxValue <= g.cfg.MinValue {
		return summary, fmt.Errorf(
			"value range [%d, %d) is empty",
			g.cfg.MinValue, g.cfg.MaxValue,
		)
	}

	if g.cfg.MaxOffset < 0 {
		return summary, fmt.Errorf(
			"max offset must be non-negative, got %d", g.cfg.MaxOffset,
		)
	}

	for _, shape := range g.cfg.Shapes {
		if err := shape.Validate(); err != nil {
			return summary, err
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return summary, fmt.Errorf("create output dir: %w", err)
	}

	for _, shape := range g.cfg.Shapes {
		a, err := g.baseTable(shape)
		if err != nil {
			return summary, fmt.Errorf("build table A %s: %w", shape, err)
		}

		b, err := g.offsetTable(a)
		if err != nil {
			return summary, fmt.Errorf("build table B %s: %w", shape, err)
		}

		pathA := filepath.Join(dir, FileName(g.cfg.PrefixA, shape))
		if err := a.WriteFile(pathA); err != nil {
			return summary, err
		}

		summary.Files = append(summary.Files, pathA)

		pathB := filepath.Join(dir, FileName(g.cfg.PrefixB, shape))
		if err := b.WriteFile(pathB); err != nil {
			return summary, err
		}

		summary.Files = append(summary.Files, pathB)
		summary.PairsWritten++
		summary.CellsWritten += shape.Cells()
	}

	return summary, nil
}

// baseTable builds a table with columns c0..c<n-1> of uniformly random
// values in [MinValue, MaxValue).
func (g *Generator) baseTable(shape Shape) (*table.Table, error) {
	span := g.cfg.MaxValue - g.cfg.MinValue

	t := table.New()

	for c := 0; c < shape.Cols; c++ {
		values := make([]int64, shape.Rows)
		for r := range values {
			values[r] = g.cfg.MinValue + g.rng.Int63n(span)
		}

		if err := t.AddColumn(fmt.Sprintf("c%d", c), values); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// offsetTable builds a copy of base with each cell perturbed by a
// uniform offset in [-MaxOffset, MaxOffset].
func (g *Generator) offsetTable(base *table.Table) (*table.Table, error) {
	t := table.New()

	for _, name := range base.Columns() {
		src := base.Column(name)

		values := make([]int64, len(src))
		for i, v := range src {
			values[i] = v + g.offset()
		}

		if err := t.AddColumn(name, values); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (g *Generator) offset() int64 {
	if g.cfg.MaxOffset == 0 {
		return 0
	}

	return g.rng.Int63n(2*g.cfg.MaxOffset+1) - g.cfg.MaxOffset
}
