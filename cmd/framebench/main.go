// Package main provides the CLI entry point for framebench, a
// benchmark of element-wise table comparison strategies.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rwtaggart/framebench/dataset"
	"github.com/rwtaggart/framebench/harness"
	"github.com/rwtaggart/framebench/report"
)

const defaultSamplesDir = "samples"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "framebench",
		Short: "Benchmark element-wise table comparison strategies",
		Long: `Framebench measures four strategies for computing the element-wise
difference between two equally-shaped integer tables, from bulk per-column
subtraction down to scalar-at-a-time iteration, and reports the timings as
CSV and charts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenerateCmd(logger))
	root.AddCommand(newAnalyzeCmd(logger))

	return root
}

func newGenerateCmd(logger *slog.Logger) *cobra.Command {
	var (
		sizes     string
		rows      int
		cols      int
		outDir    string
		prefixes  []string
		seed      int64
		minValue  int64
		maxValue  int64
		maxOffset int64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random table pairs for analysis",
		Long: `Generate one pair of CSV table files per shape. Table A holds
uniformly random integers; table B equals A plus a small per-cell offset.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), logger, generateConfig{
				sizes:     sizes,
				rows:      rows,
				cols:      cols,
				outDir:    outDir,
				prefixes:  prefixes,
				seed:      seed,
				minValue:  minValue,
				maxValue:  maxValue,
				maxOffset: maxOffset,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&sizes, "sizes", "s", "",
		`Shape list, e.g. "[(10,10), (1000,10)]"`)
	flags.IntVar(&rows, "rows", 0,
		"Number of rows for a single extra shape (with --cols)")
	flags.IntVar(&cols, "cols", 0,
		"Number of columns for a single extra shape (with --rows)")
	flags.StringVarP(&outDir, "output", "o", defaultSamplesDir,
		"Output directory for table files")
	flags.StringSliceVarP(&prefixes, "prefixes", "p", []string{"a", "b"},
		"File name prefixes for the two tables of a pair")
	flags.Int64Var(&seed, "seed", 0,
		"Random seed (0 = use current time)")
	flags.Int64Var(&minValue, "min", 10,
		"Inclusive lower bound for table A cell values")
	flags.Int64Var(&maxValue, "max", 10000,
		"Exclusive upper bound for table A cell values")
	flags.Int64Var(&maxOffset, "max-offset", 5,
		"Largest per-cell offset between tables A and B")

	return cmd
}

func newAnalyzeCmd(logger *slog.Logger) *cobra.Command {
	var (
		dir      string
		fileA    string
		fileB    string
		outDir   string
		limit    int
		trials   int
		noCharts bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Time every comparison strategy over generated table pairs",
		Long: `Load previously generated table pairs, run all four comparison
strategies over each pair, and write a timing CSV plus linear- and
log-scale charts.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd.Context(), logger, analyzeConfig{
				dir:      dir,
				fileA:    fileA,
				fileB:    fileB,
				outDir:   outDir,
				limit:    limit,
				trials:   trials,
				noCharts: noCharts,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&dir, "dir", "d", "",
		"Directory holding generated table pairs")
	flags.StringVar(&fileA, "file-a", "",
		"Path to table A (with --file-b, instead of --dir)")
	flags.StringVar(&fileB, "file-b", "",
		"Path to table B (with --file-a, instead of --dir)")
	flags.StringVarP(&outDir, "output", "o", "results",
		"Output directory for the timing CSV and charts")
	flags.IntVar(&limit, "limit", 0,
		"Limit the number of pairs analyzed (0 = no limit)")
	flags.IntVar(&trials, "trials", 1,
		"Trials per variant and pair")
	flags.BoolVar(&noCharts, "no-charts", false,
		"Skip chart rendering")

	return cmd
}

type generateConfig struct {
	sizes     string
	rows      int
	cols      int
	outDir    string
	prefixes  []string
	seed      int64
	minValue  int64
	maxValue  int64
	maxOffset int64
}

type analyzeConfig struct {
	dir      string
	fileA    string
	fileB    string
	outDir   string
	limit    int
	trials   int
	noCharts bool
}

func runGenerate(
	ctx context.Context,
	logger *slog.Logger,
	cfg generateConfig,
) error {
	var shapes []dataset.Shape

	if cfg.sizes != "" {
		parsed, err := dataset.ParseShapes(cfg.sizes)
		if err != nil {
			return err
		}

		shapes = parsed
	}

	if cfg.rows != 0 || cfg.cols != 0 {
		shapes = append(shapes, dataset.Shape{Rows: cfg.rows, Cols: cfg.cols})
	}

	if len(shapes) == 0 {
		return fmt.Errorf(
			"either --sizes or both --rows and --cols are required",
		)
	}

	if len(cfg.prefixes) != 2 {
		return fmt.Errorf(
			"exactly two prefixes are required, got %d", len(cfg.prefixes),
		)
	}

	seed := cfg.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.InfoContext(ctx, "generating table pairs",
		slog.Int("shapes", len(shapes)),
		slog.String("dir", cfg.outDir),
		slog.Int64("seed", seed),
	)

	gen := dataset.NewGenerator(dataset.Config{
		Shapes:    shapes,
		PrefixA:   cfg.prefixes[0],
		PrefixB:   cfg.prefixes[1],
		Seed:      seed,
		MinValue:  cfg.minValue,
		MaxValue:  cfg.maxValue,
		MaxOffset: cfg.maxOffset,
	})

	summary, err := gen.Generate(cfg.outDir)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	logger.InfoContext(ctx, "generation complete",
		slog.Int("pairs", summary.PairsWritten),
		slog.Int("cells_per_table", summary.CellsWritten),
		slog.Int("files", len(summary.Files)),
	)

	return nil
}

func runAnalyze(
	ctx context.Context,
	logger *slog.Logger,
	cfg analyzeConfig,
) error {
	var (
		pairs []harness.Pair
		err   error
	)

	switch {
	case cfg.dir != "":
		pairs, err = harness.DiscoverPairs(cfg.dir)
		if err != nil {
			return err
		}

	case cfg.fileA != "" && cfg.fileB != "":
		pairs = []harness.Pair{harness.PairFromFiles(cfg.fileA, cfg.fileB)}

	default:
		return fmt.Errorf(
			"either --dir or both --file-a and --file-b are required",
		)
	}

	logger.InfoContext(ctx, "starting analysis",
		slog.Int("pairs", len(pairs)),
		slog.Int("trials", cfg.trials),
	)

	runner := harness.NewRunner(cfg.trials, cfg.limit, logger)

	samples, err := runner.Run(pairs)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	if err := os.MkdirAll(cfg.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	csvPath := filepath.Join(cfg.outDir, "timings.csv")

	csvFile, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("create timing CSV: %w", err)
	}

	if err := report.WriteCSV(csvFile, samples); err != nil {
		csvFile.Close()

		return fmt.Errorf("write timing CSV: %w", err)
	}

	if err := csvFile.Close(); err != nil {
		return fmt.Errorf("close timing CSV: %w", err)
	}

	if !cfg.noCharts {
		if err := report.WriteCharts(cfg.outDir, samples); err != nil {
			return fmt.Errorf("write charts: %w", err)
		}
	}

	if err := report.Summarize(os.Stdout, samples); err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	logger.InfoContext(ctx, "analysis complete",
		slog.Int("samples", len(samples)),
		slog.String("csv", csvPath),
	)

	return nil
}
