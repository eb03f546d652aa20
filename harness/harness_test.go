package harness

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/rwtaggart/framebench/dataset"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func generateSamples(t *testing.T, shapes ...dataset.Shape) string {
	t.Helper()

	dir := t.TempDir()

	gen := dataset.NewGenerator(dataset.Config{
		Shapes:    shapes,
		PrefixA:   "a",
		PrefixB:   "b",
		Seed:      42,
		MinValue:  10,
		MaxValue:  10000,
		MaxOffset: 5,
	})

	if _, err := gen.Generate(dir); err != nil {
		t.Fatalf("generate samples: %v", err)
	}

	return dir
}

func TestDiscoverPairsSortedByCellCount(t *testing.T) {
	dir := generateSamples(t,
		dataset.Shape{Rows: 100, Cols: 5},
		dataset.Shape{Rows: 10, Cols: 10},
		dataset.Shape{Rows: 2, Cols: 3},
	)

	pairs, err := DiscoverPairs(dir)
	if err != nil {
		t.Fatalf("DiscoverPairs failed: %v", err)
	}

	if len(pairs) != 3 {
		t.Fatalf("got %d pairs, want 3", len(pairs))
	}

	wantCells := []int{6, 100, 500}
	for i, pair := range pairs {
		if pair.Rows*pair.Cols != wantCells[i] {
			t.Errorf("pair %d has %d cells, want %d",
				i, pair.Rows*pair.Cols, wantCells[i])
		}

		if pair.PathA == "" || pair.PathB == "" {
			t.Errorf("pair %d has empty paths: %+v", i, pair)
		}
	}
}

func TestDiscoverPairsMissingDir(t *testing.T) {
	_, err := DiscoverPairs(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestDiscoverPairsEmptyDir(t *testing.T) {
	_, err := DiscoverPairs(t.TempDir())
	if err == nil {
		t.Error("expected error for directory with no pairs")
	}
}

func TestDiscoverPairsUnpairedFile(t *testing.T) {
	dir := generateSamples(t, dataset.Shape{Rows: 5, Cols: 2})

	if err := os.Remove(filepath.Join(dir, "b_5x2.csv")); err != nil {
		t.Fatal(err)
	}

	_, err := DiscoverPairs(dir)
	if err == nil {
		t.Error("expected error for unpaired shape file")
	}
}

func TestDiscoverPairsIgnoresOtherFiles(t *testing.T) {
	dir := generateSamples(t, dataset.Shape{Rows: 5, Cols: 2})

	extras := []string{"notes.txt", "timings.csv", "a_bad.csv"}
	for _, name := range extras {
		if err := os.WriteFile(
			filepath.Join(dir, name), []byte("x"), 0o644,
		); err != nil {
			t.Fatal(err)
		}
	}

	pairs, err := DiscoverPairs(dir)
	if err != nil {
		t.Fatalf("DiscoverPairs failed: %v", err)
	}

	if len(pairs) != 1 {
		t.Errorf("got %d pairs, want 1", len(pairs))
	}
}

func TestRunProducesOneSamplePerVariant(t *testing.T) {
	dir := generateSamples(t,
		dataset.Shape{Rows: 10, Cols: 10},
		dataset.Shape{Rows: 100, Cols: 5},
	)

	pairs, err := DiscoverPairs(dir)
	if err != nil {
		t.Fatal(err)
	}

	samples, err := NewRunner(1, 0, discardLogger()).Run(pairs)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(samples) != 8 {
		t.Fatalf("got %d samples, want 8 (2 shapes x 4 variants)",
			len(samples))
	}

	for _, s := range samples {
		if s.Variant == "" {
			t.Error("sample missing variant name")
		}

		if s.Elapsed < 0 {
			t.Errorf("negative elapsed time %v for %s", s.Elapsed, s.Variant)
		}

		if s.Trial != 1 {
			t.Errorf("trial = %d, want 1", s.Trial)
		}
	}
}

func TestRunTrials(t *testing.T) {
	dir := generateSamples(t, dataset.Shape{Rows: 10, Cols: 2})

	pairs, err := DiscoverPairs(dir)
	if err != nil {
		t.Fatal(err)
	}

	samples, err := NewRunner(3, 0, discardLogger()).Run(pairs)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(samples) != 12 {
		t.Fatalf("got %d samples, want 12 (1 shape x 4 variants x 3 trials)",
			len(samples))
	}
}

func TestRunLimit(t *testing.T) {
	dir := generateSamples(t,
		dataset.Shape{Rows: 10, Cols: 2},
		dataset.Shape{Rows: 20, Cols: 2},
		dataset.Shape{Rows: 30, Cols: 2},
	)

	pairs, err := DiscoverPairs(dir)
	if err != nil {
		t.Fatal(err)
	}

	samples, err := NewRunner(1, 2, discardLogger()).Run(pairs)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(samples) != 8 {
		t.Fatalf("got %d samples, want 8 (limit 2 x 4 variants)",
			len(samples))
	}

	for _, s := range samples {
		if s.Rows > 20 {
			t.Errorf("pair beyond limit was analyzed: %dx%d", s.Rows, s.Cols)
		}
	}
}

func TestRunDirectFilePair(t *testing.T) {
	dir := generateSamples(t, dataset.Shape{Rows: 6, Cols: 2})

	pair := PairFromFiles(
		filepath.Join(dir, "a_6x2.csv"),
		filepath.Join(dir, "b_6x2.csv"),
	)

	samples, err := NewRunner(1, 0, discardLogger()).Run([]Pair{pair})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(samples) != 4 {
		t.Fatalf("got %d samples, want 4", len(samples))
	}

	// Dimensions come from the loaded tables, not the Pair.
	for _, s := range samples {
		if s.Rows != 6 || s.Cols != 2 {
			t.Errorf("sample is %dx%d, want 6x2", s.Rows, s.Cols)
		}
	}
}

func TestRunMisalignedPair(t *testing.T) {
	dir := generateSamples(t,
		dataset.Shape{Rows: 6, Cols: 2},
		dataset.Shape{Rows: 8, Cols: 2},
	)

	pair := PairFromFiles(
		filepath.Join(dir, "a_6x2.csv"),
		filepath.Join(dir, "b_8x2.csv"),
	)

	_, err := NewRunner(1, 0, discardLogger()).Run([]Pair{pair})
	if err == nil {
		t.Error("expected error for misaligned pair")
	}
}
