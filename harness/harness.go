// Package harness discovers generated table pairs and runs every
// comparator variant over them, timing each invocation.
package harness

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/rwtaggart/framebench/compare"
	"github.com/rwtaggart/framebench/table"
)

// Pair identifies the two table files of one shape. Rows and Cols are
// parsed from the file names and used only for ordering; the runner
// takes the authoritative dimensions from the loaded tables.
type Pair struct {
	PathA string
	PathB string
	Rows  int
	Cols  int
}

// PairFromFiles builds a Pair for two explicitly named table files.
func PairFromFiles(pathA, pathB string) Pair {
	return Pair{PathA: pathA, PathB: pathB}
}

var fileNamePattern = regexp.MustCompile(`^(\w+)_(\d+)x(\d+)\.csv$`)

// DiscoverPairs scans dir for table files named <prefix>_<rows>x<cols>.csv
// and pairs them up per shape, sorted by ascending cell count. Each
// shape must have exactly two files; the lexically smaller prefix is
// treated as table A.
func DiscoverPairs(dir string) ([]Pair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read samples dir: %w", err)
	}

	type member struct {
		prefix string
		path   string
	}

	groups := make(map[Pair][]member)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		m := fileNamePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}

		// The pattern guarantees both fields are digits.
		rows, _ := strconv.Atoi(m[2])
		cols, _ := strconv.Atoi(m[3])

		key := Pair{Rows: rows, Cols: cols}
		groups[key] = append(groups[key], member{
			prefix: m[1],
			path:   filepath.Join(dir, entry.Name()),
		})
	}

	if len(groups) == 0 {
		return nil, fmt.Errorf("no table pairs found in %s", dir)
	}

	pairs := make([]Pair, 0, len(groups))

	for key, members := range groups {
		if len(members) != 2 {
			return nil, fmt.Errorf(
				"shape %dx%d has %d files, want a pair",
				key.Rows, key.Cols, len(members),
			)
		}

		sort.Slice(members, func(i, j int) bool {
			return members[i].prefix < members[j].prefix
		})

		key.PathA = members[0].path
		key.PathB = members[1].path
		pairs = append(pairs, key)
	}

	sort.Slice(pairs, func(i, j int) bool {
		ci, cj := pairs[i].Rows*pairs[i].Cols, pairs[j].Rows*pairs[j].Cols
		if ci != cj {
			return ci < cj
		}

		return pairs[i].Rows < pairs[j].Rows
	})

	return pairs, nil
}

// Runner executes every comparator variant over a list of table pairs,
// strictly sequentially, and collects one Sample per timed call.
type Runner struct {
	Trials int
	Limit  int
	Logger *slog.Logger
}

// NewRunner creates a Runner. Trials below 1 means one trial per
// variant; Limit of 0 means no cap on the number of pairs.
func NewRunner(trials, limit int, logger *slog.Logger) *Runner {
	if trials < 1 {
		trials = 1
	}

	return &Runner{
		Trials: trials,
		Limit:  limit,
		Logger: logger,
	}
}

// Run loads each pair and times every variant Trials times. It fails
// if a pair is misaligned or if any variant disagrees with the others
// on the same pair.
func (r *Runner) Run(pairs []Pair) ([]Sample, error) {
	if r.Limit > 0 && len(pairs) > r.Limit {
		pairs = pairs[:r.Limit]
	}

	variants := compare.Variants()
	samples := make([]Sample, 0, len(pairs)*len(variants)*r.Trials)

	for _, pair := range pairs {
		a, err := table.ReadFile(pair.PathA)
		if err != nil {
			return nil, err
		}

		b, err := table.ReadFile(pair.PathB)
		if err != nil {
			return nil, err
		}

		r.Logger.Info("analyzing pair",
			slog.String("file_a", filepath.Base(pair.PathA)),
			slog.String("file_b", filepath.Base(pair.PathB)),
			slog.Int("rows", a.Rows()),
			slog.Int("cols", a.Cols()),
		)

		// First variant's result per pair, used to cross-check the rest.
		var reference *table.Table

		for _, variant := range variants {
			for trial := 1; trial <= r.Trials; trial++ {
				start := time.Now()

				result, err := variant.Fn(a, b)
				if err != nil {
					return nil, fmt.Errorf(
						"%s on %s: %w",
						variant.Name, filepath.Base(pair.PathA), err,
					)
				}

				elapsed := time.Since(start)

				if reference == nil {
					reference = result
				} else if !table.Equal(reference, result) {
					return nil, fmt.Errorf(
						"%s disagrees with %s on %s",
						variant.Name, variants[0].Name,
						filepath.Base(pair.PathA),
					)
				}

				samples = append(samples, Sample{
					Variant: variant.Name,
					Rows:    a.Rows(),
					Cols:    a.Cols(),
					Trial:   trial,
					Elapsed: elapsed,
				})

				r.Logger.Debug("variant finished",
					slog.String("variant", variant.Name),
					slog.Int("trial", trial),
					slog.Duration("elapsed", elapsed),
				)
			}
		}
	}

	return samples, nil
}
