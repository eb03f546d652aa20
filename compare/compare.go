// Package compare implements four interchangeable strategies for
// computing the element-wise difference between two equally-shaped
// tables. All strategies produce identical results; they differ only
// in how they traverse the data, which is what the benchmark measures.
package compare

import (
	"errors"
	"fmt"

	"github.com/rwtaggart/framebench/table"
)

// ErrMisaligned reports a precondition violation: the two input tables
// do not share identical column names and row counts.
var ErrMisaligned = errors.New("tables are not aligned")

// Func computes a difference table where each cell equals b - a at the
// corresponding position. Implementations never mutate their inputs
// and reject misaligned pairs with an error wrapping ErrMisaligned.
type Func func(a, b *table.Table) (*table.Table, error)

// Variant pairs a comparison strategy with the stable name used in
// timing output.
type Variant struct {
	Name string
	Fn   Func
}

// Variants returns the four strategies in a fixed order.
func Variants() []Variant {
	return []Variant{
		{Name: "column-vector", Fn: ColumnVector},
		{Name: "table-diff", Fn: TableDiff},
		{Name: "element-wise", Fn: ElementWise},
		{Name: "scalar-apply", Fn: ScalarApply},
	}
}

// ColumnVector subtracts whole columns, one bulk pass over the raw
// column slices at a time.
func ColumnVector(a, b *table.Table) (*table.Table, error) {
	if err := aligned(a, b); err != nil {
		return nil, err
	}

	out := table.New()

	for _, name := range a.Columns() {
		ca, cb := a.Column(name), b.Column(name)

		diff := make([]int64, len(ca))
		for i := range ca {
			diff[i] = cb[i] - ca[i]
		}

		if err := out.AddColumn(name, diff); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// TableDiff delegates to the whole-table Diff primitive.
func TableDiff(a, b *table.Table) (*table.Table, error) {
	if err := aligned(a, b); err != nil {
		return nil, err
	}

	return a.Diff(b)
}

// ElementWise walks each column row by row, fetching and subtracting
// one scalar pair at a time through the Table accessors.
func ElementWise(a, b *table.Table) (*table.Table, error) {
	if err := aligned(a, b); err != nil {
		return nil, err
	}

	out := table.New()

	for _, name := range a.Columns() {
		diff := make([]int64, 0, a.Rows())
		for i := 0; i < a.Rows(); i++ {
			diff = append(diff, b.At(name, i)-a.At(name, i))
		}

		if err := out.AddColumn(name, diff); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// diffScalar is the row-mapping function applied by ScalarApply.
func diffScalar(av, bv int64) int64 {
	return bv - av
}

// ScalarApply maps diffScalar over each column pair through the
// generic ApplyColumns primitive. The mapping runs per-row within one
// column at a time, so it is element-wise despite using a bulk-apply
// entry point.
func ScalarApply(a, b *table.Table) (*table.Table, error) {
	if err := aligned(a, b); err != nil {
		return nil, err
	}

	out := table.New()

	for _, name := range a.Columns() {
		diff, err := table.ApplyColumns(a, b, name, diffScalar)
		if err != nil {
			return nil, err
		}

		if err := out.AddColumn(name, diff); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func aligned(a, b *table.Table) error {
	if a.Rows() != b.Rows() {
		return fmt.Errorf(
			"%w: %d rows vs %d rows", ErrMisaligned, a.Rows(), b.Rows(),
		)
	}

	an, bn := a.Columns(), b.Columns()

	if len(an) != len(bn) {
		return fmt.Errorf(
			"%w: %d columns vs %d columns", ErrMisaligned, len(an), len(bn),
		)
	}

	for i := range an {
		if an[i] != bn[i] {
			return fmt.Errorf(
				"%w: column %d named %q vs %q",
				ErrMisaligned, i, an[i], bn[i],
			)
		}
	}

	return nil
}
