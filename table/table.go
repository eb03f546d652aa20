// Package table provides an in-memory columnar container for integer
// tabular data: named columns of equal length, with CSV persistence.
package table

import (
	"fmt"
)

// Table holds named int64 columns of equal length. Column order is
// preserved from construction.
type Table struct {
	names []string
	cols  map[string][]int64
	rows  int
}

// New creates an empty Table.
func New() *Table {
	return &Table{cols: make(map[string][]int64)}
}

// FromColumns creates a Table from parallel name and column slices.
// All columns must have the same length.
func FromColumns(names []string, columns [][]int64) (*Table, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf(
			"got %d names for %d columns", len(names), len(columns),
		)
	}

	t := New()
	for i, name := range names {
		if err := t.AddColumn(name, columns[i]); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// AddColumn appends a named column. The first column fixes the row
// count; every later column must match it. The Table takes ownership
// of the slice.
func (t *Table) AddColumn(name string, values []int64) error {
	if _, exists := t.cols[name]; exists {
		return fmt.Errorf("duplicate column %q", name)
	}

	if len(t.names) > 0 && len(values) != t.rows {
		return fmt.Errorf(
			"column %q has %d rows, want %d", name, len(values), t.rows,
		)
	}

	t.names = append(t.names, name)
	t.cols[name] = values
	t.rows = len(values)

	return nil
}

// Columns returns the column names in order. The caller must not
// modify the returned slice.
func (t *Table) Columns() []string {
	return t.names
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	return t.rows
}

// Cols returns the number of columns.
func (t *Table) Cols() int {
	return len(t.names)
}

// Column returns the values of the named column, or nil if the column
// does not exist. The caller must not modify the returned slice.
func (t *Table) Column(name string) []int64 {
	return t.cols[name]
}

// At returns the value at the named column and row index. It panics on
// an unknown column or an out-of-range row, like a slice index.
func (t *Table) At(name string, row int) int64 {
	col, ok := t.cols[name]
	if !ok {
		panic(fmt.Sprintf("table: no column %q", name))
	}

	return col[row]
}

// Diff computes o - t cell by cell over the whole table in one pass
// and returns the result as a new Table. The two tables must have
// identical column names and row counts.
func (t *Table) Diff(o *Table) (*Table, error) {
	if err := alignedWith(t, o); err != nil {
		return nil, err
	}

	out := New()

	for _, name := range t.names {
		ct, co := t.cols[name], o.cols[name]

		diff := make([]int64, len(ct))
		for i := range ct {
			diff[i] = co[i] - ct[i]
		}

		if err := out.AddColumn(name, diff); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// ApplyColumns maps fn over the paired rows of one named column in a
// and b, returning the mapped values. The function is invoked once per
// row, in order.
func ApplyColumns(
	a, b *Table,
	name string,
	fn func(av, bv int64) int64,
) ([]int64, error) {
	ca, cb := a.Column(name), b.Column(name)

	if ca == nil || cb == nil {
		return nil, fmt.Errorf("column %q missing from one table", name)
	}

	if len(ca) != len(cb) {
		return nil, fmt.Errorf(
			"column %q has %d rows vs %d rows", name, len(ca), len(cb),
		)
	}

	out := make([]int64, len(ca))
	for i := range ca {
		out[i] = fn(ca[i], cb[i])
	}

	return out, nil
}

// Equal reports whether a and b have identical column names, in the
// same order, and identical cell values.
func Equal(a, b *Table) bool {
	if alignedWith(a, b) != nil {
		return false
	}

	for _, name := range a.names {
		ca, cb := a.cols[name], b.cols[name]
		for i := range ca {
			if ca[i] != cb[i] {
				return false
			}
		}
	}

	return true
}

func alignedWith(a, b *Table) error {
	if a.rows != b.rows {
		return fmt.Errorf("%d rows vs %d rows", a.rows, b.rows)
	}

	if len(a.names) != len(b.names) {
		return fmt.Errorf(
			"%d columns vs %d columns", len(a.names), len(b.names),
		)
	}

	for i := range a.names {
		if a.names[i] != b.names[i] {
			return fmt.Errorf(
				"column %d named %q vs %q", i, a.names[i], b.names[i],
			)
		}
	}

	return nil
}
