package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadCSV parses a table from CSV: a header row of column names
// followed by one row of int64 values per table row.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}

	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make([][]int64, len(header))

	row := 0

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		for i, field := range record {
			v, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, fmt.Errorf(
					"row %d column %q: %w", row, header[i], err,
				)
			}

			columns[i] = append(columns[i], v)
		}

		row++
	}

	return FromColumns(header, columns)
}

// ReadFile reads a CSV table from path.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return t, nil
}

// WriteCSV writes the table as CSV with a header row of column names.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.names); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(t.names))

	for row := 0; row < t.rows; row++ {
		for i, name := range t.names {
			record[i] = strconv.FormatInt(t.cols[name][row], 10)
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteFile writes the table as CSV to path, creating or truncating
// the file.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table file: %w", err)
	}

	if err := t.WriteCSV(f); err != nil {
		f.Close()

		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}
