package harness

import "time"

// Sample records one timed comparator invocation: which variant ran,
// the table dimensions, the trial number, and the measured wall-clock
// duration.
type Sample struct {
	Variant string
	Rows    int
	Cols    int
	Trial   int
	Elapsed time.Duration
}

// Cells returns the total cell count of the measured tables.
func (s Sample) Cells() int {
	return s.Rows * s.Cols
}
