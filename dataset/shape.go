package dataset

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Shape describes table dimensions as a (rows, cols) pair.
type Shape struct {
	Rows int
	Cols int
}

// Cells returns the total cell count of the shape.
func (s Shape) Cells() int {
	return s.Rows * s.Cols
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// Validate rejects non-positive dimensions.
func (s Shape) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return fmt.Errorf("dimensions must be positive, got %s", s)
	}

	return nil
}

// ParseShapes parses a tuple-list shape specification such as
// "[(10,10), (1000,10)]" into a list of shapes. Dimensions must be
// positive integers.
func ParseShapes(spec string) ([]Shape, error) {
	// The tuple syntax maps onto JSON arrays once the parens are
	// swapped for brackets.
	jsonish := strings.NewReplacer("(", "[", ")", "]").Replace(spec)

	var raw [][]int
	if err := json.Unmarshal([]byte(jsonish), &raw); err != nil {
		return nil, fmt.Errorf("parse shape list %q: %w", spec, err)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("shape list %q is empty", spec)
	}

	shapes := make([]Shape, 0, len(raw))

	for i, pair := range raw {
		if len(pair) != 2 {
			return nil, fmt.Errorf(
				"shape %d: want (rows, cols), got %d values", i, len(pair),
			)
		}

		shape := Shape{Rows: pair[0], Cols: pair[1]}
		if err := shape.Validate(); err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}

		shapes = append(shapes, shape)
	}

	return shapes, nil
}

// FileName returns the canonical table file name for a prefix and
// shape, e.g. "a_1000x10.csv".
func FileName(prefix string, shape Shape) string {
	return fmt.Sprintf("%s_%s.csv", prefix, shape)
}
