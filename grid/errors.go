// Package grid holds the skeleton pixel grid and its four parallel masks.
package grid

import "errors"

// Sentinel errors for grid construction and access.
var (
	// ErrEmptyGrid indicates a grid with zero rows or zero columns.
	ErrEmptyGrid = errors.New("grid: height and width must both be > 0")
	// ErrNonRectangular indicates ragged input rows.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrNilSource indicates a nil PixelSource was passed to NewFromSource.
	ErrNilSource = errors.New("grid: pixel source must not be nil")
)
