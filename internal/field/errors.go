package field

import "errors"

var (
	// ErrEmptyGrid indicates an axis with no positions.
	ErrEmptyGrid = errors.New("field: grid must have at least one row and one column")
	// ErrUnsortedAxis indicates coordinates that are not strictly increasing.
	ErrUnsortedAxis = errors.New("field: axis coordinates must be strictly increasing")
	// ErrBadShape indicates a value table whose dimensions do not match the axes.
	ErrBadShape = errors.New("field: value table does not match axis lengths")
	// ErrOutOfRange indicates a row or column index outside the grid.
	ErrOutOfRange = errors.New("field: index out of range")
	// ErrBadRegion indicates an empty or out-of-bounds window.
	ErrBadRegion = errors.New("field: invalid region")
	// ErrNoSamples indicates an ingestion source without a single usable sample.
	ErrNoSamples = errors.New("field: no usable samples")
	// ErrParse indicates a numeric field that could not be parsed.
	ErrParse = errors.New("field: invalid numeric value")
	// ErrUnsupportedFormat indicates a source whose extension has no loader.
	ErrUnsupportedFormat = errors.New("field: unsupported source format")
)
