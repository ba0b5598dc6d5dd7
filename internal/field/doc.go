// Package field provides the scalar-field grid model and the loaders that build it.
//
// A Grid is a rectangular sampling of a 2D scalar field: a strictly increasing
// x axis of length Width, a strictly increasing y axis of length Height, and a
// Height x Width table of values where row r pairs with y[r] and column c with
// x[c]. Grids are immutable once built, so a single *Grid may be shared by
// concurrent readers without locking.
//
// # Coordinate System
//
// Values are addressed as (row, col):
//   - row: index into the y axis (0 = smallest y)
//   - col: index into the x axis (0 = smallest x)
//
// Vertex(row, col) returns the field-space position (x[col], y[row]).
//
// # Ingestion
//
// Grids are normally produced from (x, y, value) samples:
//   - FromSamples: deduplicate and sort the axes, then bucket each sample
//   - ReadCSV / LoadCSV: "x,y,S" text with one header line
//   - LoadHeightmap: pixel intensities of an image (PNG, JPEG, GIF, BMP, TIFF)
//
// Positions that no sample reaches hold zero. The model has no notion of a
// missing value.
//
// # Error Handling
//
// Construction and ingestion return errors wrapping the package sentinels
// (ErrEmptyGrid, ErrUnsortedAxis, ErrBadShape, ErrNoSamples, ErrParse, ...).
// Use errors.Is to match them. Ingestion never returns a partial grid.
//
// # Caching
//
// Cache keeps loaded grids keyed by path and is safe for concurrent use.
package field
