package field

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Point is a position in field space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Grid is an immutable rectangular sampling of a scalar field.
//
// The value table is a Height x Width row-major matrix: row r pairs with
// y[r] and column c with x[c]. The axes are strictly increasing.
type Grid struct {
	xs     []float64
	ys     []float64
	values *mat.Dense
}

// NewGrid builds a Grid from its axes and a [row][col] value table.
//
// The inputs are copied, so later changes by the caller do not affect the grid.
//
// Errors:
//   - ErrEmptyGrid if either axis is empty
//   - ErrUnsortedAxis if an axis is not strictly increasing
//   - ErrBadShape if len(values) != len(ys) or any row length != len(xs)
func NewGrid(xs, ys []float64, values [][]float64) (*Grid, error) {
	if len(xs) == 0 || len(ys) == 0 {
		return nil, ErrEmptyGrid
	}
	if err := checkAxis("x", xs); err != nil {
		return nil, err
	}
	if err := checkAxis("y", ys); err != nil {
		return nil, err
	}
	if len(values) != len(ys) {
		return nil, fmt.Errorf("%w: %d rows for %d y positions", ErrBadShape, len(values), len(ys))
	}

	w, h := len(xs), len(ys)
	data := make([]float64, 0, w*h)
	for r, row := range values {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d values for %d x positions", ErrBadShape, r, len(row), w)
		}
		data = append(data, row...)
	}

	return newGrid(xs, ys, mat.NewDense(h, w, data)), nil
}

// newGrid takes ownership of copies of the axes and the given matrix.
func newGrid(xs, ys []float64, values *mat.Dense) *Grid {
	return &Grid{
		xs:     append([]float64(nil), xs...),
		ys:     append([]float64(nil), ys...),
		values: values,
	}
}

func checkAxis(name string, axis []float64) error {
	for i := 1; i < len(axis); i++ {
		if !(axis[i] > axis[i-1]) {
			return fmt.Errorf("%w: %s[%d]=%g follows %g", ErrUnsortedAxis, name, i, axis[i], axis[i-1])
		}
	}
	return nil
}

// Width is the number of x positions (columns).
func (g *Grid) Width() int { return len(g.xs) }

// Height is the number of y positions (rows).
func (g *Grid) Height() int { return len(g.ys) }

// X returns the x coordinate of column col.
func (g *Grid) X(col int) float64 { return g.xs[col] }

// Y returns the y coordinate of row row.
func (g *Grid) Y(row int) float64 { return g.ys[row] }

// XCoords returns a copy of the x axis.
func (g *Grid) XCoords() []float64 { return append([]float64(nil), g.xs...) }

// YCoords returns a copy of the y axis.
func (g *Grid) YCoords() []float64 { return append([]float64(nil), g.ys...) }

// Value returns the sample at (row, col) in O(1).
// It panics if the index is outside the grid, like slice indexing.
func (g *Grid) Value(row, col int) float64 {
	return g.values.At(row, col)
}

// At is the checked form of Value.
func (g *Grid) At(row, col int) (float64, error) {
	if row < 0 || row >= g.Height() || col < 0 || col >= g.Width() {
		return 0, fmt.Errorf("Grid.At(%d,%d): %w", row, col, ErrOutOfRange)
	}
	return g.values.At(row, col), nil
}

// Vertex returns the field-space position of (row, col).
func (g *Grid) Vertex(row, col int) Point {
	return Point{X: g.xs[col], Y: g.ys[row]}
}

// Row copies row r into dst, allocating when dst is nil.
func (g *Grid) Row(r int, dst []float64) []float64 {
	if dst == nil {
		dst = make([]float64, g.Width())
	}
	return mat.Row(dst, r, g.values)
}

// Region selects a half-open block of a grid: rows [Row1, Row2) and
// columns [Col1, Col2).
type Region struct {
	Row1 int `json:"row1"`
	Col1 int `json:"col1"`
	Row2 int `json:"row2"`
	Col2 int `json:"col2"`
}

// Window returns the sub-grid covered by rg. The result shares storage with g,
// which is safe because neither grid is ever mutated.
//
// Returns ErrBadRegion when rg is empty or extends past the grid.
func (g *Grid) Window(rg Region) (*Grid, error) {
	if rg.Row1 < 0 || rg.Col1 < 0 || rg.Row2 > g.Height() || rg.Col2 > g.Width() {
		return nil, fmt.Errorf("%w: rows [%d,%d) cols [%d,%d) outside %dx%d grid",
			ErrBadRegion, rg.Row1, rg.Row2, rg.Col1, rg.Col2, g.Height(), g.Width())
	}
	if rg.Row1 >= rg.Row2 || rg.Col1 >= rg.Col2 {
		return nil, fmt.Errorf("%w: row1 must be < row2 and col1 must be < col2", ErrBadRegion)
	}
	view := g.values.Slice(rg.Row1, rg.Row2, rg.Col1, rg.Col2).(*mat.Dense)
	return &Grid{
		xs:     g.xs[rg.Col1:rg.Col2:rg.Col2],
		ys:     g.ys[rg.Row1:rg.Row2:rg.Row2],
		values: view,
	}, nil
}
