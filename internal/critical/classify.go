package critical

import (
	"github.com/ironsheep/field-tools-mcp/internal/field"
)

// ringOffsets are (dRow, dCol) steps in ring order: N, NE, E, SE, S, SW, W, NW.
var ringOffsets = [8][2]int{
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1},
}

// Ring returns the eight neighbours of interior vertex (row, col) in ring order.
func Ring(g *field.Grid, row, col int) [8]float64 {
	var ring [8]float64
	for k, d := range ringOffsets {
		ring[k] = g.Value(row+d[0], col+d[1])
	}
	return ring
}

// SignChanges counts sign flips walking the closed ring, where a neighbour
// greater than centre is +1 and any other neighbour is -1.
func SignChanges(centre float64, ring [8]float64) int {
	sign := func(v float64) bool { return v > centre }

	changes := 0
	prev := sign(ring[len(ring)-1])
	for _, v := range ring {
		cur := sign(v)
		if cur != prev {
			changes++
		}
		prev = cur
	}
	return changes
}

// ClassifyVertex applies the maximum, minimum and saddle tests in that order.
// ok is false when the vertex is none of them.
func ClassifyVertex(centre float64, ring [8]float64) (kind Kind, ok bool) {
	above, below := true, true
	for _, v := range ring {
		if centre <= v {
			above = false
		}
		if centre >= v {
			below = false
		}
	}

	switch {
	case above:
		return LocalMaximum, true
	case below:
		return LocalMinimum, true
	case SignChanges(centre, ring) >= 4:
		return Saddle, true
	}
	return 0, false
}

// Classify labels every interior vertex of g and returns the critical ones
// in row-major order. Grids narrower or shorter than 3 have no interior and
// yield an empty, non-nil slice. g is only read.
//
// Complexity: O(W×H) time.
func Classify(g *field.Grid) []Point {
	points := make([]Point, 0)

	for row := 1; row < g.Height()-1; row++ {
		for col := 1; col < g.Width()-1; col++ {
			centre := g.Value(row, col)
			kind, ok := ClassifyVertex(centre, Ring(g, row, col))
			if !ok {
				continue
			}
			v := g.Vertex(row, col)
			points = append(points, Point{
				X:     v.X,
				Y:     v.Y,
				Value: centre,
				Kind:  kind,
				Row:   row,
				Col:   col,
			})
		}
	}

	return points
}

// Filter returns the points of the given kind, preserving order.
func Filter(points []Point, kind Kind) []Point {
	out := make([]Point, 0)
	for _, p := range points {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// Result is the outcome of a classification.
type Result struct {
	// Points in row-major order, restricted to one kind when requested.
	Points []Point `json:"points"`

	// Count is len(Points).
	Count int `json:"count"`

	// Counts holds the unfiltered number of points per kind name.
	Counts map[string]int `json:"counts"`
}

// Analyze classifies g. A zero kind keeps every point; otherwise only points
// of that kind are returned. Counts always cover every kind.
func Analyze(g *field.Grid, kind Kind) *Result {
	all := Classify(g)

	counts := make(map[string]int, len(Kinds))
	for _, k := range Kinds {
		counts[k.String()] = 0
	}
	for _, p := range all {
		counts[p.Kind.String()]++
	}

	points := all
	if kind != 0 {
		points = Filter(all, kind)
	}

	return &Result{
		Points: points,
		Count:  len(points),
		Counts: counts,
	}
}
