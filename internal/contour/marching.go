package contour

import (
	"math"

	"github.com/ironsheep/field-tools-mcp/internal/field"
)

// Segment is one contour edge inside a single grid cell.
// P1 and P2 carry no direction beyond storage order.
type Segment struct {
	P1 field.Point `json:"p1"`
	P2 field.Point `json:"p2"`
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return math.Hypot(s.P2.X-s.P1.X, s.P2.Y-s.P1.Y)
}

// Edge names a side of a cell.
type Edge int

const (
	// EdgeLeft (a) joins p1 and p4.
	EdgeLeft Edge = iota
	// EdgeTop (b) joins p4 and p3.
	EdgeTop
	// EdgeRight (c) joins p2 and p3.
	EdgeRight
	// EdgeBottom (d) joins p1 and p2.
	EdgeBottom
)

// String returns the single-letter edge name used in the case table.
func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "a"
	case EdgeTop:
		return "b"
	case EdgeRight:
		return "c"
	case EdgeBottom:
		return "d"
	}
	return "?"
}

// MarshalText encodes the edge as its letter.
func (e Edge) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// EdgePair is the pair of crossings one segment joins.
type EdgePair [2]Edge

var (
	ad = EdgePair{EdgeLeft, EdgeBottom}
	cd = EdgePair{EdgeRight, EdgeBottom}
	ac = EdgePair{EdgeLeft, EdgeRight}
	bc = EdgePair{EdgeTop, EdgeRight}
	bd = EdgePair{EdgeTop, EdgeBottom}
	ab = EdgePair{EdgeLeft, EdgeTop}
)

// caseTable maps a case index to the segments emitted for it.
// Index and complement (15-index) share a row except for the ambiguous 5 and 10.
var caseTable = [16][]EdgePair{
	0:  nil,
	1:  {ad},
	2:  {cd},
	3:  {ac},
	4:  {bc},
	5:  {ad, bc},
	6:  {bd},
	7:  {ab},
	8:  {ab},
	9:  {bd},
	10: {ab, cd},
	11: {bc},
	12: {ac},
	13: {cd},
	14: {ad},
	15: nil,
}

// CaseIndex returns the 4-bit Marching Squares index for corner values
// v1..v4 (p1..p4): bit k is set when v(k+1) > threshold.
func CaseIndex(v1, v2, v3, v4, threshold float64) int {
	idx := 0
	if v1 > threshold {
		idx |= 1
	}
	if v2 > threshold {
		idx |= 2
	}
	if v3 > threshold {
		idx |= 4
	}
	if v4 > threshold {
		idx |= 8
	}
	return idx
}

// CaseEdges returns the edge pairs emitted for case index idx (0..15).
// The returned slice must not be modified.
func CaseEdges(idx int) []EdgePair {
	return caseTable[idx&15]
}

// cell holds the corners of one grid cell for a single threshold.
type cell struct {
	p1, p2, p3, p4 field.Point
	v1, v2, v3, v4 float64
	threshold      float64
}

// crossing interpolates the threshold crossing on edge e.
func (c *cell) crossing(e Edge) field.Point {
	switch e {
	case EdgeLeft:
		return Interpolate(c.p1, c.p4, c.v1, c.v4, c.threshold)
	case EdgeTop:
		return Interpolate(c.p4, c.p3, c.v4, c.v3, c.threshold)
	case EdgeRight:
		return Interpolate(c.p2, c.p3, c.v2, c.v3, c.threshold)
	default:
		return Interpolate(c.p1, c.p2, c.v1, c.v2, c.threshold)
	}
}

// Extract runs Marching Squares over every cell of g and returns the
// contour segments for threshold in row-major cell order.
//
// A grid with fewer than two rows or columns has no cells and yields an
// empty, non-nil slice. g is only read.
//
// Complexity: O(W×H) time; memory proportional to the number of segments.
func Extract(g *field.Grid, threshold float64) []Segment {
	segments := make([]Segment, 0)

	for j := 0; j < g.Height()-1; j++ {
		for i := 0; i < g.Width()-1; i++ {
			c := cell{
				p1:        g.Vertex(j, i),
				p2:        g.Vertex(j, i+1),
				p3:        g.Vertex(j+1, i+1),
				p4:        g.Vertex(j+1, i),
				v1:        g.Value(j, i),
				v2:        g.Value(j, i+1),
				v3:        g.Value(j+1, i+1),
				v4:        g.Value(j+1, i),
				threshold: threshold,
			}

			idx := CaseIndex(c.v1, c.v2, c.v3, c.v4, threshold)
			for _, pair := range caseTable[idx] {
				segments = append(segments, Segment{
					P1: c.crossing(pair[0]),
					P2: c.crossing(pair[1]),
				})
			}
		}
	}

	return segments
}

// Result is the outcome of a contour extraction.
type Result struct {
	// Threshold is the iso-value the segments trace.
	Threshold float64 `json:"threshold"`

	// Segments in row-major cell order.
	Segments []Segment `json:"segments"`

	// Count is len(Segments).
	Count int `json:"count"`

	// TotalLength is the summed Euclidean length of all segments.
	TotalLength float64 `json:"total_length"`
}

// Analyze extracts contours and summarizes them.
func Analyze(g *field.Grid, threshold float64) *Result {
	segments := Extract(g, threshold)

	var total float64
	for _, s := range segments {
		total += s.Length()
	}

	return &Result{
		Threshold:   threshold,
		Segments:    segments,
		Count:       len(segments),
		TotalLength: total,
	}
}
