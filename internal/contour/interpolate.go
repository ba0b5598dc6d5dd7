package contour

import (
	"math"

	"github.com/ironsheep/field-tools-mcp/internal/field"
)

// flatEdge is the largest |v1-v2| treated as a flat edge.
const flatEdge = 1e-9

// Interpolate returns the point on segment p1-p2 where a field varying
// linearly from v1 (at p1) to v2 (at p2) equals threshold.
//
// When |v1-v2| < 1e-9 the edge is flat and p1 is returned unchanged.
// The parameter t = (threshold-v1)/(v2-v1) is not clamped to [0,1].
func Interpolate(p1, p2 field.Point, v1, v2, threshold float64) field.Point {
	if math.Abs(v1-v2) < flatEdge {
		return p1
	}
	t := (threshold - v1) / (v2 - v1)
	return field.Point{
		X: p1.X + t*(p2.X-p1.X),
		Y: p1.Y + t*(p2.Y-p1.Y),
	}
}
