package report

import (
	geojson "github.com/paulmach/go.geojson"

	"github.com/ironsheep/field-tools-mcp/internal/contour"
	"github.com/ironsheep/field-tools-mcp/internal/critical"
)

// ContourFeatures returns one LineString feature per segment. Each feature
// carries its position in segs as "index" and the contour "threshold".
func ContourFeatures(threshold float64, segs []contour.Segment) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, s := range segs {
		f := geojson.NewLineStringFeature([][]float64{
			{s.P1.X, s.P1.Y},
			{s.P2.X, s.P2.Y},
		})
		f.SetProperty("index", i)
		f.SetProperty("threshold", threshold)
		fc.AddFeature(f)
	}
	return fc
}

// CriticalFeatures returns one Point feature per critical point with its
// "kind", "value", "row" and "col" as properties.
func CriticalFeatures(points []critical.Point) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range points {
		f := geojson.NewPointFeature([]float64{p.X, p.Y})
		f.SetProperty("kind", p.Kind.String())
		f.SetProperty("value", p.Value)
		f.SetProperty("row", p.Row)
		f.SetProperty("col", p.Col)
		fc.AddFeature(f)
	}
	return fc
}
