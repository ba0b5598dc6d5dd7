// Package report renders contour segments and critical points for people and
// for GIS tools.
//
// The text form is line oriented:
//
//	Iso-contour segments for isovalue 5:
//
//	Segment: (0.500000, 1.000000) -> (1.000000, 0.500000)
//
// and, for critical points, one block per kind:
//
//	Saddle Points Found:
//
//	Point: (1.000000, 1.000000) | Value: 5.000000
//
// The GeoJSON form is a FeatureCollection with one LineString per segment or
// one Point per critical point.
package report
