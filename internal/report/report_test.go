package report

import (
	"bytes"
	"encoding/json"
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/field-tools-mcp/internal/contour"
	"github.com/ironsheep/field-tools-mcp/internal/critical"
	"github.com/ironsheep/field-tools-mcp/internal/field"
)

var testSegments = []contour.Segment{
	{P1: field.Point{X: 0.5, Y: 1}, P2: field.Point{X: 1, Y: 0.5}},
	{P1: field.Point{X: 1, Y: 1.5}, P2: field.Point{X: 1.5, Y: 1}},
}

var testPoints = []critical.Point{
	{X: 1, Y: 2, Value: 9, Kind: critical.LocalMaximum, Row: 1, Col: 1},
	{X: 2, Y: 2, Value: 5, Kind: critical.Saddle, Row: 1, Col: 2},
	{X: 2, Y: 3, Value: 0.25, Kind: critical.LocalMinimum, Row: 2, Col: 2},
}

func TestWriteContours(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteContours(&buf, 5, testSegments))

	want := "Iso-contour segments for isovalue 5:\n\n" +
		"Segment: (0.500000, 1.000000) -> (1.000000, 0.500000)\n" +
		"Segment: (1.000000, 1.500000) -> (1.500000, 1.000000)\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteContours_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteContours(&buf, 2.5, nil))
	assert.Equal(t, "Iso-contour segments for isovalue 2.5:\n\n", buf.String())
}

func TestWriteCriticalPoints(t *testing.T) {
	tests := []struct {
		name string
		kind critical.Kind
		want string
	}{
		{
			name: "minima",
			kind: critical.LocalMinimum,
			want: "Local Minima Found:\n\nPoint: (2.000000, 3.000000) | Value: 0.250000\n",
		},
		{
			name: "maxima",
			kind: critical.LocalMaximum,
			want: "Local Maxima Found:\n\nPoint: (1.000000, 2.000000) | Value: 9.000000\n",
		},
		{
			name: "saddles",
			kind: critical.Saddle,
			want: "Saddle Points Found:\n\nPoint: (2.000000, 2.000000) | Value: 5.000000\n",
		},
		{
			name: "all",
			kind: 0,
			want: "Local Minima Found:\n\nPoint: (2.000000, 3.000000) | Value: 0.250000\n" +
				"\nLocal Maxima Found:\n\nPoint: (1.000000, 2.000000) | Value: 9.000000\n" +
				"\nSaddle Points Found:\n\nPoint: (2.000000, 2.000000) | Value: 5.000000\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteCriticalPoints(&buf, tt.kind, testPoints))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestContourFeatures(t *testing.T) {
	data, err := ContourFeatures(5, testSegments).MarshalJSON()
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	f := fc.Features[1]
	require.True(t, f.Geometry.IsLineString())
	assert.Equal(t, [][]float64{{1, 1.5}, {1.5, 1}}, f.Geometry.LineString)
	assert.EqualValues(t, 1, f.Properties["index"])
	assert.EqualValues(t, 5, f.Properties["threshold"])
}

func TestCriticalFeatures(t *testing.T) {
	data, err := CriticalFeatures(testPoints).MarshalJSON()
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)

	f := fc.Features[1]
	require.True(t, f.Geometry.IsPoint())
	assert.Equal(t, []float64{2, 2}, f.Geometry.Point)
	assert.Equal(t, "saddle_point", f.Properties["kind"])
	assert.EqualValues(t, 5, f.Properties["value"])
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"":         FormatJSON,
		"json":     FormatJSON,
		"TEXT":     FormatText,
		" geojson": FormatGeoJSON,
	} {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormat("xml")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestContours_Formats(t *testing.T) {
	res := &contour.Result{Threshold: 5, Segments: testSegments, Count: 2}

	text, err := Contours(FormatText, res)
	require.NoError(t, err)
	assert.Contains(t, string(text), "Iso-contour segments for isovalue 5:")

	raw, err := Contours(FormatJSON, res)
	require.NoError(t, err)
	var decoded contour.Result
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, 2, decoded.Count)
	assert.Equal(t, testSegments, decoded.Segments)

	gj, err := Contours(FormatGeoJSON, res)
	require.NoError(t, err)
	assert.Contains(t, string(gj), `"FeatureCollection"`)

	_, err = Contours("csv", res)
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestCriticalPoints_Formats(t *testing.T) {
	res := &critical.Result{Points: testPoints, Count: 3}

	text, err := CriticalPoints(FormatText, critical.Saddle, res)
	require.NoError(t, err)
	assert.Equal(t, "Saddle Points Found:\n\nPoint: (2.000000, 2.000000) | Value: 5.000000\n", string(text))

	raw, err := CriticalPoints(FormatJSON, 0, res)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"kind": "local_maximum"`)

	_, err = CriticalPoints("svg", 0, res)
	require.ErrorIs(t, err, ErrUnknownFormat)
}
