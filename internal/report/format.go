package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/field-tools-mcp/internal/contour"
	"github.com/ironsheep/field-tools-mcp/internal/critical"
)

// ErrUnknownFormat is returned for output formats other than text, json and geojson.
var ErrUnknownFormat = errors.New("report: unknown output format")

// Format selects an output rendering.
type Format string

const (
	FormatJSON    Format = "json"
	FormatText    Format = "text"
	FormatGeoJSON Format = "geojson"
)

// ParseFormat maps a case-insensitive name to a Format. The empty string is JSON.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatText, FormatGeoJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Contours renders a contour result.
func Contours(format Format, res *contour.Result) ([]byte, error) {
	switch format {
	case FormatText:
		var buf bytes.Buffer
		if err := WriteContours(&buf, res.Threshold, res.Segments); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatGeoJSON:
		return ContourFeatures(res.Threshold, res.Segments).MarshalJSON()
	case FormatJSON, "":
		return json.MarshalIndent(res, "", "  ")
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

// CriticalPoints renders a classification result. kind picks the text block;
// zero writes every block.
func CriticalPoints(format Format, kind critical.Kind, res *critical.Result) ([]byte, error) {
	switch format {
	case FormatText:
		var buf bytes.Buffer
		if err := WriteCriticalPoints(&buf, kind, res.Points); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatGeoJSON:
		return CriticalFeatures(res.Points).MarshalJSON()
	case FormatJSON, "":
		return json.MarshalIndent(res, "", "  ")
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}
