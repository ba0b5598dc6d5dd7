package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/ironsheep/field-tools-mcp/internal/contour"
	"github.com/ironsheep/field-tools-mcp/internal/critical"
)

// Heading returns the block title for a critical point kind.
func Heading(kind critical.Kind) string {
	switch kind {
	case critical.LocalMinimum:
		return "Local Minima Found:"
	case critical.LocalMaximum:
		return "Local Maxima Found:"
	case critical.Saddle:
		return "Saddle Points Found:"
	}
	return "Critical Points Found:"
}

// WriteContours writes the segment listing for one threshold.
func WriteContours(w io.Writer, threshold float64, segs []contour.Segment) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Iso-contour segments for isovalue %s:\n\n", strconv.FormatFloat(threshold, 'g', -1, 64))
	for _, s := range segs {
		fmt.Fprintf(bw, "Segment: (%.6f, %.6f) -> (%.6f, %.6f)\n", s.P1.X, s.P1.Y, s.P2.X, s.P2.Y)
	}
	return bw.Flush()
}

// WriteCriticalPoints writes one block for kind listing the points of that
// kind. A zero kind writes a block per kind, in critical.Kinds order, each
// followed by a blank line.
func WriteCriticalPoints(w io.Writer, kind critical.Kind, points []critical.Point) error {
	if kind != 0 {
		return writeBlock(w, kind, critical.Filter(points, kind))
	}
	for i, k := range critical.Kinds {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := writeBlock(w, k, critical.Filter(points, k)); err != nil {
			return err
		}
	}
	return nil
}

func writeBlock(w io.Writer, kind critical.Kind, points []critical.Point) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n\n", Heading(kind))
	for _, p := range points {
		fmt.Fprintf(bw, "Point: (%.6f, %.6f) | Value: %.6f\n", p.X, p.Y, p.Value)
	}
	return bw.Flush()
}
