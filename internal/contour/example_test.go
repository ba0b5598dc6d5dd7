package contour_test

import (
	"fmt"

	"github.com/ironsheep/field-tools-mcp/internal/contour"
	"github.com/ironsheep/field-tools-mcp/internal/field"
)

// ExampleExtract traces the 5.0 iso-line around a single peak.
func ExampleExtract() {
	g, _ := field.NewGrid(
		[]float64{0, 1, 2},
		[]float64{0, 1, 2},
		[][]float64{
			{0, 0, 0},
			{0, 10, 0},
			{0, 0, 0},
		},
	)

	for _, s := range contour.Extract(g, 5) {
		fmt.Printf("(%g, %g) -> (%g, %g)\n", s.P1.X, s.P1.Y, s.P2.X, s.P2.Y)
	}

	// Output:
	// (0.5, 1) -> (1, 0.5)
	// (1, 0.5) -> (1.5, 1)
	// (1, 1.5) -> (0.5, 1)
	// (1, 1.5) -> (1.5, 1)
}
