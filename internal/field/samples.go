package field

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Sample is one (x, y, value) observation of the field.
type Sample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	S float64 `json:"s"`
}

// FromSamples buckets samples into a rectangular grid.
//
// The distinct x and y values, sorted ascending, become the axes. Each sample
// is stored at the first axis position not below its coordinates; a sample
// with no such position is dropped. When two samples land on the same
// position the later one wins. Positions no sample reaches hold zero.
//
// Samples with a NaN or infinite coordinate or value are ignored. Returns ErrNoSamples
// when nothing usable remains.
func FromSamples(samples []Sample) (*Grid, error) {
	xset := make(map[float64]struct{})
	yset := make(map[float64]struct{})
	usable := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if !finite(s.X) || !finite(s.Y) || !finite(s.S) {
			continue
		}
		xset[s.X] = struct{}{}
		yset[s.Y] = struct{}{}
		usable = append(usable, s)
	}
	if len(usable) == 0 {
		return nil, ErrNoSamples
	}

	xs := sortedKeys(xset)
	ys := sortedKeys(yset)
	values := mat.NewDense(len(ys), len(xs), nil)

	for _, s := range usable {
		col := sort.SearchFloat64s(xs, s.X)
		row := sort.SearchFloat64s(ys, s.Y)
		if col == len(xs) || row == len(ys) {
			continue
		}
		values.Set(row, col, s.S)
	}

	return newGrid(xs, ys, values), nil
}

func sortedKeys(set map[float64]struct{}) []float64 {
	keys := make([]float64, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	return keys
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
