// Package contour extracts iso-contour line segments from a scalar field grid
// using Marching Squares.
//
// # Algorithm
//
// Every cell of the grid is visited in row-major order. For the cell whose
// lower-left vertex is (row j, col i) the corners are:
//
//	p4 ---- b ---- p3      p1 = (x[i],   y[j])
//	|              |       p2 = (x[i+1], y[j])
//	a              c       p3 = (x[i+1], y[j+1])
//	|              |       p4 = (x[i],   y[j+1])
//	p1 ---- d ---- p2
//
// A 4-bit case index sets bit k when corner p(k+1) is strictly above the
// threshold. The index selects 0, 1 or 2 segments between the edge crossings
// a (left), b (top), c (right) and d (bottom), each found by Interpolate.
//
// # Ambiguous Cells
//
// Cases 5 and 10 (diagonally opposite corners above the threshold) are
// always split into two fixed segments: (a,d)+(b,c) for 5 and (a,b)+(c,d)
// for 10. The cell centre is not sampled, so in saddle-straddling cells the
// contour topology may differ from a centre-resolved variant. Output is
// deterministic for a given grid and threshold.
//
// # Output
//
// Segments are not merged or chained into polylines; a crossing shared by two
// neighbouring cells appears once in each cell's segments.
package contour
