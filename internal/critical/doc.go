// Package critical classifies the interior vertices of a scalar field grid as
// local minima, local maxima or saddle points.
//
// # Neighbourhood
//
// Each interior vertex (1 <= row <= H-2, 1 <= col <= W-2) is compared with its
// eight neighbours. Border vertices lack a full ring and are never reported.
//
// # Tests
//
// The tests run in a fixed priority and stop at the first match:
//
//  1. Maximum: the centre is strictly greater than all eight neighbours.
//  2. Minimum: the centre is strictly less than all eight neighbours.
//  3. Saddle: walking the ring N, NE, E, SE, S, SW, W, NW (N is row-1), each
//     neighbour gets +1 when greater than the centre and -1 otherwise, so a
//     neighbour equal to the centre counts as -1. Four or more sign changes
//     around the closed ring make a saddle.
//
// Vertices that pass none of the tests produce no output.
package critical
