// SPDX-License-Identifier: MIT

// Package geom provides the 2D value types consumed and produced by the
// regularization packages: Point, Vector and Segment, together with the
// derived quantities the solvers need (direction, orientation in degrees,
// length, barycenter).
//
// All types are plain values. Nothing in this package allocates on the heap
// or holds state, so every function is safe for concurrent use.
//
// Orientation convention:
//   - The direction of a segment is Target − Source.
//   - Canonical returns the direction flipped into the upper half plane
//     (y > 0, or y == 0 with x > 0), which makes opposite segments equal.
//   - Orientation is atan2 of the canonical direction in degrees, so it
//     always lies in [0, 180).
package geom
