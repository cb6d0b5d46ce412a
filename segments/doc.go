// SPDX-License-Identifier: MIT

// Package segments regularizes 2D line segments in place.
//
// AngleRegularization snaps orientations: within every group, pairs whose
// orientations are within 2·MaxAngle of a multiple of 90 degrees become
// exactly parallel or exactly orthogonal, and each segment is rotated about
// its barycenter by at most MaxAngle. OffsetRegularization snaps parallel
// segments onto shared carrier lines by translating them along the group
// normal by at most MaxOffset.
//
// Both types implement regularize.Type. A typical pass is:
//
//	ar, _ := segments.NewAngleRegularization(segments.Slice(segs))
//	_ = ar.CreateUniqueGroup()
//	g, _ := neighbor.Complete(indices)
//	reg, _ := regularize.New(len(segs), g, ar, qp.NewADMM())
//	_, err := reg.Regularize(ctx)
//
// or simply RegularizeAngles / RegularizeOffsets.
//
// Determinism:
//   - Recorded pairs are ordered by (i, j); that order is the slack layout
//     of the solution vector.
//   - Orientation classes are built from the smallest member up, so equal
//     inputs give identical outputs.
//
// Errors are sentinel values wrapped with the failing method name; test them
// with errors.Is. Neither type is safe for concurrent use.
package segments
