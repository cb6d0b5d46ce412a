// SPDX-License-Identifier: MIT

package segments

import "github.com/katalvlaran/shapereg/geom"

// Range is the caller-owned, indexable and mutable sequence of segments a
// regularization reads from and writes back to. Indices 0..Len()-1 must be
// stable for the lifetime of the regularization, and nobody else may write
// to the range between the first Target and the last Update.
type Range interface {
	Len() int
	Segment(i int) geom.Segment
	SetSegment(i int, s geom.Segment)
}

// Slice adapts a []geom.Segment to Range. Writes go to the caller's backing
// array.
type Slice []geom.Segment

// Len implements Range.
func (s Slice) Len() int { return len(s) }

// Segment implements Range.
func (s Slice) Segment(i int) geom.Segment { return s[i] }

// SetSegment implements Range.
func (s Slice) SetSegment(i int, seg geom.Segment) { s[i] = seg }
