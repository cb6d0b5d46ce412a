// SPDX-License-Identifier: MIT

package segments

import "github.com/katalvlaran/shapereg/geom"

// descriptor caches the geometry of one input segment as it was when the
// segment was first grouped. Rotation and translation always start from
// this snapshot, never from what the range currently holds.
type descriptor struct {
	index       int
	used        bool
	source      geom.Point
	target      geom.Point
	barycenter  geom.Point
	direction   geom.Vector // canonical unit direction
	orientation float64     // degrees in [0, 180)
	length      float64
}

func newDescriptor(i int, s geom.Segment) (descriptor, bool) {
	if s.IsDegenerate() {
		return descriptor{}, false
	}
	d := s.Direction()

	return descriptor{
		index:       i,
		used:        true,
		source:      s.Source,
		target:      s.Target,
		barycenter:  s.Barycenter(),
		direction:   d.Normalize().Canonical(),
		orientation: geom.Orientation(d),
		length:      d.Length(),
	}, true
}

// dedupe returns indices with later duplicates removed, order preserved.
func dedupe(indices []int) []int {
	seen := make(map[int]struct{}, len(indices))
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}

	return out
}
