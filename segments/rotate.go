// SPDX-License-Identifier: MIT

package segments

import (
	"math"

	"github.com/katalvlaran/shapereg/geom"
)

// rotate returns the segment of d turned to the orientation theta (degrees)
// about its barycenter.
//
// The carrier line through the barycenter is a·x + b·y + c = 0 with (a, b)
// orthogonal to the new direction. The endpoint projection runs along the
// dominant axis of the direction so the solved coordinate stays well
// conditioned. Length and barycenter are preserved. Source is the endpoint
// behind the barycenter along the canonical (upper half plane) direction,
// so a segment pointing downward or left comes back with its endpoints
// swapped even when theta equals its orientation.
func rotate(d descriptor, theta float64) (geom.Segment, bool) {
	if math.IsNaN(theta) || math.IsInf(theta, 0) {
		return geom.Segment{}, false
	}
	dir := geom.UnitFromDegrees(theta)
	if dir.IsZero() {
		return geom.Segment{}, false
	}
	orth := dir.Perp()
	a, b := orth.X, orth.Y
	c := -a*d.barycenter.X - b*d.barycenter.Y
	dir = dir.Canonical()

	half := d.length / 2
	var src, dst geom.Point
	if math.Abs(dir.X) > math.Abs(dir.Y) {
		// Project along x, solve y on the line.
		x1 := d.barycenter.X - half*dir.X
		x2 := d.barycenter.X + half*dir.X
		src = geom.Pt(x1, (-c-a*x1)/b)
		dst = geom.Pt(x2, (-c-a*x2)/b)
	} else {
		y1 := d.barycenter.Y - half*dir.Y
		y2 := d.barycenter.Y + half*dir.Y
		src = geom.Pt((-c-b*y1)/a, y1)
		dst = geom.Pt((-c-b*y2)/a, y2)
	}

	return geom.Segment{Source: src, Target: dst}, true
}
