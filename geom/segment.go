// SPDX-License-Identifier: MIT

package geom

import "math"

// Orthogonal angle constants in degrees.
const (
	RightAngle    = 90.0
	StraightAngle = 180.0
)

// Direction returns Target − Source.
func (s Segment) Direction() Vector { return s.Target.Sub(s.Source) }

// Length returns the Euclidean length of s.
func (s Segment) Length() float64 { return s.Direction().Length() }

// Barycenter returns the midpoint of s.
func (s Segment) Barycenter() Point { return Midpoint(s.Source, s.Target) }

// IsDegenerate reports whether both endpoints coincide.
func (s Segment) IsDegenerate() bool { return s.Direction().IsZero() }

// Orientation returns the angle of the canonical direction of s in degrees,
// in [0, 180). A degenerate segment reports 0.
func (s Segment) Orientation() float64 { return Orientation(s.Direction()) }

// Orientation returns the angle of the canonical form of v in degrees,
// in [0, 180).
func Orientation(v Vector) float64 {
	c := v.Canonical()
	deg := RadToDeg(math.Atan2(c.Y, c.X))
	if deg >= StraightAngle {
		deg -= StraightAngle
	}
	return deg
}

// UnitFromDegrees returns (cos θ, sin θ) for θ given in degrees.
func UnitFromDegrees(theta float64) Vector {
	rad := DegToRad(theta)
	return Vector{X: math.Cos(rad), Y: math.Sin(rad)}
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return deg * math.Pi / StraightAngle }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return rad * StraightAngle / math.Pi }

// NormalizeAngle folds any angle in degrees into [0, 180).
func NormalizeAngle(deg float64) float64 {
	r := math.Mod(deg, StraightAngle)
	if r < 0 {
		r += StraightAngle
	}
	// math.Mod of a tiny negative number can round up to exactly 180.
	if r >= StraightAngle {
		r = 0
	}
	return r
}

// AngleDistance returns the smallest difference between two undirected
// orientations, in [0, 90].
func AngleDistance(a, b float64) float64 {
	d := NormalizeAngle(a - b)
	if d > RightAngle {
		d = StraightAngle - d
	}
	return d
}
