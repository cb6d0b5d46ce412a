// SPDX-License-Identifier: MIT

package geom

import "math"

// Point is a location in the plane.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Vector is a displacement in the plane.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Vec is shorthand for Vector{X: x, Y: y}.
func Vec(x, y float64) Vector { return Vector{X: x, Y: y} }

// Sub returns the vector p − q.
func (p Point) Sub(q Point) Vector { return Vector{X: p.X - q.X, Y: p.Y - q.Y} }

// Add translates p by v.
func (p Point) Add(v Vector) Point { return Point{X: p.X + v.X, Y: p.Y + v.Y} }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 { return p.Sub(q).Length() }

// Midpoint returns the point halfway between p and q.
func Midpoint(p, q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Add returns v + w.
func (v Vector) Add(w Vector) Vector { return Vector{X: v.X + w.X, Y: v.Y + w.Y} }

// Scale returns s·v.
func (v Vector) Scale(s float64) Vector { return Vector{X: v.X * s, Y: v.Y * s} }

// Neg returns −v.
func (v Vector) Neg() Vector { return Vector{X: -v.X, Y: -v.Y} }

// Dot returns the scalar product v·w.
func (v Vector) Dot(w Vector) float64 { return v.X*w.X + v.Y*w.Y }

// Length returns |v|.
func (v Vector) Length() float64 { return math.Hypot(v.X, v.Y) }

// Perp returns v rotated by +90°: (−y, x).
func (v Vector) Perp() Vector { return Vector{X: -v.Y, Y: v.X} }

// IsZero reports whether both components are exactly zero.
func (v Vector) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Normalize returns v / |v|. The zero vector is returned unchanged.
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vector{X: v.X / l, Y: v.Y / l}
}

// Canonical flips v into the upper half plane: when y < 0, or y == 0 and
// x < 0, the negated vector is returned.
func (v Vector) Canonical() Vector {
	if v.Y < 0 || (v.Y == 0 && v.X < 0) {
		return v.Neg()
	}
	return v
}

// Segment is a straight line segment between two endpoints.
type Segment struct {
	Source Point `json:"source" toml:"source"`
	Target Point `json:"target" toml:"target"`
}

// Seg builds a segment from raw coordinates.
func Seg(x1, y1, x2, y2 float64) Segment {
	return Segment{Source: Point{X: x1, Y: y1}, Target: Point{X: x2, Y: y2}}
}
