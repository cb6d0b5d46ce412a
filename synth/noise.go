// SPDX-License-Identifier: MIT
// Package: shapereg/synth
//
// noise.go: per-segment perturbation.

package synth

import (
	"math"

	"github.com/katalvlaran/shapereg/geom"
)

// perturb rotates s about its barycenter by U(−angleNoise, angleNoise)
// degrees, then shifts it along its unit normal by U(−offsetNoise,
// offsetNoise). Each active knob draws exactly one number.
func (c config) perturb(s geom.Segment) geom.Segment {
	if c.angleNoise > 0 {
		s = rotateAbout(s, c.uniform(c.angleNoise))
	}
	if c.offsetNoise > 0 {
		n := s.Direction().Normalize().Perp()
		d := n.Scale(c.uniform(c.offsetNoise))
		s = geom.Segment{Source: s.Source.Add(d), Target: s.Target.Add(d)}
	}

	return s
}

// uniform draws from [−a, a).
func (c config) uniform(a float64) float64 {
	return (2*c.rng.Float64() - 1) * a
}

// rotateAbout turns s by deg degrees counterclockwise about its barycenter.
func rotateAbout(s geom.Segment, deg float64) geom.Segment {
	b := s.Barycenter()
	sin, cos := math.Sincos(geom.DegToRad(deg))
	turn := func(p geom.Point) geom.Point {
		v := p.Sub(b)
		return b.Add(geom.Vec(v.X*cos-v.Y*sin, v.X*sin+v.Y*cos))
	}

	return geom.Segment{Source: turn(s.Source), Target: turn(s.Target)}
}
