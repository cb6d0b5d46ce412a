// SPDX-License-Identifier: MIT
// Package: shapereg/synth
//
// options.go: functional options for the synth package.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//   • Determinism is explicit: randomness only through WithSeed/WithRand.

package synth

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/shapereg/geom"
)

// Option customizes the resolved config before any constructor runs.
type Option func(*config)

// WithSeed creates a seeded RNG (deterministic).
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand supplies an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("synth: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithAngleNoise rotates every segment about its barycenter by a uniform
// angle in [−deg, deg]. Panics unless 0 ≤ deg < 90.
func WithAngleNoise(deg float64) Option {
	if math.IsNaN(deg) || deg < 0 || deg >= geom.RightAngle {
		panic("synth: WithAngleNoise: degrees must be in [0, 90)")
	}
	return func(c *config) { c.angleNoise = deg }
}

// WithOffsetNoise moves every segment along its normal by a uniform
// distance in [−d, d]. Panics unless d is finite and ≥ 0.
func WithOffsetNoise(d float64) Option {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		panic("synth: WithOffsetNoise: distance must be finite and >= 0")
	}
	return func(c *config) { c.offsetNoise = d }
}

// WithOrigin translates every shape so its reference point sits at p.
func WithOrigin(p geom.Point) Option {
	return func(c *config) { c.origin = p }
}
