// SPDX-License-Identifier: MIT
// Package: shapereg/synth
//
// config.go: resolved configuration and deterministic defaults.
//
// Defaults:
//   • rng         = nil    (no randomness unless seeded)
//   • angleNoise  = 0
//   • offsetNoise = 0
//   • origin      = (0, 0)

package synth

import (
	"math/rand"

	"github.com/katalvlaran/shapereg/geom"
)

// config aggregates every knob; constructors receive it by value.
type config struct {
	rng         *rand.Rand
	angleNoise  float64
	offsetNoise float64
	origin      geom.Point
}

// newConfig applies options in order; later options override earlier ones.
func newConfig(opts ...Option) config {
	var cfg config
	for _, fn := range opts {
		if fn != nil {
			fn(&cfg)
		}
	}

	return cfg
}

// noisy reports whether any perturbation is configured.
func (c config) noisy() bool { return c.angleNoise > 0 || c.offsetNoise > 0 }
