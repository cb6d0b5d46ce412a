// SPDX-License-Identifier: MIT
// Package: shapereg/synth
//
// api.go: the Build orchestrator and the Constructor type.
//
// Contract:
//   • Build resolves options once and runs constructors in call order.
//   • Noise is applied per constructor batch, angle first, then offset.
//   • Any constructor error aborts the build; nothing partial is returned.

package synth

import (
	"fmt"

	"github.com/katalvlaran/shapereg/geom"
)

// Constructor emits clean segments for the resolved config. It must validate
// its parameters early and return sentinel errors instead of panicking.
type Constructor func(cfg config) ([]geom.Segment, error)

// Build resolves opts, runs constructors in order and returns the
// concatenated, perturbed segments.
//
// Errors:
//   - ErrConstructFailed for a nil constructor.
//   - ErrNeedRandSource when noise is configured without an RNG.
//   - Constructor sentinels, wrapped with "Build: %w".
func Build(opts []Option, cons ...Constructor) ([]geom.Segment, error) {
	cfg := newConfig(opts...)
	if cfg.noisy() && cfg.rng == nil {
		return nil, fmt.Errorf("%s: noise without rng: %w", methodBuild, ErrNeedRandSource)
	}

	var out []geom.Segment
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("%s: nil constructor at index %d: %w", methodBuild, i, ErrConstructFailed)
		}
		batch, err := fn(cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", methodBuild, err)
		}
		// Perturb in emission order so the RNG stream is stable.
		for k := range batch {
			batch[k] = cfg.perturb(batch[k])
		}
		out = append(out, batch...)
	}

	return out, nil
}
