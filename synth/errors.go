// SPDX-License-Identifier: MIT
// Package: shapereg/synth
//
// errors.go: sentinel errors for the synth package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Constructors attach context with %w, never by formatting sentinels.
//   • Runtime code never panics; option constructors (WithX) may.

package synth

import (
	"errors"
	"fmt"
)

// ErrTooFewSegments indicates a count parameter (n, rows, cols, points)
// below the minimum of the constructor.
var ErrTooFewSegments = errors.New("synth: parameter too small")

// ErrBadSize indicates a non-positive or non-finite length parameter, or a
// chain with two coincident consecutive points.
var ErrBadSize = errors.New("synth: invalid size")

// ErrNeedRandSource indicates noise was requested without WithSeed/WithRand.
var ErrNeedRandSource = errors.New("synth: rng is required")

// ErrConstructFailed indicates a nil constructor was passed to Build.
var ErrConstructFailed = errors.New("synth: construction failed")

// Method names used in wrapped errors.
const (
	methodBuild    = "Build"
	methodSquare   = "Square"
	methodGrid     = "Grid"
	methodStar     = "Star"
	methodPolyline = "Polyline"
)

// wrapf attaches method context to a sentinel.
func wrapf(method, format string, err error, args ...any) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), err)
}
