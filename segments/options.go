// SPDX-License-Identifier: MIT

package segments

import (
	"github.com/charmbracelet/log"

	"github.com/katalvlaran/shapereg/regularize"
)

// Defaults.
const (
	// DefaultMaxAngle is the angle bound in degrees used when none, or an
	// invalid one, is configured.
	DefaultMaxAngle = 25.0

	// DefaultMaxOffset is the offset bound used when none, or an invalid
	// one, is configured.
	DefaultMaxOffset = 0.1

	// marginDivisor turns a bound into the grouping margin of error.
	marginDivisor = 100.0
)

const panicLogger = "segments: WithLogger(nil)"

// Options configures angle and offset regularization.
//
// Out-of-range bounds are not a programmer error here: constructors replace
// them with the default and emit a warning on Logger.
type Options struct {
	// MaxAngle bounds each angular correction, degrees in [0, 90).
	MaxAngle float64

	// MaxOffset bounds each offset correction, > 0.
	MaxOffset float64

	Logger *log.Logger

	// Driver is forwarded to regularize.New by the convenience functions.
	Driver []regularize.Option
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns MaxAngle=25, MaxOffset=0.1 and log.Default().
func DefaultOptions() Options {
	return Options{MaxAngle: DefaultMaxAngle, MaxOffset: DefaultMaxOffset, Logger: log.Default()}
}

// WithMaxAngle sets the angle bound in degrees.
func WithMaxAngle(deg float64) Option {
	return func(o *Options) { o.MaxAngle = deg }
}

// WithMaxOffset sets the offset bound.
func WithMaxOffset(v float64) Option {
	return func(o *Options) { o.MaxOffset = v }
}

// WithLogger routes diagnostics to l.
func WithLogger(l *log.Logger) Option {
	if l == nil {
		panic(panicLogger)
	}
	return func(o *Options) { o.Logger = l }
}

// WithDriverOptions forwards objective options to the QP driver.
func WithDriverOptions(opts ...regularize.Option) Option {
	return func(o *Options) { o.Driver = append(o.Driver, opts...) }
}

func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}
