// SPDX-License-Identifier: MIT

package qp

import (
	"context"
	"math"

	"github.com/charmbracelet/log"
)

// Defaults for the ADMM solver.
const (
	DefaultMaxIterations = 10000
	DefaultEpsAbs        = 1e-6
	DefaultEpsRel        = 1e-6
	DefaultRho           = 0.1
	DefaultSigma         = 1e-6
	DefaultAlpha         = 1.6
	DefaultAdaptiveRho   = true

	// equalityRhoScale multiplies ρ on rows with Lower == Upper.
	equalityRhoScale = 1e3
	// adaptInterval is the number of iterations between ρ updates.
	adaptInterval = 25
	// adaptTolerance triggers refactoring when ρ changes by more than this factor.
	adaptTolerance = 5.0
	rhoMin         = 1e-6
	rhoMax         = 1e6
)

const (
	panicMaxIterations = "qp: WithMaxIterations: n must be > 0"
	panicTolerance     = "qp: WithTolerance: tolerances must be finite and >= 0, not both 0"
	panicRho           = "qp: WithRho: rho must be finite and > 0"
	panicSigma         = "qp: WithSigma: sigma must be finite and > 0"
	panicAlpha         = "qp: WithAlpha: alpha must be in (0, 2)"
	panicLogger        = "qp: WithLogger(nil)"
)

// Options configures the ADMM solver.
type Options struct {
	MaxIterations int
	EpsAbs        float64
	EpsRel        float64
	Rho           float64
	Sigma         float64
	Alpha         float64
	AdaptiveRho   bool
	Logger        *log.Logger
}

// Option mutates Options. Constructors panic on nonsensical values.
type Option func(*Options)

// DefaultOptions returns the documented defaults with log.Default().
func DefaultOptions() Options {
	return Options{
		MaxIterations: DefaultMaxIterations,
		EpsAbs:        DefaultEpsAbs,
		EpsRel:        DefaultEpsRel,
		Rho:           DefaultRho,
		Sigma:         DefaultSigma,
		Alpha:         DefaultAlpha,
		AdaptiveRho:   DefaultAdaptiveRho,
		Logger:        log.Default(),
	}
}

// WithMaxIterations caps the number of ADMM iterations.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicMaxIterations)
	}
	return func(o *Options) { o.MaxIterations = n }
}

// WithTolerance sets the absolute and relative residual tolerances.
func WithTolerance(abs, rel float64) Option {
	if !finiteNonNeg(abs) || !finiteNonNeg(rel) || (abs == 0 && rel == 0) {
		panic(panicTolerance)
	}
	return func(o *Options) { o.EpsAbs, o.EpsRel = abs, rel }
}

// WithRho sets the initial ADMM step size.
func WithRho(rho float64) Option {
	if !finitePos(rho) {
		panic(panicRho)
	}
	return func(o *Options) { o.Rho = rho }
}

// WithSigma sets the primal regularization added to the KKT diagonal.
func WithSigma(sigma float64) Option {
	if !finitePos(sigma) {
		panic(panicSigma)
	}
	return func(o *Options) { o.Sigma = sigma }
}

// WithAlpha sets the over-relaxation parameter.
func WithAlpha(alpha float64) Option {
	if !(alpha > 0 && alpha < 2) {
		panic(panicAlpha)
	}
	return func(o *Options) { o.Alpha = alpha }
}

// WithAdaptiveRho toggles residual-balancing ρ updates.
func WithAdaptiveRho(on bool) Option {
	return func(o *Options) { o.AdaptiveRho = on }
}

// WithLogger routes solver diagnostics to l.
func WithLogger(l *log.Logger) Option {
	if l == nil {
		panic(panicLogger)
	}
	return func(o *Options) { o.Logger = l }
}

func finiteNonNeg(v float64) bool { return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v) }
func finitePos(v float64) bool    { return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) }

// done reports a cancelled context without blocking.
func done(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
