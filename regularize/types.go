// SPDX-License-Identifier: MIT

package regularize

import (
	"errors"

	"github.com/charmbracelet/log"
)

// Sentinel errors.
var (
	// ErrNoItems indicates a regularizer over fewer than two items.
	ErrNoItems = errors.New("regularize: at least two items required")

	// ErrNilCollaborator indicates a nil neighbor query, type or solver.
	ErrNilCollaborator = errors.New("regularize: nil collaborator")

	// ErrInvalidNeighbor indicates a neighbor index out of range or equal to the query.
	ErrInvalidNeighbor = errors.New("regularize: invalid neighbor index")

	// ErrTarget indicates the regularization type rejected a target query.
	ErrTarget = errors.New("regularize: target query failed")

	// ErrSolverFailed indicates the QP solver failed or returned no solution.
	ErrSolverFailed = errors.New("regularize: solver failed")

	// ErrUpdate indicates the regularization type rejected the solution.
	ErrUpdate = errors.New("regularize: update failed")
)

// Type is a regularization model: bounds per item, targets per neighbor
// pair, and the commit of a solved correction vector.
type Type interface {
	// Bound returns the maximum correction allowed for item i.
	Bound(i int) float64

	// Target returns the correction x_i − x_j that would make i and j
	// regular. Implementations may record the pair as a side effect.
	Target(i, j int) (float64, error)

	// Update commits a solution laid out as documented at package level.
	Update(solution []float64) error
}

// Defaults for the objective.
const (
	DefaultWeight = 100000.0
	DefaultLambda = 0.8
)

const (
	panicWeight = "regularize: WithWeight: weight must be finite and > 0"
	panicLambda = "regularize: WithLambda: lambda must be in (0, 1)"
	panicLogger = "regularize: WithLogger(nil)"
)

// Options configures the objective.
type Options struct {
	// Weight scales the whole objective.
	Weight float64

	// Lambda trades item deviation (1−λ) against edge residuals (λ).
	Lambda float64

	Logger *log.Logger
}

// Option mutates Options. Constructors panic on nonsensical values.
type Option func(*Options)

// DefaultOptions returns Weight=1e5, Lambda=0.8 and log.Default().
func DefaultOptions() Options {
	return Options{Weight: DefaultWeight, Lambda: DefaultLambda, Logger: log.Default()}
}

// WithWeight sets the objective scale.
func WithWeight(w float64) Option {
	if !(w > 0) || w > 1e300 {
		panic(panicWeight)
	}
	return func(o *Options) { o.Weight = w }
}

// WithLambda sets the deviation/residual trade-off.
func WithLambda(l float64) Option {
	if !(l > 0 && l < 1) {
		panic(panicLambda)
	}
	return func(o *Options) { o.Lambda = l }
}

// WithLogger routes diagnostics to l.
func WithLogger(l *log.Logger) Option {
	if l == nil {
		panic(panicLogger)
	}
	return func(o *Options) { o.Logger = l }
}
