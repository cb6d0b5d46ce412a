// SPDX-License-Identifier: MIT

package qp

import "errors"

var (
	// ErrBadShape indicates a program with no variables.
	ErrBadShape = errors.New("qp: program must have at least one variable")

	// ErrOutOfRange indicates a variable index outside [0, n).
	ErrOutOfRange = errors.New("qp: variable index out of range")

	// ErrNaN indicates a NaN coefficient or bound.
	ErrNaN = errors.New("qp: NaN encountered")

	// ErrInfeasibleBounds indicates a lower bound strictly above its upper bound.
	ErrInfeasibleBounds = errors.New("qp: lower bound exceeds upper bound")

	// ErrNonConvex indicates a negative diagonal entry in P.
	ErrNonConvex = errors.New("qp: objective is not convex")

	// ErrFactorization indicates the KKT matrix is not positive definite.
	ErrFactorization = errors.New("qp: KKT factorization failed")

	// ErrMaxIterations indicates the solver stopped before meeting its tolerance.
	ErrMaxIterations = errors.New("qp: maximum iterations reached")
)
