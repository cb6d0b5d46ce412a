// SPDX-License-Identifier: MIT

// Package qp models and solves sparse convex quadratic programs of the form
//
//	minimize    ½·xᵀPx + qᵀx
//	subject to  l ≤ Ax ≤ u
//	            lo ≤ x ≤ hi
//
// where P is symmetric positive semidefinite. Infinite bounds are allowed on
// either side of every row and every variable box.
//
// Program is the solver-independent description; Solver is the pluggable
// capability that turns a Program into a Solution. The package ships ADMM,
// an operator-splitting solver in the spirit of OSQP:
//
//   - The reduced KKT matrix P + σI + AᵀRA is factored once with a gonum
//     Cholesky decomposition and refactored only when ρ adapts.
//   - Equality rows (l == u) get a ρ scaled by 1e3.
//   - Over-relaxation α ∈ (0, 2).
//   - Termination on primal and dual infinity-norm residuals.
//   - Cancellation through context.Context between iterations.
//
// Errors:
//
//	ErrBadShape          - program with no variables.
//	ErrOutOfRange        - variable index outside [0, n).
//	ErrNaN               - NaN coefficient or bound.
//	ErrInfeasibleBounds  - lower bound above upper bound.
//	ErrNonConvex         - negative diagonal entry in P.
//	ErrFactorization     - KKT matrix could not be factored.
//	ErrMaxIterations     - iteration budget exhausted before convergence.
package qp
