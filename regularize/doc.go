// SPDX-License-Identifier: MIT

// Package regularize drives shape regularization as a quadratic program.
//
// A Regularizer composes three collaborators chosen by the caller:
//
//   - neighbor.Query: which items are regularized jointly.
//   - Type: per-item bounds, per-pair targets, and the final update.
//   - qp.Solver: any conforming QP solver (qp.ADMM by default in callers).
//
// Regularize builds one undirected edge per neighbor pair (i < j), keeps the
// edges whose target lies within the combined bounds, and solves
//
//	minimize    Σ_i w(1−λ)/(b_i²·n)·x_i²  +  Σ_k λw/(4·b_max·e)·y_k
//	subject to  y_k ≥ |x_i − x_j − t_k|          for every kept edge k
//	            −b_i ≤ x_i ≤ b_i,  y_k ≥ 0
//
// over n item corrections x followed by e edge slacks y. The solution vector
// handed to Type.Update has exactly that layout: x_0..x_{n−1}, y_0..y_{e−1},
// where k is the position of the edge in ascending (i, j) order.
package regularize
