// SPDX-License-Identifier: MIT

// Package neighbor supplies the neighbor model consumed by the QP
// regularization driver: for a query item index it returns the indices of
// the items that must be regularized jointly with it.
//
// The package ships three providers:
//   - Graph: an explicit, thread-safe, undirected integer-vertex graph.
//   - Complete(indices): a clique over a caller-defined group.
//   - Proximity(points, k): the symmetric k-nearest graph over barycenters.
//
// Components(g) splits a Graph into its connected components by BFS.
// Restrict(q, groups) narrows any Query to pairs that share a group.
//
// Determinism:
//   - Neighbors() and Edges() always return ascending, duplicate-free results.
//
// Errors:
//
//	ErrNegativeVertex - vertex id below zero.
//	ErrLoopNotAllowed - edge from a vertex to itself.
//	ErrTooFewPoints   - proximity graph over fewer than two points.
//	ErrBadK           - proximity graph with k < 1.
package neighbor

import "errors"

// Sentinel errors for neighbor graph operations.
var (
	// ErrNegativeVertex indicates a vertex id below zero.
	ErrNegativeVertex = errors.New("neighbor: negative vertex id")

	// ErrLoopNotAllowed indicates an attempt to link a vertex with itself.
	ErrLoopNotAllowed = errors.New("neighbor: self-loop not allowed")

	// ErrTooFewPoints indicates a proximity graph over fewer than two points.
	ErrTooFewPoints = errors.New("neighbor: at least two points required")

	// ErrBadK indicates a non-positive neighbor count.
	ErrBadK = errors.New("neighbor: k must be >= 1")
)

// Query returns, for a query index, the indices regularized jointly with it.
// Implementations must return ascending indices without the query itself.
type Query interface {
	Neighbors(i int) []int
}

// Edge is an undirected link between two vertices, stored with From < To.
type Edge struct {
	From int
	To   int
}
