// SPDX-License-Identifier: MIT

package regularize

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/shapereg/neighbor"
	"github.com/katalvlaran/shapereg/qp"
)

const (
	methodNew        = "New"
	methodEdges      = "Edges"
	methodProgram    = "Program"
	methodRegularize = "Regularize"
	minItems         = 2
)

// Edge is a kept neighbor pair with its target; its position in the slice
// returned by Edges is its discriminator.
type Edge struct {
	I, J   int
	Target float64
}

// Result summarizes one Regularize call.
type Result struct {
	// Edges is the number of kept neighbor pairs (QP slack variables).
	Edges int

	// Variables is n + Edges, or 0 when nothing was solved.
	Variables int

	Iterations int
	Status     qp.Status
	Objective  float64
}

// Regularizer composes a neighbor query, a regularization type and a solver
// over n items. It keeps no state between calls.
type Regularizer struct {
	n      int
	query  neighbor.Query
	rt     Type
	solver qp.Solver
	opts   Options
}

// New validates the collaborators and returns a Regularizer.
//
// Errors:
//   - ErrNoItems if n < 2.
//   - ErrNilCollaborator if q, rt or solver is nil.
func New(n int, q neighbor.Query, rt Type, solver qp.Solver, opts ...Option) (*Regularizer, error) {
	if n < minItems {
		return nil, fmt.Errorf("%s: n=%d: %w", methodNew, n, ErrNoItems)
	}
	if q == nil || rt == nil || solver == nil {
		return nil, fmt.Errorf("%s: %w", methodNew, ErrNilCollaborator)
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Regularizer{n: n, query: q, rt: rt, solver: solver, opts: o}, nil
}

// Edges collects every neighbor pair once as (i < j), queries its target
// and keeps it when |target| < Bound(i) + Bound(j). The result is sorted by
// (I, J).
//
// Errors:
//   - ErrInvalidNeighbor for a neighbor outside [0, n) or equal to the query.
//   - ErrTarget wrapping the type's error.
func (r *Regularizer) Edges() ([]Edge, error) {
	// 1. Undirected pair set.
	pairs := make(map[[2]int]struct{})
	for i := 0; i < r.n; i++ {
		for _, j := range r.query.Neighbors(i) {
			if j < 0 || j >= r.n || j == i {
				return nil, fmt.Errorf("%s: neighbor %d of %d: %w", methodEdges, j, i, ErrInvalidNeighbor)
			}
			a, b := i, j
			if a > b {
				a, b = b, a
			}
			pairs[[2]int{a, b}] = struct{}{}
		}
	}

	// 2. Deterministic order.
	keys := make([][2]int, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a][0] != keys[b][0] {
			return keys[a][0] < keys[b][0]
		}
		return keys[a][1] < keys[b][1]
	})

	// 3. Targets within tolerance.
	edges := make([]Edge, 0, len(keys))
	for _, k := range keys {
		i, j := k[0], k[1]
		t, err := r.rt.Target(i, j)
		if err != nil {
			return nil, fmt.Errorf("%s: (%d,%d): %w: %w", methodEdges, i, j, ErrTarget, err)
		}
		if math.Abs(t) < r.rt.Bound(i)+r.rt.Bound(j) {
			edges = append(edges, Edge{I: i, J: j, Target: t})
		}
	}

	return edges, nil
}

// Program builds the QP documented at package level for the given edges.
func (r *Regularizer) Program(edges []Edge) (*qp.Program, error) {
	n, e := r.n, len(edges)
	prog, err := qp.NewProgram(n + e)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodProgram, err)
	}
	w, lambda := r.opts.Weight, r.opts.Lambda

	// 1. Item deviations: quadratic penalty and box.
	maxBound := 0.0
	for i := 0; i < n; i++ {
		b := math.Abs(r.rt.Bound(i))
		maxBound = math.Max(maxBound, b)
		scale := b * b
		if scale == 0 {
			scale = 1
		}
		if err = prog.SetP(i, i, 2*w*(1-lambda)/(scale*float64(n))); err != nil {
			return nil, fmt.Errorf("%s: %w", methodProgram, err)
		}
		if err = prog.SetBounds(i, -b, b); err != nil {
			return nil, fmt.Errorf("%s: %w", methodProgram, err)
		}
	}
	if e == 0 {
		return prog, nil
	}

	// 2. Edge slacks: linear penalty, y_k ≥ |x_i − x_j − t_k|.
	cost := lambda * w / (4 * maxBound * float64(e))
	for k, edge := range edges {
		y := n + k
		if err = prog.SetQ(y, cost); err != nil {
			return nil, fmt.Errorf("%s: %w", methodProgram, err)
		}
		if err = prog.SetBounds(y, 0, math.Inf(1)); err != nil {
			return nil, fmt.Errorf("%s: %w", methodProgram, err)
		}
		pos := []qp.Term{{Var: edge.I, Coef: 1}, {Var: edge.J, Coef: -1}, {Var: y, Coef: -1}}
		neg := []qp.Term{{Var: edge.I, Coef: -1}, {Var: edge.J, Coef: 1}, {Var: y, Coef: -1}}
		if _, err = prog.AddRow(pos, math.Inf(-1), edge.Target); err != nil {
			return nil, fmt.Errorf("%s: edge %d: %w", methodProgram, k, err)
		}
		if _, err = prog.AddRow(neg, math.Inf(-1), -edge.Target); err != nil {
			return nil, fmt.Errorf("%s: edge %d: %w", methodProgram, k, err)
		}
	}

	return prog, nil
}

// Regularize runs edges → program → solve → Type.Update.
//
// When no edge survives the tolerance test there is nothing to regularize:
// the zero Result is returned and Update is not called.
//
// Errors:
//   - ErrInvalidNeighbor, ErrTarget from Edges.
//   - ErrSolverFailed wrapping the solver error, or on an empty solution.
//   - ErrUpdate wrapping the type's error.
func (r *Regularizer) Regularize(ctx context.Context) (Result, error) {
	logger := r.opts.Logger

	// 1. Edges.
	edges, err := r.Edges()
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", methodRegularize, err)
	}
	if len(edges) == 0 {
		logger.Debug("nothing to regularize", "items", r.n)
		return Result{}, nil
	}

	// 2. Program.
	prog, err := r.Program(edges)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", methodRegularize, err)
	}

	// 3. Solve.
	sol, err := r.solver.Solve(ctx, prog)
	if err != nil {
		return Result{Edges: len(edges)}, fmt.Errorf("%s: %w: %w", methodRegularize, ErrSolverFailed, err)
	}
	if len(sol.X) == 0 {
		return Result{Edges: len(edges)}, fmt.Errorf("%s: empty solution: %w", methodRegularize, ErrSolverFailed)
	}
	logger.Debug("qp solved", "items", r.n, "edges", len(edges), "iterations", sol.Iterations, "status", sol.Status)

	res := Result{
		Edges:      len(edges),
		Variables:  prog.N(),
		Iterations: sol.Iterations,
		Status:     sol.Status,
		Objective:  prog.Objective(sol.X),
	}

	// 4. Commit.
	if err = r.rt.Update(sol.X); err != nil {
		return res, fmt.Errorf("%s: %w: %w", methodRegularize, ErrUpdate, err)
	}

	return res, nil
}
