// SPDX-License-Identifier: MIT

package segments

import (
	"context"
	"fmt"

	"github.com/katalvlaran/shapereg/neighbor"
	"github.com/katalvlaran/shapereg/qp"
	"github.com/katalvlaran/shapereg/regularize"
)

const (
	methodRegularizeAngles  = "RegularizeAngles"
	methodRegularizeOffsets = "RegularizeOffsets"
)

// RegularizeAngles runs one angle regularization pass over r.
//
// With no groups, all segments form one group. A nil q regularizes every
// pair of each group. A non-nil q is restricted to pairs that share a
// group, so a proximity graph over the whole range combines with partial
// groups. A nil solver uses qp.NewADMM with the same logger.
// The regularization is returned for inspection even when the driver
// reports an error after construction.
func RegularizeAngles(ctx context.Context, r Range, q neighbor.Query, groups [][]int, solver qp.Solver, opts ...Option) (*AngleRegularization, regularize.Result, error) {
	ar, err := NewAngleRegularization(r, opts...)
	if err != nil {
		return nil, regularize.Result{}, fmt.Errorf("%s: %w", methodRegularizeAngles, err)
	}
	if err = addGroups(ar, groups); err != nil {
		return ar, regularize.Result{}, fmt.Errorf("%s: %w", methodRegularizeAngles, err)
	}

	res, err := drive(ctx, ar.n, q, ar.groups, ar, solver, gatherOptions(opts))
	if err != nil {
		return ar, res, fmt.Errorf("%s: %w", methodRegularizeAngles, err)
	}

	return ar, res, nil
}

// RegularizeOffsets runs one offset regularization pass over r with the
// same defaults as RegularizeAngles.
func RegularizeOffsets(ctx context.Context, r Range, q neighbor.Query, groups [][]int, solver qp.Solver, opts ...Option) (*OffsetRegularization, regularize.Result, error) {
	or, err := NewOffsetRegularization(r, opts...)
	if err != nil {
		return nil, regularize.Result{}, fmt.Errorf("%s: %w", methodRegularizeOffsets, err)
	}
	if err = addGroups(or, groups); err != nil {
		return or, regularize.Result{}, fmt.Errorf("%s: %w", methodRegularizeOffsets, err)
	}

	res, err := drive(ctx, or.n, q, or.groups, or, solver, gatherOptions(opts))
	if err != nil {
		return or, res, fmt.Errorf("%s: %w", methodRegularizeOffsets, err)
	}

	return or, res, nil
}

type grouper interface {
	AddGroup(indices []int) error
	CreateUniqueGroup() error
}

func addGroups(g grouper, groups [][]int) error {
	if len(groups) == 0 {
		return g.CreateUniqueGroup()
	}
	for _, grp := range groups {
		if err := g.AddGroup(grp); err != nil {
			return err
		}
	}

	return nil
}

// drive wires the default collaborators and runs the driver.
func drive(ctx context.Context, n int, q neighbor.Query, groups [][]int, rt regularize.Type, solver qp.Solver, o Options) (regularize.Result, error) {
	if q == nil {
		g := neighbor.NewGraph()
		for _, grp := range groups {
			clique, err := neighbor.Complete(grp)
			if err != nil {
				return regularize.Result{}, err
			}
			for _, e := range clique.Edges() {
				if err = g.AddEdge(e.From, e.To); err != nil {
					return regularize.Result{}, err
				}
			}
		}
		q = g
	} else {
		q = neighbor.Restrict(q, groups)
	}
	if solver == nil {
		solver = qp.NewADMM(qp.WithLogger(o.Logger))
	}

	dopts := append([]regularize.Option{regularize.WithLogger(o.Logger)}, o.Driver...)
	reg, err := regularize.New(n, q, rt, solver, dopts...)
	if err != nil {
		return regularize.Result{}, err
	}

	return reg.Regularize(ctx)
}
