// SPDX-License-Identifier: MIT

// Package shapereg regularizes sets of 2D line segments: near-parallel and
// near-orthogonal segments are rotated to exact relations, and
// near-collinear parallel segments are translated onto shared lines.
//
// Both passes are phrased as one quadratic program. Every segment owns a
// bounded correction variable, every related pair owns a slack variable,
// and the solver trades total correction against violated relations.
//
// Layout:
//
//	geom/        points, vectors, segments, angle arithmetic
//	neighbor/    neighbor queries: explicit graphs, cliques, k-nearest proximity
//	qp/          sparse QP model and an ADMM solver on gonum/mat
//	regularize/  the driver: edges → program → solve → update
//	segments/    angle and offset regularization types, parallel grouping,
//	             one-call RegularizeAngles / RegularizeOffsets
//	synth/       deterministic noisy fixtures (squares, grids, stars, polylines)
//	cmd/shapereg the command-line tool (internal/cli)
//
// Quick start:
//
//	segs := []geom.Segment{...}
//	ar, res, err := segments.RegularizeAngles(ctx, segments.Slice(segs), nil, nil, nil)
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.Edges, ar.ParallelGroups())
//
// A nil query relates every pair inside each group, a nil group list treats
// the whole input as one group, and a nil solver is a default qp.ADMM.
package shapereg
