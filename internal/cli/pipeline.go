package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/katalvlaran/shapereg/geom"
	"github.com/katalvlaran/shapereg/neighbor"
	"github.com/katalvlaran/shapereg/qp"
	"github.com/katalvlaran/shapereg/regularize"
	"github.com/katalvlaran/shapereg/segments"
)

// pipeline runs the angle pass and, when enabled, the offset pass over segs
// in place.
func pipeline(ctx context.Context, segs []geom.Segment, cfg Config, logger *log.Logger) (report, error) {
	if err := cfg.validate(); err != nil {
		return report{}, err
	}
	rep := report{RunID: uuid.NewString()}
	logger = logger.With("run", rep.RunID[:8])

	solver := qp.NewADMM(
		qp.WithLogger(logger),
		qp.WithMaxIterations(cfg.Solver.MaxIterations),
		qp.WithTolerance(cfg.Solver.EpsAbs, cfg.Solver.EpsRel),
	)
	driver := []regularize.Option{
		regularize.WithWeight(cfg.Angles.Weight),
		regularize.WithLambda(cfg.Angles.Lambda),
	}
	r := segments.Slice(segs)

	// 1) Neighbor query.
	var q neighbor.Query
	if cfg.Neighbors.K > 0 && len(segs) > 1 {
		g, err := neighbor.Proximity(neighbor.Barycenters(segs), cfg.Neighbors.K)
		if err != nil {
			return report{}, fmt.Errorf("neighbors: %w", err)
		}
		logger.Debug("proximity graph", "k", cfg.Neighbors.K, "edges", g.EdgeCount(), "components", len(neighbor.Components(g)))
		q = g
	}

	// 2) Angles.
	p := newProgress(logger, "angles")
	ar, res, err := segments.RegularizeAngles(ctx, r, q, nil, solver,
		segments.WithLogger(logger),
		segments.WithMaxAngle(cfg.Angles.MaxAngle),
		segments.WithDriverOptions(driver...),
	)
	if err != nil {
		return report{}, fmt.Errorf("angles: %w", err)
	}
	rep.ParallelGroups = ar.ParallelGroups()
	rep.Angles = stats(res, ar.NumberOfModifiedSegments())
	rep.Modified = ar.NumberOfModifiedSegments()
	p.done(rep.Angles)

	// 3) Offsets over parallel buckets of the rotated segments.
	if cfg.Offsets.Enabled {
		p = newProgress(logger, "offsets")
		buckets, err := segments.ParallelGroups(r, cfg.Offsets.Tolerance)
		if err != nil {
			return report{}, fmt.Errorf("offsets: %w", err)
		}
		var groups [][]int
		for _, b := range buckets {
			if len(b) > 1 {
				groups = append(groups, b)
			}
		}
		ost := passStats{Status: qp.StatusUnsolved.String()}
		if len(groups) > 0 {
			or, res, err := segments.RegularizeOffsets(ctx, r, nil, groups, solver,
				segments.WithLogger(logger),
				segments.WithMaxOffset(cfg.Offsets.MaxOffset),
				segments.WithDriverOptions(driver...),
			)
			if err != nil {
				return report{}, fmt.Errorf("offsets: %w", err)
			}
			rep.CollinearGroups = or.CollinearGroups()
			ost = stats(res, or.NumberOfModifiedSegments())
			rep.Modified += or.NumberOfModifiedSegments()
		}
		rep.Offsets = &ost
		p.done(ost)
	}

	rep.Segments = segs

	return rep, nil
}

func stats(res regularize.Result, modified int) passStats {
	return passStats{
		Pairs:      res.Edges,
		Iterations: res.Iterations,
		Status:     res.Status.String(),
		Modified:   modified,
	}
}
