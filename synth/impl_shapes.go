// SPDX-License-Identifier: MIT
// Package: shapereg/synth
//
// impl_shapes.go: shape constructors.
//
// Emission order is part of the contract; tests and golden files rely on it.

package synth

import (
	"math"

	"github.com/katalvlaran/shapereg/geom"
)

const (
	minGridCells    = 1
	minStarRays     = 2
	minPolylinePts  = 2
	starInnerFactor = 0.1 // rays start at 10% of the radius
)

func validLength(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

// Square emits the bottom, top, left and right sides of a size×size square
// centered on the origin option.
func Square(size float64) Constructor {
	return func(cfg config) ([]geom.Segment, error) {
		if !validLength(size) {
			return nil, wrapf(methodSquare, "size=%v", ErrBadSize, size)
		}
		h := size / 2
		o := cfg.origin

		return []geom.Segment{
			geom.Seg(o.X-h, o.Y-h, o.X+h, o.Y-h),
			geom.Seg(o.X-h, o.Y+h, o.X+h, o.Y+h),
			geom.Seg(o.X-h, o.Y-h, o.X-h, o.Y+h),
			geom.Seg(o.X+h, o.Y-h, o.X+h, o.Y+h),
		}, nil
	}
}

// Grid emits every cell edge of a rows×cols grid whose lower-left corner is
// the origin: first the horizontal edges row by row, then the vertical edges
// column by column. It yields (rows+1)·cols + (cols+1)·rows segments.
func Grid(rows, cols int, spacing float64) Constructor {
	return func(cfg config) ([]geom.Segment, error) {
		if rows < minGridCells || cols < minGridCells {
			return nil, wrapf(methodGrid, "rows=%d cols=%d", ErrTooFewSegments, rows, cols)
		}
		if !validLength(spacing) {
			return nil, wrapf(methodGrid, "spacing=%v", ErrBadSize, spacing)
		}
		o := cfg.origin
		out := make([]geom.Segment, 0, (rows+1)*cols+(cols+1)*rows)
		for r := 0; r <= rows; r++ {
			y := o.Y + float64(r)*spacing
			for c := 0; c < cols; c++ {
				x := o.X + float64(c)*spacing
				out = append(out, geom.Seg(x, y, x+spacing, y))
			}
		}
		for c := 0; c <= cols; c++ {
			x := o.X + float64(c)*spacing
			for r := 0; r < rows; r++ {
				y := o.Y + float64(r)*spacing
				out = append(out, geom.Seg(x, y, x, y+spacing))
			}
		}

		return out, nil
	}
}

// Star emits n rays around the origin at angles k·360/n, each running from
// 10% of radius out to radius.
func Star(n int, radius float64) Constructor {
	return func(cfg config) ([]geom.Segment, error) {
		if n < minStarRays {
			return nil, wrapf(methodStar, "n=%d", ErrTooFewSegments, n)
		}
		if !validLength(radius) {
			return nil, wrapf(methodStar, "radius=%v", ErrBadSize, radius)
		}
		out := make([]geom.Segment, n)
		for k := range out {
			u := geom.UnitFromDegrees(360 * float64(k) / float64(n))
			out[k] = geom.Segment{
				Source: cfg.origin.Add(u.Scale(radius * starInnerFactor)),
				Target: cfg.origin.Add(u.Scale(radius)),
			}
		}

		return out, nil
	}
}

// Polyline emits the len(points)-1 edges of the open chain through points,
// translated by the origin.
func Polyline(points []geom.Point) Constructor {
	pts := append([]geom.Point(nil), points...)
	return func(cfg config) ([]geom.Segment, error) {
		if len(pts) < minPolylinePts {
			return nil, wrapf(methodPolyline, "points=%d", ErrTooFewSegments, len(pts))
		}
		shift := cfg.origin.Sub(geom.Point{})
		out := make([]geom.Segment, 0, len(pts)-1)
		for k := 1; k < len(pts); k++ {
			if pts[k] == pts[k-1] {
				return nil, wrapf(methodPolyline, "points %d and %d coincide", ErrBadSize, k-1, k)
			}
			out = append(out, geom.Segment{Source: pts[k-1].Add(shift), Target: pts[k].Add(shift)})
		}

		return out, nil
	}
}
