// SPDX-License-Identifier: MIT

package neighbor

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/shapereg/geom"
)

const (
	methodComplete  = "Complete"
	methodProximity = "Proximity"
	minPoints       = 2
)

// Complete returns the clique over indices. Duplicate indices are linked
// once; a single index yields an isolated vertex.
//
// Errors: ErrNegativeVertex for any index below zero.
// Complexity: O(n²) edges.
func Complete(indices []int) (*Graph, error) {
	g := NewGraph()
	for a, u := range indices {
		if err := g.AddVertex(u); err != nil {
			return nil, fmt.Errorf("%s: %w", methodComplete, err)
		}
		for _, v := range indices[a+1:] {
			if u == v {
				continue
			}
			if err := g.AddEdge(u, v); err != nil {
				return nil, fmt.Errorf("%s: %w", methodComplete, err)
			}
		}
	}

	return g, nil
}

// Proximity links every point with its k nearest other points; the result
// is the symmetric union, so a vertex may end up with more than k neighbors.
// k is capped at len(points)-1. Ties are broken by ascending index.
//
// Errors:
//   - ErrTooFewPoints if len(points) < 2.
//   - ErrBadK if k < 1.
//
// Complexity: O(n² log n) time, O(n) extra space.
func Proximity(points []geom.Point, k int) (*Graph, error) {
	// 1. Validate.
	if len(points) < minPoints {
		return nil, fmt.Errorf("%s: n=%d: %w", methodProximity, len(points), ErrTooFewPoints)
	}
	if k < 1 {
		return nil, fmt.Errorf("%s: k=%d: %w", methodProximity, k, ErrBadK)
	}
	if k > len(points)-1 {
		k = len(points) - 1
	}

	type candidate struct {
		idx  int
		dist float64
	}

	g := NewGraph()
	cands := make([]candidate, 0, len(points)-1)

	// 2. For every point rank the others by distance and keep the first k.
	for i, p := range points {
		if err := g.AddVertex(i); err != nil {
			return nil, fmt.Errorf("%s: %w", methodProximity, err)
		}
		cands = cands[:0]
		for j, q := range points {
			if j == i {
				continue
			}
			cands = append(cands, candidate{idx: j, dist: p.Distance(q)})
		}
		sort.Slice(cands, func(a, b int) bool {
			if cands[a].dist != cands[b].dist {
				return cands[a].dist < cands[b].dist
			}
			return cands[a].idx < cands[b].idx
		})
		for _, c := range cands[:k] {
			if err := g.AddEdge(i, c.idx); err != nil {
				return nil, fmt.Errorf("%s: %w", methodProximity, err)
			}
		}
	}

	return g, nil
}

// Barycenters returns the midpoints of segs, the usual input of Proximity.
func Barycenters(segs []geom.Segment) []geom.Point {
	out := make([]geom.Point, len(segs))
	for i, s := range segs {
		out[i] = s.Barycenter()
	}

	return out
}
