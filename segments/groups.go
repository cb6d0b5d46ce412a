// SPDX-License-Identifier: MIT

package segments

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/shapereg/geom"
)

const methodParallelGroups = "ParallelGroups"

// ParallelGroups buckets the segments of r by orientation: a segment with
// orientation o falls into bucket round(o / tolerance), and the bucket that
// reaches 180 degrees folds onto 0. Degenerate segments are left out.
//
// Buckets are returned in ascending angle order with ascending members.
// Every bucket is returned, including singletons, so callers decide what size
// is worth regularizing.
//
// Errors: ErrNilRange, ErrBadTolerance.
func ParallelGroups(r Range, tolerance float64) ([][]int, error) {
	if r == nil {
		return nil, fmt.Errorf("%s: %w", methodParallelGroups, ErrNilRange)
	}
	if !(tolerance > 0) || math.IsInf(tolerance, 0) {
		return nil, fmt.Errorf("%s: tolerance=%v: %w", methodParallelGroups, tolerance, ErrBadTolerance)
	}

	wrap := int(math.Round(geom.StraightAngle / tolerance))
	buckets := make(map[int][]int)
	for i := 0; i < r.Len(); i++ {
		s := r.Segment(i)
		if s.IsDegenerate() {
			continue
		}
		key := int(math.Round(s.Orientation() / tolerance))
		if key >= wrap {
			key = 0
		}
		buckets[key] = append(buckets[key], i)
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([][]int, 0, len(keys))
	for _, k := range keys {
		out = append(out, buckets[k])
	}

	return out, nil
}
