// SPDX-License-Identifier: MIT

package segments

import (
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/shapereg/geom"
)

const (
	methodNewAngle    = "NewAngleRegularization"
	methodAddGroup    = "AddGroup"
	methodTarget      = "Target"
	methodUpdate      = "Update"
	minGroupSize      = 2
	minRangeLen       = 2
	maxAngleExclusive = geom.RightAngle
)

// ParallelGroup lists the segments that ended up on one orientation.
type ParallelGroup struct {
	// Angle is the shared orientation in degrees, [0, 180).
	Angle float64 `json:"angle" toml:"angle"`
	// Indices are ascending input indices.
	Indices []int `json:"indices" toml:"indices"`
}

// AngleRegularization snaps segment orientations so that near-parallel
// pairs become parallel and near-orthogonal pairs become orthogonal.
//
// It implements regularize.Type: Bound and Target feed the quadratic
// program, Update rotates every grouped segment about its barycenter to
// the orientation its class settled on and writes it back to the Range.
//
// Not safe for concurrent use.
type AngleRegularization struct {
	r        Range
	n        int
	maxAngle float64
	eps      float64
	logger   *log.Logger

	descs    []descriptor
	groups   [][]int
	table    *table
	parallel []ParallelGroup // insertion order; first writer per angle wins
	modified int
}

// NewAngleRegularization binds a regularization to r.
//
// A max angle outside [0, 90) or NaN is replaced by DefaultMaxAngle with a
// warning on the configured logger.
//
// Errors: ErrNilRange, ErrTooFewSegments.
func NewAngleRegularization(r Range, opts ...Option) (*AngleRegularization, error) {
	if r == nil {
		return nil, fmt.Errorf("%s: %w", methodNewAngle, ErrNilRange)
	}
	n := r.Len()
	if n < minRangeLen {
		return nil, fmt.Errorf("%s: len=%d: %w", methodNewAngle, n, ErrTooFewSegments)
	}

	o := gatherOptions(opts)
	maxAngle := o.MaxAngle
	if math.IsNaN(maxAngle) || maxAngle < 0 || maxAngle >= maxAngleExclusive {
		o.Logger.Warn("max angle out of range, using default",
			"max_angle", maxAngle, "default", DefaultMaxAngle)
		maxAngle = DefaultMaxAngle
	}

	return &AngleRegularization{
		r:        r,
		n:        n,
		maxAngle: maxAngle,
		eps:      maxAngle / marginDivisor,
		logger:   o.Logger,
		descs:    make([]descriptor, n),
		table:    newTable(),
	}, nil
}

// MaxAngle returns the effective angle bound in degrees.
func (a *AngleRegularization) MaxAngle() float64 { return a.maxAngle }

// Bound returns the max angle for every index.
func (a *AngleRegularization) Bound(int) float64 { return a.maxAngle }

// AddGroup registers segments that are regularized together. Duplicates are
// dropped, first occurrence kept. The call is atomic: on error nothing is
// recorded.
//
// Errors: ErrGroupTooSmall, ErrIndexOutOfRange, ErrDegenerateGeometry.
func (a *AngleRegularization) AddGroup(indices []int) error {
	group, err := validateGroup(a.r, a.n, indices)
	if err != nil {
		return fmt.Errorf("%s: %w", methodAddGroup, err)
	}

	fresh := make([]descriptor, 0, len(group))
	for _, i := range group {
		if a.descs[i].used {
			continue
		}
		d, ok := newDescriptor(i, a.r.Segment(i))
		if !ok {
			return fmt.Errorf("%s: segment %d: %w", methodAddGroup, i, ErrDegenerateGeometry)
		}
		fresh = append(fresh, d)
	}
	for _, d := range fresh {
		a.descs[d.index] = d
	}
	a.groups = append(a.groups, group)
	a.logger.Debug("angle group added", "size", len(group), "groups", len(a.groups))

	return nil
}

// CreateUniqueGroup adds all indices 0..Len()-1 as one group.
func (a *AngleRegularization) CreateUniqueGroup() error {
	all := make([]int, a.n)
	for i := range all {
		all[i] = i
	}

	return a.AddGroup(all)
}

// NumberOfGroups returns the number of groups added since the last Clear.
func (a *AngleRegularization) NumberOfGroups() int { return len(a.groups) }

// NumberOfModifiedSegments returns how many segment writes Update performed
// since the last Clear. A segment rewritten by several groups or several
// Update calls counts every time.
func (a *AngleRegularization) NumberOfModifiedSegments() int { return a.modified }

// Target returns the rotation x_i − x_j that brings i and j to the nearest
// multiple of 90 degrees apart, and records the pair when it is reachable
// within Bound(i) + Bound(j). Pairs are recorded once under (min, max);
// querying again overwrites the same record.
//
// Errors: ErrIndexOutOfRange, ErrSelfPair, ErrUnknownSegment.
func (a *AngleRegularization) Target(i, j int) (float64, error) {
	if i < 0 || i >= a.n || j < 0 || j >= a.n {
		return 0, fmt.Errorf("%s: (%d,%d): %w", methodTarget, i, j, ErrIndexOutOfRange)
	}
	if i == j {
		return 0, fmt.Errorf("%s: %d: %w", methodTarget, i, ErrSelfPair)
	}
	if !a.descs[i].used || !a.descs[j].used {
		return 0, fmt.Errorf("%s: (%d,%d): %w", methodTarget, i, j, ErrUnknownSegment)
	}

	t, _ := angleTarget(a.descs[i].orientation, a.descs[j].orientation)
	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}
	tr, rel := angleTarget(a.descs[lo].orientation, a.descs[hi].orientation)
	if math.Abs(tr) < a.Bound(lo)+a.Bound(hi) {
		a.table.put(lo, hi, tr, rel)
	}

	return t, nil
}

// angleTarget picks the nearer of the two multiples of 90 degrees that
// bracket oi − oj; ties go to the lower one.
func angleTarget(oi, oj float64) (float64, Relation) {
	diff := oi - oj
	k := int(math.Floor(diff / geom.RightAngle))
	toLower := geom.RightAngle*float64(k) - diff
	toUpper := geom.RightAngle*float64(k+1) - diff

	t := toLower
	if math.Abs(toUpper) < math.Abs(toLower) {
		t = toUpper
		k++
	}
	if (90*k)%180 == 0 {
		return t, Parallel
	}

	return t, Orthogonal
}

// Relations returns the recorded pairs in discriminator order.
func (a *AngleRegularization) Relations() []RelationInfo { return a.table.ordered() }

// Update commits a solved correction vector laid out as n segment
// corrections followed by one slack per recorded pair.
//
// For every group it builds the orientation classes of its members, rotates
// each member about its barycenter to the class orientation and writes it
// back to the range. The resulting classes are merged into ParallelGroups.
// The solution is fully validated before the first write.
//
// Every rewritten member counts as modified, including one whose angle did
// not change. Rewritten segments run along the canonical direction, so a
// member pointing downward gets its Source and Target swapped.
//
// Errors: ErrEmptySolution, ErrEmptyTable, ErrTableMismatch, ErrSolutionSize,
// ErrInvalidSolution, ErrDegenerateGeometry.
func (a *AngleRegularization) Update(solution []float64) error {
	all, err := checkSolution(solution, a.n, a.table)
	if err != nil {
		return fmt.Errorf("%s: %w", methodUpdate, err)
	}

	s := snapper{
		value:    func(i int) float64 { return geom.NormalizeAngle(a.descs[i].orientation + solution[i]) },
		shift:    func(v float64) float64 { return geom.NormalizeAngle(v + geom.RightAngle) },
		distance: geom.AngleDistance,
	}

	// 1) Classify every group before touching the range.
	plans := make([][]class, 0, len(a.groups))
	for _, g := range a.groups {
		local := restrict(all, memberSet(g))
		plans = append(plans, classify(g, local, solution, a.n, a.eps, s, a.logger))
	}

	// 2) Rotate into a scratch buffer.
	var writes []write
	for _, classes := range plans {
		for _, c := range classes {
			for _, m := range c.members {
				seg, ok := rotate(a.descs[m], c.value)
				if !ok {
					return fmt.Errorf("%s: segment %d: %w", methodUpdate, m, ErrDegenerateGeometry)
				}
				writes = append(writes, write{index: m, seg: seg})
			}
		}
	}

	// 3) Commit.
	for _, w := range writes {
		a.r.SetSegment(w.index, w.seg)
		a.modified++
	}
	for _, classes := range plans {
		for _, c := range classes {
			a.mergeParallel(c)
		}
	}
	a.logger.Debug("angles updated", "groups", len(a.groups), "written", len(writes),
		"orientations", len(a.parallel))

	return nil
}

func (a *AngleRegularization) mergeParallel(c class) {
	for _, pg := range a.parallel {
		if pg.Angle == c.value {
			return
		}
	}
	a.parallel = append(a.parallel, ParallelGroup{Angle: c.value, Indices: append([]int(nil), c.members...)})
}

// ParallelGroups returns copies of the orientation classes collected by
// Update, in ascending angle order. When two classes produce the same angle
// the first one committed is kept.
func (a *AngleRegularization) ParallelGroups() []ParallelGroup {
	out := make([]ParallelGroup, len(a.parallel))
	for k, pg := range a.parallel {
		out[k] = ParallelGroup{Angle: pg.Angle, Indices: append([]int(nil), pg.Indices...)}
	}
	sort.SliceStable(out, func(x, y int) bool { return out[x].Angle < out[y].Angle })

	return out
}

// Clear drops groups, descriptors, recorded pairs, parallel groups and the
// modified counter. The range binding and max angle are kept.
func (a *AngleRegularization) Clear() {
	a.descs = make([]descriptor, a.n)
	a.groups = nil
	a.table.reset()
	a.parallel = nil
	a.modified = 0
}

type write struct {
	index int
	seg   geom.Segment
}

// validateGroup dedupes indices and checks size and range.
func validateGroup(r Range, n int, indices []int) ([]int, error) {
	group := dedupe(indices)
	if len(group) < minGroupSize {
		return nil, fmt.Errorf("size %d: %w", len(group), ErrGroupTooSmall)
	}
	for _, i := range group {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("index %d: %w", i, ErrIndexOutOfRange)
		}
	}

	return group, nil
}

func memberSet(group []int) map[int]struct{} {
	set := make(map[int]struct{}, len(group))
	for _, i := range group {
		set[i] = struct{}{}
	}

	return set
}

// checkSolution validates layout and values and returns the ordered pairs.
func checkSolution(solution []float64, n int, t *table) ([]RelationInfo, error) {
	if len(solution) == 0 {
		return nil, ErrEmptySolution
	}
	if t.len() == 0 {
		return nil, ErrEmptyTable
	}
	all := t.ordered()
	if err := checkDense(all); err != nil {
		return nil, err
	}
	if want := n + len(all); len(solution) < want {
		return nil, fmt.Errorf("got %d, want %d: %w", len(solution), want, ErrSolutionSize)
	}
	for k, v := range solution {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("value %d: %w", k, ErrInvalidSolution)
		}
	}

	return all, nil
}
