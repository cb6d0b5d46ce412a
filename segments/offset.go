// SPDX-License-Identifier: MIT

package segments

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/shapereg/geom"
)

const methodNewOffset = "NewOffsetRegularization"

// CollinearGroup lists the segments of one group that ended up on a shared
// carrier line.
type CollinearGroup struct {
	// Angle is the orientation of the group's frame in degrees.
	Angle float64 `json:"angle" toml:"angle"`
	// Offset is the signed distance of the line along the frame normal.
	Offset float64 `json:"offset" toml:"offset"`
	// Indices are ascending input indices.
	Indices []int `json:"indices" toml:"indices"`
}

// frame is the shared coordinate system of one offset group.
type frame struct {
	angle  float64
	normal geom.Vector
}

// OffsetRegularization snaps near-collinear parallel segments onto shared
// lines by translating them along a group normal.
//
// Each group's frame is the orientation of its first member; a segment's
// offset is the signed distance of its barycenter along the frame normal.
// Groups are expected to be near-parallel already, typically the output of
// ParallelGroups or of an AngleRegularization pass. A segment belongs to the
// first group that names it.
//
// It implements regularize.Type and is not safe for concurrent use.
type OffsetRegularization struct {
	r         Range
	n         int
	maxOffset float64
	eps       float64
	logger    *log.Logger

	descs    []descriptor
	groupOf  []int // -1 when ungrouped
	ref      []float64
	frames   []frame
	groups   [][]int
	table    *table
	lines    []CollinearGroup
	modified int
}

// NewOffsetRegularization binds an offset regularization to r.
//
// A max offset that is not finite and > 0 is replaced by DefaultMaxOffset
// with a warning.
//
// Errors: ErrNilRange, ErrTooFewSegments.
func NewOffsetRegularization(r Range, opts ...Option) (*OffsetRegularization, error) {
	if r == nil {
		return nil, fmt.Errorf("%s: %w", methodNewOffset, ErrNilRange)
	}
	n := r.Len()
	if n < minRangeLen {
		return nil, fmt.Errorf("%s: len=%d: %w", methodNewOffset, n, ErrTooFewSegments)
	}

	o := gatherOptions(opts)
	maxOffset := o.MaxOffset
	if !(maxOffset > 0) || math.IsInf(maxOffset, 0) {
		o.Logger.Warn("max offset out of range, using default",
			"max_offset", maxOffset, "default", DefaultMaxOffset)
		maxOffset = DefaultMaxOffset
	}

	or := &OffsetRegularization{
		r:         r,
		n:         n,
		maxOffset: maxOffset,
		eps:       maxOffset / marginDivisor,
		logger:    o.Logger,
		table:     newTable(),
	}
	or.reset()

	return or, nil
}

func (o *OffsetRegularization) reset() {
	o.descs = make([]descriptor, o.n)
	o.groupOf = make([]int, o.n)
	for i := range o.groupOf {
		o.groupOf[i] = -1
	}
	o.ref = make([]float64, o.n)
	o.frames = nil
	o.groups = nil
	o.table.reset()
	o.lines = nil
	o.modified = 0
}

// MaxOffset returns the effective offset bound.
func (o *OffsetRegularization) MaxOffset() float64 { return o.maxOffset }

// Bound returns the max offset for every index.
func (o *OffsetRegularization) Bound(int) float64 { return o.maxOffset }

// AddGroup registers near-parallel segments. Members already owned by an
// earlier group keep that group's frame. Atomic on error.
//
// Errors: ErrGroupTooSmall, ErrIndexOutOfRange, ErrDegenerateGeometry.
func (o *OffsetRegularization) AddGroup(indices []int) error {
	group, err := validateGroup(o.r, o.n, indices)
	if err != nil {
		return fmt.Errorf("%s: %w", methodAddGroup, err)
	}

	fresh := make([]descriptor, 0, len(group))
	for _, i := range group {
		if o.descs[i].used {
			continue
		}
		d, ok := newDescriptor(i, o.r.Segment(i))
		if !ok {
			return fmt.Errorf("%s: segment %d: %w", methodAddGroup, i, ErrDegenerateGeometry)
		}
		fresh = append(fresh, d)
	}
	if len(fresh) == 0 {
		// Every member already has a frame; the group still counts.
		o.groups = append(o.groups, group)
		return nil
	}

	// The frame follows the first member; join its frame when it has one.
	gid := len(o.frames)
	if o.descs[group[0]].used {
		gid = o.groupOf[group[0]]
	} else {
		angle := fresh[0].orientation
		o.frames = append(o.frames, frame{angle: angle, normal: geom.UnitFromDegrees(angle).Perp()})
	}
	f := o.frames[gid]
	for _, d := range fresh {
		o.descs[d.index] = d
		o.groupOf[d.index] = gid
		o.ref[d.index] = f.normal.Dot(d.barycenter.Sub(geom.Point{}))
	}
	o.groups = append(o.groups, group)
	o.logger.Debug("offset group added", "size", len(group), "frame", f.angle)

	return nil
}

// CreateUniqueGroup adds all indices as one group.
func (o *OffsetRegularization) CreateUniqueGroup() error {
	all := make([]int, o.n)
	for i := range all {
		all[i] = i
	}

	return o.AddGroup(all)
}

// NumberOfGroups returns the number of groups added since the last Clear.
func (o *OffsetRegularization) NumberOfGroups() int { return len(o.groups) }

// NumberOfModifiedSegments returns the number of segment writes since the
// last Clear.
func (o *OffsetRegularization) NumberOfModifiedSegments() int { return o.modified }

// Target returns ref(j) − ref(i), the translation x_i − x_j that puts both
// segments on one line, recording the pair when it is within bounds.
//
// Errors: ErrIndexOutOfRange, ErrSelfPair, ErrUnknownSegment, ErrFrameMismatch.
func (o *OffsetRegularization) Target(i, j int) (float64, error) {
	if i < 0 || i >= o.n || j < 0 || j >= o.n {
		return 0, fmt.Errorf("%s: (%d,%d): %w", methodTarget, i, j, ErrIndexOutOfRange)
	}
	if i == j {
		return 0, fmt.Errorf("%s: %d: %w", methodTarget, i, ErrSelfPair)
	}
	if !o.descs[i].used || !o.descs[j].used {
		return 0, fmt.Errorf("%s: (%d,%d): %w", methodTarget, i, j, ErrUnknownSegment)
	}
	if o.groupOf[i] != o.groupOf[j] {
		return 0, fmt.Errorf("%s: (%d,%d): %w", methodTarget, i, j, ErrFrameMismatch)
	}

	t := o.ref[j] - o.ref[i]
	if math.Abs(t) < o.Bound(i)+o.Bound(j) {
		lo, hi := i, j
		if lo > hi {
			lo, hi = hi, lo
		}
		o.table.put(lo, hi, o.ref[hi]-o.ref[lo], Parallel)
	}

	return t, nil
}

// Relations returns the recorded pairs in discriminator order.
func (o *OffsetRegularization) Relations() []RelationInfo { return o.table.ordered() }

// Update moves every grouped segment along its frame normal onto the line
// its class settled on. Length and direction are preserved.
//
// Errors: same as AngleRegularization.Update.
func (o *OffsetRegularization) Update(solution []float64) error {
	all, err := checkSolution(solution, o.n, o.table)
	if err != nil {
		return fmt.Errorf("%s: %w", methodUpdate, err)
	}

	s := snapper{
		value:    func(i int) float64 { return o.ref[i] + solution[i] },
		shift:    func(v float64) float64 { return v },
		distance: func(a, b float64) float64 { return math.Abs(a - b) },
	}

	type line struct {
		gid int
		c   class
	}
	var lines []line
	for _, g := range o.groups {
		// Only members framed by this group move with it.
		gid := o.groupOf[g[0]]
		owned := make([]int, 0, len(g))
		for _, m := range g {
			if o.groupOf[m] == gid {
				owned = append(owned, m)
			}
		}
		local := restrict(all, memberSet(owned))
		for _, c := range classify(owned, local, solution, o.n, o.eps, s, o.logger) {
			lines = append(lines, line{gid: gid, c: c})
		}
	}

	for _, l := range lines {
		f := o.frames[l.gid]
		for _, m := range l.c.members {
			d := o.descs[m]
			shift := f.normal.Scale(l.c.value - o.ref[m])
			o.r.SetSegment(m, geom.Segment{Source: d.source.Add(shift), Target: d.target.Add(shift)})
			o.modified++
		}
		o.mergeLine(CollinearGroup{Angle: f.angle, Offset: l.c.value, Indices: l.c.members})
	}
	o.logger.Debug("offsets updated", "groups", len(o.groups), "lines", len(o.lines))

	return nil
}

func (o *OffsetRegularization) mergeLine(cg CollinearGroup) {
	for _, l := range o.lines {
		if l.Angle == cg.Angle && l.Offset == cg.Offset {
			return
		}
	}
	cg.Indices = append([]int(nil), cg.Indices...)
	o.lines = append(o.lines, cg)
}

// CollinearGroups returns copies of the lines collected by Update in commit
// order.
func (o *OffsetRegularization) CollinearGroups() []CollinearGroup {
	out := make([]CollinearGroup, len(o.lines))
	for k, l := range o.lines {
		out[k] = CollinearGroup{Angle: l.Angle, Offset: l.Offset, Indices: append([]int(nil), l.Indices...)}
	}

	return out
}

// Clear drops all groups, recorded pairs, lines and the counter.
func (o *OffsetRegularization) Clear() { o.reset() }
