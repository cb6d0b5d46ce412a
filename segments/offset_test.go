package segments_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/shapereg/geom"
	"github.com/katalvlaran/shapereg/segments"
)

// shelves are three horizontal segments; the first two sit 0.05 apart.
func shelves() segments.Slice {
	return segments.Slice{
		geom.Seg(0, 0, 4, 0),
		geom.Seg(5, 0.05, 8, 0.05),
		geom.Seg(0, 1, 4, 1),
	}
}

func TestNewOffsetRegularization(t *testing.T) {
	_, err := segments.NewOffsetRegularization(nil)
	assert.ErrorIs(t, err, segments.ErrNilRange)

	for _, bad := range []float64{0, -1, math.Inf(1), math.NaN()} {
		or, err := segments.NewOffsetRegularization(shelves(), quiet(), segments.WithMaxOffset(bad))
		require.NoError(t, err)
		assert.Equal(t, segments.DefaultMaxOffset, or.MaxOffset())
	}

	or, err := segments.NewOffsetRegularization(shelves(), quiet(), segments.WithMaxOffset(0.5))
	require.NoError(t, err)
	assert.Equal(t, 0.5, or.Bound(2))
}

func TestOffsetTarget(t *testing.T) {
	or, err := segments.NewOffsetRegularization(shelves(), quiet())
	require.NoError(t, err)
	require.NoError(t, or.CreateUniqueGroup())
	queryAll(t, or, 3)

	rels := or.Relations()
	require.Len(t, rels, 1)
	assert.Equal(t, 0, rels[0].I)
	assert.Equal(t, 1, rels[0].J)
	assert.InDelta(t, 0.05, rels[0].Target, eps)
	assert.Equal(t, segments.Parallel, rels[0].Relation)

	got, err := or.Target(2, 0)
	require.NoError(t, err)
	assert.InDelta(t, -1, got, eps)
}

func TestOffsetTarget_FrameMismatch(t *testing.T) {
	or, err := segments.NewOffsetRegularization(shelves(), quiet())
	require.NoError(t, err)
	require.NoError(t, or.AddGroup([]int{0, 1}))
	require.NoError(t, or.AddGroup([]int{2, 1}))

	_, err = or.Target(0, 2)
	assert.ErrorIs(t, err, segments.ErrFrameMismatch)
	assert.Equal(t, 2, or.NumberOfGroups())
}

func TestOffsetUpdate(t *testing.T) {
	segs := shelves()
	before := append(segments.Slice(nil), segs...)
	or, err := segments.NewOffsetRegularization(segs, quiet())
	require.NoError(t, err)
	require.NoError(t, or.CreateUniqueGroup())
	queryAll(t, or, 3)

	require.NoError(t, or.Update([]float64{0.025, -0.025, 0, 0}))

	assert.Equal(t, 3, or.NumberOfModifiedSegments())
	lines := or.CollinearGroups()
	require.Len(t, lines, 2)
	assert.InDelta(t, 0.025, lines[0].Offset, eps)
	assert.Equal(t, []int{0, 1}, lines[0].Indices)
	assert.InDelta(t, 1.0, lines[1].Offset, eps)
	assert.Equal(t, []int{2}, lines[1].Indices)

	for i := 0; i < 2; i++ {
		assert.InDelta(t, 0.025, segs[i].Source.Y, eps)
		assert.InDelta(t, 0.025, segs[i].Target.Y, eps)
		assert.InDelta(t, before[i].Source.X, segs[i].Source.X, eps)
		assert.InDelta(t, before[i].Length(), segs[i].Length(), eps)
	}
	assert.InDelta(t, 1.0, segs[2].Source.Y, eps)

	or.Clear()
	assert.Empty(t, or.CollinearGroups())
	assert.Equal(t, 0, or.NumberOfModifiedSegments())
}

func TestOffsetUpdate_Errors(t *testing.T) {
	or, err := segments.NewOffsetRegularization(shelves(), quiet())
	require.NoError(t, err)
	require.NoError(t, or.CreateUniqueGroup())

	assert.ErrorIs(t, or.Update(nil), segments.ErrEmptySolution)
	assert.ErrorIs(t, or.Update([]float64{0, 0, 0}), segments.ErrEmptyTable)

	queryAll(t, or, 3)
	assert.ErrorIs(t, or.Update([]float64{0, 0, 0}), segments.ErrSolutionSize)
}
