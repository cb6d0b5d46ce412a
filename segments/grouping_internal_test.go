package segments

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestParityDSU(t *testing.T) {
	d := newParityDSU(5)
	assert.True(t, d.union(0, 1, 0))
	assert.True(t, d.union(1, 2, 1))
	assert.True(t, d.union(3, 4, 1))
	assert.True(t, d.union(2, 3, 0))

	r0, p0 := d.find(0)
	for v, want := range []int{0, 0, 1, 1, 0} {
		r, p := d.find(v)
		assert.Equal(t, r0, r)
		assert.Equal(t, want, p^p0, "vertex %d", v)
	}

	// 0 ~ 2 is known to be orthogonal.
	assert.False(t, d.union(0, 2, 0))
	assert.True(t, d.union(0, 2, 1))
}

func TestClassify_SkipsInconsistentRelation(t *testing.T) {
	// Three members, all values 10. (0,1) parallel and (0,2) orthogonal are
	// merged first, so the contradicting (1,2) parallel is dropped.
	local := []RelationInfo{
		{I: 0, J: 1, Relation: Parallel, Discriminator: 0},
		{I: 0, J: 2, Relation: Orthogonal, Discriminator: 1},
		{I: 1, J: 2, Relation: Parallel, Discriminator: 2},
	}
	solution := []float64{0, 0, 0, 0, 0, 0}
	s := snapper{
		value:    func(int) float64 { return 10 },
		shift:    func(v float64) float64 { return v + 90 },
		distance: func(a, b float64) float64 { return abs(a - b) },
	}

	got := classify([]int{2, 0, 1}, local, solution, 3, 0.1, s, log.New(io.Discard))
	assert.Equal(t, []class{{value: 10, members: []int{0, 1}}, {value: 100, members: []int{2}}}, got)
}

func TestCheckDense(t *testing.T) {
	assert.NoError(t, checkDense([]RelationInfo{{I: 0, J: 1, Discriminator: 0}, {I: 0, J: 2, Discriminator: 1}}))
	assert.ErrorIs(t, checkDense([]RelationInfo{{I: 0, J: 1, Discriminator: 1}}), ErrTableMismatch)
	assert.ErrorIs(t, checkDense([]RelationInfo{{I: 2, J: 1, Discriminator: 0}}), ErrTableMismatch)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
