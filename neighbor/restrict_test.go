// SPDX-License-Identifier: MIT

package neighbor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/shapereg/neighbor"
)

func TestRestrict_KeepsPairsWithinOneGroup(t *testing.T) {
	g, err := neighbor.Complete([]int{0, 1, 2, 3, 4})
	require.NoError(t, err)

	q := neighbor.Restrict(g, [][]int{{0, 1}, {2, 3, 1}})
	assert.Equal(t, []int{1}, q.Neighbors(0))
	assert.Equal(t, []int{0, 2, 3}, q.Neighbors(1))
	assert.Equal(t, []int{1, 3}, q.Neighbors(2))
	assert.Empty(t, q.Neighbors(4), "ungrouped index")
}

func TestRestrict_NeverAddsPairs(t *testing.T) {
	g := neighbor.NewGraph()
	require.NoError(t, g.AddEdge(0, 1))
	require.NoError(t, g.AddVertex(2))

	q := neighbor.Restrict(g, [][]int{{0, 1, 2}, {2, 2, 0}})
	assert.Equal(t, []int{1}, q.Neighbors(0))
	assert.Empty(t, q.Neighbors(2))
}
