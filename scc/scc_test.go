package scc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stg-tools/stg/scc"
)

// TestSingleNodeNoCycleIsTrivial exercises the simplest DFS shape: open,
// no children, close immediately as a trivial one-member component.
func TestSingleNodeNoCycleIsTrivial(t *testing.T) {
	tr := scc.New[int]()
	status := tr.Open(1)
	require.Equal(t, scc.Fresh, status)

	component, trivial, isRoot := tr.Close(1)
	require.True(t, isRoot)
	assert.True(t, trivial)
	assert.Equal(t, []int{1}, component)
}

// TestTwoNodeCycleIsNonTrivial drives a DFS over 1 -> 2 -> 1 and checks
// that both land in one non-trivial component when 1 closes.
func TestTwoNodeCycleIsNonTrivial(t *testing.T) {
	tr := scc.New[int]()

	require.Equal(t, scc.Fresh, tr.Open(1))
	require.Equal(t, scc.Fresh, tr.Open(2))

	// 2 -> 1 is a back-edge: 1 is already open.
	status := tr.Open(1)
	require.Equal(t, scc.Open, status)
	tr.RelaxBackEdge(2, 1)

	component, trivial, isRoot := tr.Close(2)
	assert.False(t, isRoot) // 2 is not the component root
	assert.Nil(t, component)
	_ = trivial

	tr.RelaxChild(1, 2)
	component, trivial, isRoot = tr.Close(1)
	require.True(t, isRoot)
	assert.False(t, trivial)
	assert.ElementsMatch(t, []int{1, 2}, component)
}

// TestIndependentComponentsDoNotMerge checks that two separate DFS trees
// produce two separate singleton components.
func TestIndependentComponentsDoNotMerge(t *testing.T) {
	tr := scc.New[string]()

	require.Equal(t, scc.Fresh, tr.Open("a"))
	component, trivial, isRoot := tr.Close("a")
	require.True(t, isRoot)
	assert.True(t, trivial)
	assert.Equal(t, []string{"a"}, component)

	require.Equal(t, scc.Fresh, tr.Open("b"))
	component, trivial, isRoot = tr.Close("b")
	require.True(t, isRoot)
	assert.True(t, trivial)
	assert.Equal(t, []string{"b"}, component)
}
