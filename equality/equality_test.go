package equality_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stg-tools/stg/equality"
	"github.com/stg-tools/stg/graph"
)

func TestReflexivity(t *testing.T) {
	g := graph.New()
	id := graph.Add(g, graph.Primitive{Name: "int", Bytesize: 4})

	c := equality.NewComparator(g, g, equality.NewSimpleEqualityCache())
	eq, err := c.Equals(id, id)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestSymmetry(t *testing.T) {
	g := graph.New()
	a := graph.Add(g, graph.Primitive{Name: "int", Bytesize: 4})
	b := graph.Add(g, graph.Primitive{Name: "int", Bytesize: 4})

	c1 := equality.NewComparator(g, g, equality.NewSimpleEqualityCache())
	eqAB, err := c1.Equals(a, b)
	require.NoError(t, err)

	c2 := equality.NewComparator(g, g, equality.NewSimpleEqualityCache())
	eqBA, err := c2.Equals(b, a)
	require.NoError(t, err)

	assert.Equal(t, eqAB, eqBA)
	assert.True(t, eqAB)
}

func TestUnequalPrimitives(t *testing.T) {
	g := graph.New()
	a := graph.Add(g, graph.Primitive{Name: "int", Bytesize: 4})
	b := graph.Add(g, graph.Primitive{Name: "long", Bytesize: 8})

	c := equality.NewComparator(g, g, equality.NewSimpleEqualityCache())
	eq, err := c.Equals(a, b)
	require.NoError(t, err)
	assert.False(t, eq)
}

// TestCycleToleranceSelfReferentialLinkedListNode builds two separate,
// structurally identical self-referential "linked list node" shapes
// (an anonymous struct with a pointer-typed member back to itself) and
// checks they compare equal despite the cycle.
func TestCycleToleranceSelfReferentialLinkedListNode(t *testing.T) {
	build := func() (*graph.Graph, graph.Id) {
		g := graph.New()
		su := g.Allocate()
		ptr := graph.Add(g, graph.PointerReference{Kind: graph.Pointer, Pointee: su})
		member := graph.Add(g, graph.Member{Name: "next", Type: ptr})
		require.NoError(t, graph.Set(g, su, graph.StructUnion{
			Kind: graph.Struct,
			Definition: &graph.StructUnionDefinition{
				Bytesize: 8,
				Members:  []graph.Id{member},
			},
		}))
		return g, su
	}

	g1, su1 := build()
	g2, su2 := build()

	c := equality.NewComparator(g1, g2, equality.NewSimpleEqualityCache())
	eq, err := c.Equals(su1, su2)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestHashEqualityCacheShortCircuitsOnHashMismatch(t *testing.T) {
	left := map[graph.Id]uint32{1: 111}
	right := map[graph.Id]uint32{1: 222}
	cache := equality.NewHashEqualityCache(left, right)

	known, equal := cache.Query(1, 1)
	assert.True(t, known)
	assert.False(t, equal)
}

func TestHashEqualityCacheUnionImpliesEqual(t *testing.T) {
	cache := equality.NewHashEqualityCache(nil, nil)
	cache.AllSame([]equality.Pair{{Left: 5, Right: 9}})
	known, equal := cache.Query(5, 9)
	assert.True(t, known)
	assert.True(t, equal)
}
