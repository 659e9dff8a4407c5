package dedup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stg-tools/stg/dedup"
	"github.com/stg-tools/stg/fingerprint"
	"github.com/stg-tools/stg/graph"
)

// buildDuplicateStructs builds two structurally identical definitions of
// struct Point, plus a pointer to each reached through its own entry
// ("p1", "p2") in the interface's type map, so the test can check that both
// entries end up referencing the surviving representative.
func buildDuplicateStructs(t *testing.T) (*graph.Graph, graph.Id, graph.Id, graph.Id, graph.Id, graph.Id) {
	t.Helper()
	g := graph.New()

	int1 := graph.Add(g, graph.Primitive{Name: "int", Bytesize: 4})
	member1 := graph.Add(g, graph.Member{Name: "x", Type: int1})
	dup1 := graph.Add(g, graph.StructUnion{
		Kind: graph.Struct, Name: "Point",
		Definition: &graph.StructUnionDefinition{Bytesize: 4, Members: []graph.Id{member1}},
	})

	int2 := graph.Add(g, graph.Primitive{Name: "int", Bytesize: 4})
	member2 := graph.Add(g, graph.Member{Name: "x", Type: int2})
	dup2 := graph.Add(g, graph.StructUnion{
		Kind: graph.Struct, Name: "Point",
		Definition: &graph.StructUnionDefinition{Bytesize: 4, Members: []graph.Id{member2}},
	})

	ptr1 := graph.Add(g, graph.PointerReference{Kind: graph.Pointer, Pointee: dup1})
	ptr2 := graph.Add(g, graph.PointerReference{Kind: graph.Pointer, Pointee: dup2})

	types := graph.NewOrderedMap()
	types.Set("p1", ptr1)
	types.Set("p2", ptr2)
	iface := graph.Add(g, graph.Interface{Symbols: graph.NewOrderedMap(), Types: types})
	g.SetRoot(iface)

	return g, iface, dup1, dup2, ptr1, ptr2
}

func TestDeduplicateCollapsesStructurallyEqualNodes(t *testing.T) {
	g, iface, dup1, dup2, ptr1, ptr2 := buildDuplicateStructs(t)

	hashes, err := fingerprint.Fingerprint(g, iface)
	require.NoError(t, err)

	newRoot, err := dedup.Deduplicate(g, iface, hashes, nil)
	require.NoError(t, err)
	assert.Equal(t, iface, newRoot)

	set1, set2 := g.Is(dup1), g.Is(dup2)
	assert.True(t, set1 != set2, "exactly one of the two duplicate definitions should survive")

	// The two pointers are structurally equal too, so one of them is merged
	// away; read them back through the interface's rewritten type map.
	assert.True(t, g.Is(ptr1) != g.Is(ptr2), "exactly one of the two equal pointers should survive")
	types := g.Get(iface).(graph.Interface).Types
	id1, _ := types.Get("p1")
	id2, _ := types.Get("p2")
	p1 := g.Get(id1).(graph.PointerReference)
	p2 := g.Get(id2).(graph.PointerReference)
	assert.Equal(t, p1.Pointee, p2.Pointee, "both pointers should now reference the same surviving representative")
}

func TestDeduplicateIsIdempotent(t *testing.T) {
	g, iface, _, _, _, _ := buildDuplicateStructs(t)

	hashes1, err := fingerprint.Fingerprint(g, iface)
	require.NoError(t, err)
	root1, err := dedup.Deduplicate(g, iface, hashes1, nil)
	require.NoError(t, err)

	hashes2, err := fingerprint.Fingerprint(g, root1)
	require.NoError(t, err)
	root2, err := dedup.Deduplicate(g, root1, hashes2, nil)
	require.NoError(t, err)

	assert.Equal(t, root1, root2)
}

func TestDeduplicatePreservesDistinctTypes(t *testing.T) {
	g := graph.New()

	int1 := graph.Add(g, graph.Primitive{Name: "int", Bytesize: 4})
	member1 := graph.Add(g, graph.Member{Name: "x", Type: int1})
	s1 := graph.Add(g, graph.StructUnion{
		Kind: graph.Struct, Name: "A",
		Definition: &graph.StructUnionDefinition{Bytesize: 4, Members: []graph.Id{member1}},
	})

	int2 := graph.Add(g, graph.Primitive{Name: "long", Bytesize: 8})
	member2 := graph.Add(g, graph.Member{Name: "y", Type: int2})
	s2 := graph.Add(g, graph.StructUnion{
		Kind: graph.Struct, Name: "B",
		Definition: &graph.StructUnionDefinition{Bytesize: 8, Members: []graph.Id{member2}},
	})

	types := graph.NewOrderedMap()
	types.Set("A", s1)
	types.Set("B", s2)
	iface := graph.Add(g, graph.Interface{Symbols: graph.NewOrderedMap(), Types: types})
	g.SetRoot(iface)

	hashes, err := fingerprint.Fingerprint(g, iface)
	require.NoError(t, err)

	newRoot, err := dedup.Deduplicate(g, iface, hashes, nil)
	require.NoError(t, err)
	assert.Equal(t, iface, newRoot)
	assert.True(t, g.Is(s1))
	assert.True(t, g.Is(s2))
}
