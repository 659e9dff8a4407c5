package subst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stg-tools/stg/graph"
	"github.com/stg-tools/stg/subst"
)

func TestWalkRewritesPointerReference(t *testing.T) {
	g := graph.New()
	oldTarget := graph.Add(g, graph.Void{})
	newTarget := graph.Add(g, graph.Void{})
	ptr := graph.Add(g, graph.PointerReference{Kind: graph.Pointer, Pointee: oldTarget})

	remap := func(id graph.Id) graph.Id {
		if id == oldTarget {
			return newTarget
		}
		return id
	}
	require.NoError(t, subst.Walk(g, ptr, remap))

	rewritten := g.Get(ptr).(graph.PointerReference)
	assert.Equal(t, newTarget, rewritten.Pointee)
}

func TestWalkRewritesPointerToMemberBothEdges(t *testing.T) {
	g := graph.New()
	oldClass := graph.Add(g, graph.StructUnion{Kind: graph.Struct, Name: "C"})
	newClass := graph.Add(g, graph.StructUnion{Kind: graph.Struct, Name: "C"})
	oldMemberType := graph.Add(g, graph.Primitive{Name: "int", Bytesize: 4})
	newMemberType := graph.Add(g, graph.Primitive{Name: "int", Bytesize: 4})

	ptm := graph.Add(g, graph.PointerToMember{ContainingType: oldClass, PointeeType: oldMemberType})

	remap := func(id graph.Id) graph.Id {
		switch id {
		case oldClass:
			return newClass
		case oldMemberType:
			return newMemberType
		default:
			return id
		}
	}
	require.NoError(t, subst.Walk(g, ptm, remap))

	rewritten := g.Get(ptm).(graph.PointerToMember)
	assert.Equal(t, newClass, rewritten.ContainingType)
	assert.Equal(t, newMemberType, rewritten.PointeeType)
}

func TestWalkRewritesInterfaceOrderedMaps(t *testing.T) {
	g := graph.New()
	oldSym := graph.Add(g, graph.ElfSymbol{SymbolName: "foo"})
	newSym := graph.Add(g, graph.ElfSymbol{SymbolName: "foo"})

	symbols := graph.NewOrderedMap()
	symbols.Set("foo", oldSym)
	iface := graph.Add(g, graph.Interface{Symbols: symbols, Types: graph.NewOrderedMap()})

	remap := func(id graph.Id) graph.Id {
		if id == oldSym {
			return newSym
		}
		return id
	}
	require.NoError(t, subst.Walk(g, iface, remap))

	rewritten := g.Get(iface).(graph.Interface)
	got, ok := rewritten.Symbols.Get("foo")
	require.True(t, ok)
	assert.Equal(t, newSym, got)
}

func TestWalkRewritesStructUnionDefinitionSlices(t *testing.T) {
	g := graph.New()
	oldMember := graph.Add(g, graph.Primitive{Name: "int", Bytesize: 4})
	newMember := graph.Add(g, graph.Primitive{Name: "int", Bytesize: 4})
	memberField := graph.Add(g, graph.Member{Name: "x", Type: oldMember})

	su := graph.Add(g, graph.StructUnion{
		Kind: graph.Struct,
		Name: "S",
		Definition: &graph.StructUnionDefinition{
			Bytesize: 4,
			Members:  []graph.Id{memberField},
		},
	})

	remap := func(id graph.Id) graph.Id {
		if id == oldMember {
			return newMember
		}
		return id
	}
	// Rewriting su itself only rewrites the Members slice (ids), not the
	// nested Member node's own Type, which is a separate node visited on
	// its own Walk call by the driving pass.
	require.NoError(t, subst.Walk(g, su, remap))
	rewritten := g.Get(su).(graph.StructUnion)
	assert.Equal(t, []graph.Id{memberField}, rewritten.Definition.Members)
}
