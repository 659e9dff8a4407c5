package unify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stg-tools/stg/equality"
	"github.com/stg-tools/stg/graph"
	"github.com/stg-tools/stg/unify"
)

func TestUnifyForwardDeclarationWithDefinition(t *testing.T) {
	g := graph.New()
	decl := graph.Add(g, graph.StructUnion{Kind: graph.Struct, Name: "S"})
	intType := graph.Add(g, graph.Primitive{Name: "int", Bytesize: 4})
	member := graph.Add(g, graph.Member{Name: "x", Type: intType})
	def := graph.Add(g, graph.StructUnion{
		Kind: graph.Struct, Name: "S",
		Definition: &graph.StructUnionDefinition{Bytesize: 4, Members: []graph.Id{member}},
	})

	eq := equality.NewComparator(g, g, equality.NewSimpleEqualityCache())
	mapping, ok, err := unify.Unify(g, eq, decl, def)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, mapping, 1)
	assert.Equal(t, def, mapping[0].Keep)
	assert.Equal(t, decl, mapping[0].Drop)
}

func TestUnifyConflictingDefinitionsFails(t *testing.T) {
	g := graph.New()
	int1 := graph.Add(g, graph.Primitive{Name: "int", Bytesize: 4})
	int2 := graph.Add(g, graph.Primitive{Name: "long", Bytesize: 8})
	member1 := graph.Add(g, graph.Member{Name: "x", Type: int1})
	member2 := graph.Add(g, graph.Member{Name: "x", Type: int2})

	def1 := graph.Add(g, graph.StructUnion{Kind: graph.Struct, Name: "S", Definition: &graph.StructUnionDefinition{Bytesize: 4, Members: []graph.Id{member1}}})
	def2 := graph.Add(g, graph.StructUnion{Kind: graph.Struct, Name: "S", Definition: &graph.StructUnionDefinition{Bytesize: 8, Members: []graph.Id{member2}}})

	eq := equality.NewComparator(g, g, equality.NewSimpleEqualityCache())
	_, ok, err := unify.Unify(g, eq, def1, def2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnionFindPathHalvingAndCommit(t *testing.T) {
	uf := unify.New()
	uf.Union(graph.Id(1), graph.Id(2))
	uf.Union(graph.Id(1), graph.Id(3))
	assert.Equal(t, graph.Id(1), uf.Find(graph.Id(2)))
	assert.Equal(t, graph.Id(1), uf.Find(graph.Id(3)))

	uf2 := unify.New()
	uf2.Commit(unify.Mapping{{Keep: graph.Id(9), Drop: graph.Id(8)}})
	assert.Equal(t, graph.Id(9), uf2.Find(graph.Id(8)))
}
