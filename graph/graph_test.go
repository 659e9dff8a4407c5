package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stg-tools/stg/graph"
)

func TestSetUnsetLifecycle(t *testing.T) {
	g := graph.New()
	id := g.Allocate()
	require.False(t, g.Is(id))

	require.NoError(t, graph.Set(g, id, graph.Void{}))
	assert.True(t, g.Is(id))

	require.NoError(t, g.Unset(id))
	assert.False(t, g.Is(id))
}

func TestSetOnSetPanics(t *testing.T) {
	g := graph.New()
	id := graph.Add(g, graph.Void{})
	assert.Panics(t, func() {
		_ = graph.Set(g, id, graph.Void{})
	})
}

func TestUnsetOnAbsentPanics(t *testing.T) {
	g := graph.New()
	id := g.Allocate()
	assert.Panics(t, func() {
		_ = g.Unset(id)
	})
}

func TestApplyOnAbsentPanics(t *testing.T) {
	g := graph.New()
	id := g.Allocate()
	assert.Panics(t, func() {
		_, _ = graph.Apply[int](g, id, countingVisitor{})
	})
}

func TestApply2MismatchCallsOnlyMismatch(t *testing.T) {
	g := graph.New()
	voidId := graph.Add(g, graph.Void{})
	variadicId := graph.Add(g, graph.Variadic{})

	v := &mismatchTrackingVisitor{}
	result, err := graph.Apply2[string](g, voidId, variadicId, v)
	require.NoError(t, err)
	assert.Equal(t, "mismatch", result)
	assert.Equal(t, 1, v.mismatchCalls)
	assert.Equal(t, 0, v.otherCalls)
}

func TestForEachDeterministicOrder(t *testing.T) {
	g := graph.New()
	var ids []graph.Id
	for i := 0; i < 5; i++ {
		ids = append(ids, graph.Add(g, graph.Void{}))
	}

	var seen []graph.Id
	require.NoError(t, g.ForEach(func(id graph.Id) error {
		seen = append(seen, id)
		return nil
	}))
	assert.Equal(t, ids, seen)
}

func TestDenseIdSetAndMapping(t *testing.T) {
	s := graph.NewDenseIdSet(0)
	s.Add(graph.Id(7))
	assert.True(t, s.Has(graph.Id(7)))
	assert.False(t, s.Has(graph.Id(3)))
	s.Remove(graph.Id(7))
	assert.False(t, s.Has(graph.Id(7)))

	m := graph.NewDenseIdMapping[string](0)
	m.Set(graph.Id(2), "x")
	v, ok := m.Get(graph.Id(2))
	require.True(t, ok)
	assert.Equal(t, "x", v)
	_, ok = m.Get(graph.Id(99))
	assert.False(t, ok)
}

func TestOrderedMapPreservesInsertionOrder(t *testing.T) {
	m := graph.NewOrderedMap()
	m.Set("b", graph.Id(2))
	m.Set("a", graph.Id(1))
	m.Set("b", graph.Id(20)) // update, not reorder
	assert.Equal(t, []string{"b", "a"}, m.Keys())
	id, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, graph.Id(20), id)
}

// countingVisitor implements graph.Visitor[int], returning 1 for every variant.
type countingVisitor struct{}

func (countingVisitor) VisitVoid(graph.Id, graph.Void) (int, error)                             { return 1, nil }
func (countingVisitor) VisitVariadic(graph.Id, graph.Variadic) (int, error)                     { return 1, nil }
func (countingVisitor) VisitPointerReference(graph.Id, graph.PointerReference) (int, error)      { return 1, nil }
func (countingVisitor) VisitPointerToMember(graph.Id, graph.PointerToMember) (int, error)        { return 1, nil }
func (countingVisitor) VisitTypedef(graph.Id, graph.Typedef) (int, error)                       { return 1, nil }
func (countingVisitor) VisitQualified(graph.Id, graph.Qualified) (int, error)                   { return 1, nil }
func (countingVisitor) VisitPrimitive(graph.Id, graph.Primitive) (int, error)                   { return 1, nil }
func (countingVisitor) VisitArray(graph.Id, graph.Array) (int, error)                           { return 1, nil }
func (countingVisitor) VisitBaseClass(graph.Id, graph.BaseClass) (int, error)                   { return 1, nil }
func (countingVisitor) VisitMethod(graph.Id, graph.Method) (int, error)                         { return 1, nil }
func (countingVisitor) VisitMember(graph.Id, graph.Member) (int, error)                         { return 1, nil }
func (countingVisitor) VisitStructUnion(graph.Id, graph.StructUnion) (int, error)                { return 1, nil }
func (countingVisitor) VisitEnumeration(graph.Id, graph.Enumeration) (int, error)                { return 1, nil }
func (countingVisitor) VisitFunction(graph.Id, graph.Function) (int, error)                      { return 1, nil }
func (countingVisitor) VisitElfSymbol(graph.Id, graph.ElfSymbol) (int, error)                    { return 1, nil }
func (countingVisitor) VisitInterface(graph.Id, graph.Interface) (int, error)                    { return 1, nil }

// mismatchTrackingVisitor implements graph.Visitor2[string], counting calls.
type mismatchTrackingVisitor struct {
	mismatchCalls int
	otherCalls    int
}

func (v *mismatchTrackingVisitor) Mismatch(graph.Id, graph.Id) (string, error) {
	v.mismatchCalls++
	return "mismatch", nil
}
func (v *mismatchTrackingVisitor) Void(graph.Id, graph.Id, graph.Void, graph.Void) (string, error) {
	v.otherCalls++
	return "", nil
}
func (v *mismatchTrackingVisitor) Variadic(graph.Id, graph.Id, graph.Variadic, graph.Variadic) (string, error) {
	v.otherCalls++
	return "", nil
}
func (v *mismatchTrackingVisitor) PointerReference(graph.Id, graph.Id, graph.PointerReference, graph.PointerReference) (string, error) {
	v.otherCalls++
	return "", nil
}
func (v *mismatchTrackingVisitor) PointerToMember(graph.Id, graph.Id, graph.PointerToMember, graph.PointerToMember) (string, error) {
	v.otherCalls++
	return "", nil
}
func (v *mismatchTrackingVisitor) Typedef(graph.Id, graph.Id, graph.Typedef, graph.Typedef) (string, error) {
	v.otherCalls++
	return "", nil
}
func (v *mismatchTrackingVisitor) Qualified(graph.Id, graph.Id, graph.Qualified, graph.Qualified) (string, error) {
	v.otherCalls++
	return "", nil
}
func (v *mismatchTrackingVisitor) Primitive(graph.Id, graph.Id, graph.Primitive, graph.Primitive) (string, error) {
	v.otherCalls++
	return "", nil
}
func (v *mismatchTrackingVisitor) Array(graph.Id, graph.Id, graph.Array, graph.Array) (string, error) {
	v.otherCalls++
	return "", nil
}
func (v *mismatchTrackingVisitor) BaseClass(graph.Id, graph.Id, graph.BaseClass, graph.BaseClass) (string, error) {
	v.otherCalls++
	return "", nil
}
func (v *mismatchTrackingVisitor) Method(graph.Id, graph.Id, graph.Method, graph.Method) (string, error) {
	v.otherCalls++
	return "", nil
}
func (v *mismatchTrackingVisitor) Member(graph.Id, graph.Id, graph.Member, graph.Member) (string, error) {
	v.otherCalls++
	return "", nil
}
func (v *mismatchTrackingVisitor) StructUnion(graph.Id, graph.Id, graph.StructUnion, graph.StructUnion) (string, error) {
	v.otherCalls++
	return "", nil
}
func (v *mismatchTrackingVisitor) Enumeration(graph.Id, graph.Id, graph.Enumeration, graph.Enumeration) (string, error) {
	v.otherCalls++
	return "", nil
}
func (v *mismatchTrackingVisitor) Function(graph.Id, graph.Id, graph.Function, graph.Function) (string, error) {
	v.otherCalls++
	return "", nil
}
func (v *mismatchTrackingVisitor) ElfSymbol(graph.Id, graph.Id, graph.ElfSymbol, graph.ElfSymbol) (string, error) {
	v.otherCalls++
	return "", nil
}
func (v *mismatchTrackingVisitor) Interface(graph.Id, graph.Id, graph.Interface, graph.Interface) (string, error) {
	v.otherCalls++
	return "", nil
}
