package wire

import (
	"github.com/stg-tools/stg/graph"
)

// Renumber builds a fresh Graph containing every id reachable from root,
// renumbered 1..N in BFS order. Two structurally-equal graphs built in
// different allocation orders renumber to identical id assignments, which
// is what makes Encode's output byte-for-byte reproducible.
//
// Root itself always renumbers to id 1.
func Renumber(g *graph.Graph, root graph.Id) (*graph.Graph, graph.Id) {
	order := bfsOrder(g, root)

	out := graph.New()
	oldToNew := make(map[graph.Id]graph.Id, len(order))
	for _, old := range order {
		oldToNew[old] = out.Allocate()
	}

	remap := func(id graph.Id) graph.Id {
		if id == graph.None {
			return graph.None
		}
		return oldToNew[id]
	}

	for _, old := range order {
		n := renumberNode(g.Get(old), remap)
		if err := graph.SetNode(out, oldToNew[old], n); err != nil {
			panic(err)
		}
	}

	newRoot := oldToNew[root]
	out.SetRoot(newRoot)
	return out, newRoot
}

// bfsOrder returns every id reachable from root, in first-visit BFS
// order (root first), following graph.Edges.
func bfsOrder(g *graph.Graph, root graph.Id) []graph.Id {
	if root == graph.None || !g.Is(root) {
		return nil
	}
	visited := graph.NewDenseIdSet(g.MaxId() + 1)
	var order []graph.Id
	queue := []graph.Id{root}
	visited.Add(root)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, child := range graph.Edges(g.Get(id)) {
			if !visited.Has(child) {
				visited.Add(child)
				queue = append(queue, child)
			}
		}
	}
	return order
}

// renumberNode returns a copy of n with every outgoing Id rewritten via
// remap. Grounded on subst's per-variant edge list (the read side of the
// same field inventory subst.Walk rewrites in place).
func renumberNode(n graph.Node, remap func(graph.Id) graph.Id) graph.Node {
	switch v := n.(type) {
	case graph.Void, graph.Variadic, graph.Primitive:
		return v
	case graph.PointerReference:
		v.Pointee = remap(v.Pointee)
		return v
	case graph.PointerToMember:
		v.ContainingType = remap(v.ContainingType)
		v.PointeeType = remap(v.PointeeType)
		return v
	case graph.Typedef:
		v.ReferredType = remap(v.ReferredType)
		return v
	case graph.Qualified:
		v.QualifiedType = remap(v.QualifiedType)
		return v
	case graph.Array:
		v.ElementType = remap(v.ElementType)
		return v
	case graph.BaseClass:
		v.Type = remap(v.Type)
		return v
	case graph.Method:
		v.Type = remap(v.Type)
		return v
	case graph.Member:
		v.Type = remap(v.Type)
		return v
	case graph.StructUnion:
		if v.Definition != nil {
			def := *v.Definition
			def.BaseClasses = remapIDs(def.BaseClasses, remap)
			def.Methods = remapIDs(def.Methods, remap)
			def.Members = remapIDs(def.Members, remap)
			v.Definition = &def
		}
		return v
	case graph.Enumeration:
		if v.Definition != nil {
			def := *v.Definition
			def.UnderlyingType = remap(def.UnderlyingType)
			v.Definition = &def
		}
		return v
	case graph.Function:
		v.ReturnType = remap(v.ReturnType)
		v.Parameters = remapIDs(v.Parameters, remap)
		return v
	case graph.ElfSymbol:
		v.Type = remap(v.Type)
		return v
	case graph.Interface:
		v.Symbols = remapOrderedMap(v.Symbols, remap)
		v.Types = remapOrderedMap(v.Types, remap)
		return v
	default:
		panic("wire: unrecognised node variant")
	}
}

func remapIDs(ids []graph.Id, remap func(graph.Id) graph.Id) []graph.Id {
	out := make([]graph.Id, len(ids))
	for i, id := range ids {
		out[i] = remap(id)
	}
	return out
}

func remapOrderedMap(m *graph.OrderedMap, remap func(graph.Id) graph.Id) *graph.OrderedMap {
	out := graph.NewOrderedMap()
	for _, k := range m.Keys() {
		id, _ := m.Get(k)
		out.Set(k, remap(id))
	}
	return out
}
