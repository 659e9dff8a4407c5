// Package subst implements the single-node id-rewrite walker used by the
// type resolver and deduplicator to mass-rewrite references after they
// merge ids via union-find.
package subst

import "github.com/stg-tools/stg/graph"

// Remap returns the canonical replacement for id (or id itself, if id is
// already canonical). Implementations are typically backed by a
// union-find's Find.
type Remap func(graph.Id) graph.Id

// Walk visits exactly one node — the one currently held at id — and
// applies remap to every outgoing Id it holds (scalar, slice, and ordered
// map references), then writes the rewritten node back under the same id
// itself (Unset followed by Set), since Graph nodes are plain values, not
// pointers.
//
// Walk does not recurse: callers that want to rewrite an entire reachable
// set call Walk once per visited node (see resolve and dedup).
func Walk(g *graph.Graph, id graph.Id, remap Remap) error {
	n := g.Get(id)
	rewritten, err := rewrite(n, remap)
	if err != nil {
		return err
	}
	return setNode(g, id, rewritten)
}

// UpdateID applies remap to a single Id in place.
func UpdateID(id *graph.Id, remap Remap) {
	*id = remap(*id)
}

// UpdateIDs applies remap to every Id in a slice, in place.
func UpdateIDs(ids []graph.Id, remap Remap) {
	for i := range ids {
		ids[i] = remap(ids[i])
	}
}

// UpdateOrderedMap applies remap to every value in an ordered map,
// preserving key order.
func UpdateOrderedMap(m *graph.OrderedMap, remap Remap) {
	for _, k := range m.Keys() {
		id, _ := m.Get(k)
		m.Set(k, remap(id))
	}
}

func rewrite(n graph.Node, remap Remap) (graph.Node, error) {
	switch v := n.(type) {
	case graph.Void:
		return v, nil
	case graph.Variadic:
		return v, nil
	case graph.PointerReference:
		UpdateID(&v.Pointee, remap)
		return v, nil
	case graph.PointerToMember:
		// The reference substitution visitor this engine was ported from
		// omits PointerToMember; both edges must be rewritten here for
		// resolve/dedup correctness since pointer-to-member types can
		// reference forward-declared or deduplicated classes on either edge.
		UpdateID(&v.ContainingType, remap)
		UpdateID(&v.PointeeType, remap)
		return v, nil
	case graph.Typedef:
		UpdateID(&v.ReferredType, remap)
		return v, nil
	case graph.Qualified:
		UpdateID(&v.QualifiedType, remap)
		return v, nil
	case graph.Primitive:
		return v, nil
	case graph.Array:
		UpdateID(&v.ElementType, remap)
		return v, nil
	case graph.BaseClass:
		UpdateID(&v.Type, remap)
		return v, nil
	case graph.Method:
		UpdateID(&v.Type, remap)
		return v, nil
	case graph.Member:
		UpdateID(&v.Type, remap)
		return v, nil
	case graph.StructUnion:
		if v.Definition != nil {
			def := *v.Definition
			def.BaseClasses = append([]graph.Id(nil), def.BaseClasses...)
			def.Methods = append([]graph.Id(nil), def.Methods...)
			def.Members = append([]graph.Id(nil), def.Members...)
			UpdateIDs(def.BaseClasses, remap)
			UpdateIDs(def.Methods, remap)
			UpdateIDs(def.Members, remap)
			v.Definition = &def
		}
		return v, nil
	case graph.Enumeration:
		if v.Definition != nil {
			def := *v.Definition
			UpdateID(&def.UnderlyingType, remap)
			v.Definition = &def
		}
		return v, nil
	case graph.Function:
		UpdateID(&v.ReturnType, remap)
		v.Parameters = append([]graph.Id(nil), v.Parameters...)
		UpdateIDs(v.Parameters, remap)
		return v, nil
	case graph.ElfSymbol:
		if v.Type != graph.None {
			UpdateID(&v.Type, remap)
		}
		return v, nil
	case graph.Interface:
		v.Symbols = v.Symbols.Clone()
		v.Types = v.Types.Clone()
		UpdateOrderedMap(v.Symbols, remap)
		UpdateOrderedMap(v.Types, remap)
		return v, nil
	default:
		return n, nil
	}
}

// setNode re-sets id's node after rewriting. Since Walk operates on a node
// that is already SET, it must Unset then Set to satisfy the graph's
// set-on-set invariant.
func setNode(g *graph.Graph, id graph.Id, n graph.Node) error {
	if err := g.Unset(id); err != nil {
		return err
	}
	return setTyped(g, id, n)
}

// setTyped dispatches to the generic graph.Set instantiation matching n's
// dynamic type. A type switch is required here because graph.Set is
// generic over the concrete Node variant, not over the Node interface.
func setTyped(g *graph.Graph, id graph.Id, n graph.Node) error {
	switch v := n.(type) {
	case graph.Void:
		return graph.Set(g, id, v)
	case graph.Variadic:
		return graph.Set(g, id, v)
	case graph.PointerReference:
		return graph.Set(g, id, v)
	case graph.PointerToMember:
		return graph.Set(g, id, v)
	case graph.Typedef:
		return graph.Set(g, id, v)
	case graph.Qualified:
		return graph.Set(g, id, v)
	case graph.Primitive:
		return graph.Set(g, id, v)
	case graph.Array:
		return graph.Set(g, id, v)
	case graph.BaseClass:
		return graph.Set(g, id, v)
	case graph.Method:
		return graph.Set(g, id, v)
	case graph.Member:
		return graph.Set(g, id, v)
	case graph.StructUnion:
		return graph.Set(g, id, v)
	case graph.Enumeration:
		return graph.Set(g, id, v)
	case graph.Function:
		return graph.Set(g, id, v)
	case graph.ElfSymbol:
		return graph.Set(g, id, v)
	case graph.Interface:
		return graph.Set(g, id, v)
	default:
		panic("subst: unrecognised node variant")
	}
}
