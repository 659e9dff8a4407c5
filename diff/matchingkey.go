package diff

import "github.com/stg-tools/stg/graph"

// MatchingKey returns the string used to pair up id with its counterpart
// in a sibling multiset (struct base classes, members, methods). Most
// variants have no matching key of their own (empty string); a BaseClass
// or anonymous Member defer to their type's key, a Method keys on
// name+mangled name, and a StructUnion keys on its own name, or failing
// that, the first non-empty key among its members with a trailing "+" to
// mark the key as "derived from an anonymous aggregate".
func MatchingKey(g *graph.Graph, id graph.Id) string {
	switch v := g.Get(id).(type) {
	case graph.BaseClass:
		return MatchingKey(g, v.Type)
	case graph.Member:
		if v.Name != "" {
			return v.Name
		}
		return MatchingKey(g, v.Type)
	case graph.Method:
		return v.Name + "," + v.MangledName
	case graph.StructUnion:
		if v.Name != "" {
			return v.Name
		}
		if v.Definition != nil {
			for _, member := range v.Definition.Members {
				if key := MatchingKey(g, member); key != "" {
					return key + "+"
				}
			}
		}
		return ""
	default:
		return ""
	}
}

// ResolveQualifiers peels off a chain of Qualified wrappers, returning the
// unqualified id and the set of qualifiers seen. Encountering an Array or
// Function while peeling discards any qualifiers accumulated so far —
// qualifiers should never appear directly above either, so this is
// defensive, matching the reference ResolveQualifier's Array/Function
// overloads.
func ResolveQualifiers(g *graph.Graph, id graph.Id) (graph.Id, map[graph.Qualifier]bool) {
	quals := map[graph.Qualifier]bool{}
	for {
		switch v := g.Get(id).(type) {
		case graph.Qualified:
			quals[v.Qualifier] = true
			id = v.QualifiedType
		case graph.Array:
			return id, map[graph.Qualifier]bool{}
		case graph.Function:
			return id, map[graph.Qualifier]bool{}
		default:
			return id, quals
		}
	}
}

// ResolveTypedefs peels off a chain of Typedef wrappers, returning the
// underlying id and the sequence of typedef names seen, outermost first.
func ResolveTypedefs(g *graph.Graph, id graph.Id) (graph.Id, []string) {
	var names []string
	for {
		td, ok := g.Get(id).(graph.Typedef)
		if !ok {
			return id, names
		}
		names = append(names, td.Name)
		id = td.ReferredType
	}
}
