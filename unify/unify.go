package unify

import (
	"github.com/stg-tools/stg/equality"
	"github.com/stg-tools/stg/graph"
)

// Unify attempts to unify a and b, both ids in g, producing a candidate
// Mapping rather than a plain bool: unification is equality that returns
// a substitution instead of a verdict.
//
// StructUnion and Enumeration are unifiable if their kind (StructUnion
// only) and name match, and either side lacks a definition, or both
// definitions are structurally equal (per eq, an equality.Comparator with
// Left == Right == g). When both sides are defined, the defined side
// that is unifiable is retained and the other mapped onto it; when one
// side is undefined, the defined side (if any) is retained.
//
// Any other variant pair (or a name/kind mismatch) is not unifiable by
// this mechanism and returns ok == false.
func Unify(g *graph.Graph, eq *equality.Comparator, a, b graph.Id) (Mapping, bool, error) {
	na, nb := g.Get(a), g.Get(b)

	switch x := na.(type) {
	case graph.StructUnion:
		y, ok := nb.(graph.StructUnion)
		if !ok || x.Kind != y.Kind || x.Name != y.Name {
			return nil, false, nil
		}
		return unifyDefinedness(eq, a, b, x.Definition != nil, y.Definition != nil)

	case graph.Enumeration:
		y, ok := nb.(graph.Enumeration)
		if !ok || x.Name != y.Name {
			return nil, false, nil
		}
		return unifyDefinedness(eq, a, b, x.Definition != nil, y.Definition != nil)

	default:
		return nil, false, nil
	}
}

func unifyDefinedness(eq *equality.Comparator, a, b graph.Id, aDefined, bDefined bool) (Mapping, bool, error) {
	switch {
	case aDefined && bDefined:
		equal, err := eq.Equals(a, b)
		if err != nil {
			return nil, false, err
		}
		if !equal {
			return nil, false, nil
		}
		return Mapping{{Keep: a, Drop: b}}, true, nil
	case aDefined && !bDefined:
		return Mapping{{Keep: a, Drop: b}}, true, nil
	case !aDefined && bDefined:
		return Mapping{{Keep: b, Drop: a}}, true, nil
	default:
		// Neither side is defined: both are forward declarations of the
		// same (kind, name); either can represent the pair, so keep a.
		return Mapping{{Keep: a, Drop: b}}, true, nil
	}
}
