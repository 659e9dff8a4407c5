package graph

// SetNode is Set without static knowledge of which variant n holds, for
// callers that copy or rebuild nodes generically (the wire codec's
// decoder and renumbering pass). It dispatches to the right Set[V]
// instantiation by dynamic type; an unrecognised variant is a programmer
// error in the caller, not an input error.
func SetNode(g *Graph, id Id, n Node) error {
	switch v := n.(type) {
	case Void:
		return Set(g, id, v)
	case Variadic:
		return Set(g, id, v)
	case PointerReference:
		return Set(g, id, v)
	case PointerToMember:
		return Set(g, id, v)
	case Typedef:
		return Set(g, id, v)
	case Qualified:
		return Set(g, id, v)
	case Primitive:
		return Set(g, id, v)
	case Array:
		return Set(g, id, v)
	case BaseClass:
		return Set(g, id, v)
	case Method:
		return Set(g, id, v)
	case Member:
		return Set(g, id, v)
	case StructUnion:
		return Set(g, id, v)
	case Enumeration:
		return Set(g, id, v)
	case Function:
		return Set(g, id, v)
	case ElfSymbol:
		return Set(g, id, v)
	case Interface:
		return Set(g, id, v)
	default:
		violate("SetNode", id, "unrecognised node variant")
		return nil
	}
}
