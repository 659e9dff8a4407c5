package graph

// Edges returns every outgoing Id reference held directly by n (not
// recursively), in a stable order. None (the "no reference" sentinel) is
// never included. This is the read-only counterpart to subst's in-place
// rewrite: callers that need to traverse reachability (Reachable, the
// wire codec's renumbering pass) use Edges rather than duplicating a
// second copy of the per-variant field list.
func Edges(n Node) []Id {
	var out []Id
	add := func(id Id) {
		if id != None {
			out = append(out, id)
		}
	}
	switch v := n.(type) {
	case Void, Variadic, Primitive:
		// no edges
	case PointerReference:
		add(v.Pointee)
	case PointerToMember:
		add(v.ContainingType)
		add(v.PointeeType)
	case Typedef:
		add(v.ReferredType)
	case Qualified:
		add(v.QualifiedType)
	case Array:
		add(v.ElementType)
	case BaseClass:
		add(v.Type)
	case Method:
		add(v.Type)
	case Member:
		add(v.Type)
	case StructUnion:
		if v.Definition != nil {
			for _, id := range v.Definition.BaseClasses {
				add(id)
			}
			for _, id := range v.Definition.Methods {
				add(id)
			}
			for _, id := range v.Definition.Members {
				add(id)
			}
		}
	case Enumeration:
		if v.Definition != nil {
			add(v.Definition.UnderlyingType)
		}
	case Function:
		add(v.ReturnType)
		for _, id := range v.Parameters {
			add(id)
		}
	case ElfSymbol:
		add(v.Type)
	case Interface:
		for _, k := range v.Symbols.Keys() {
			id, _ := v.Symbols.Get(k)
			add(id)
		}
		for _, k := range v.Types.Keys() {
			id, _ := v.Types.Get(k)
			add(id)
		}
	}
	return out
}

// Reachable returns every id reachable from root (including root itself),
// in first-visit DFS order, following Edges. Cycles are handled by the
// visited set; this never recurses through an already-visited id.
func Reachable(g *Graph, root Id) []Id {
	visited := NewDenseIdSet(g.MaxId() + 1)
	var order []Id
	var visit func(Id)
	visit = func(id Id) {
		if id == None || visited.Has(id) || !g.Is(id) {
			return
		}
		visited.Add(id)
		order = append(order, id)
		for _, child := range Edges(g.Get(id)) {
			visit(child)
		}
	}
	visit(root)
	return order
}
