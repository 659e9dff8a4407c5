package graph

// Visitor is implemented by callers that dispatch on node variant through
// Apply (fingerprint's hasher; the other passes use their own type
// switches). Apply chooses the method matching the current variant of id.
type Visitor[R any] interface {
	VisitVoid(id Id, n Void) (R, error)
	VisitVariadic(id Id, n Variadic) (R, error)
	VisitPointerReference(id Id, n PointerReference) (R, error)
	VisitPointerToMember(id Id, n PointerToMember) (R, error)
	VisitTypedef(id Id, n Typedef) (R, error)
	VisitQualified(id Id, n Qualified) (R, error)
	VisitPrimitive(id Id, n Primitive) (R, error)
	VisitArray(id Id, n Array) (R, error)
	VisitBaseClass(id Id, n BaseClass) (R, error)
	VisitMethod(id Id, n Method) (R, error)
	VisitMember(id Id, n Member) (R, error)
	VisitStructUnion(id Id, n StructUnion) (R, error)
	VisitEnumeration(id Id, n Enumeration) (R, error)
	VisitFunction(id Id, n Function) (R, error)
	VisitElfSymbol(id Id, n ElfSymbol) (R, error)
	VisitInterface(id Id, n Interface) (R, error)
}

// Apply dispatches v's matching method for the current variant of id. It
// panics (a structural invariant violation) if id is not SET or the node
// is a variant this Graph version does not recognise.
func Apply[R any](g *Graph, id Id, v Visitor[R]) (R, error) {
	if g.stateOf(id) != stateSet {
		violate("Apply", id, "cannot dispatch over an unset id")
	}
	switch n := g.nodes[id].(type) {
	case Void:
		return v.VisitVoid(id, n)
	case Variadic:
		return v.VisitVariadic(id, n)
	case PointerReference:
		return v.VisitPointerReference(id, n)
	case PointerToMember:
		return v.VisitPointerToMember(id, n)
	case Typedef:
		return v.VisitTypedef(id, n)
	case Qualified:
		return v.VisitQualified(id, n)
	case Primitive:
		return v.VisitPrimitive(id, n)
	case Array:
		return v.VisitArray(id, n)
	case BaseClass:
		return v.VisitBaseClass(id, n)
	case Method:
		return v.VisitMethod(id, n)
	case Member:
		return v.VisitMember(id, n)
	case StructUnion:
		return v.VisitStructUnion(id, n)
	case Enumeration:
		return v.VisitEnumeration(id, n)
	case Function:
		return v.VisitFunction(id, n)
	case ElfSymbol:
		return v.VisitElfSymbol(id, n)
	case Interface:
		return v.VisitInterface(id, n)
	default:
		violate("Apply", id, "unrecognised node variant")
		panic("unreachable")
	}
}

// Visitor2 is implemented by callers that compare two ids of the same
// graph together (equality and diff compare across two graphs and use
// their own type switches instead). Apply2 dispatches to the homogeneous
// method when both ids hold the same variant, and to Mismatch otherwise.
type Visitor2[R any] interface {
	Mismatch(id1, id2 Id) (R, error)

	Void(id1, id2 Id, n1, n2 Void) (R, error)
	Variadic(id1, id2 Id, n1, n2 Variadic) (R, error)
	PointerReference(id1, id2 Id, n1, n2 PointerReference) (R, error)
	PointerToMember(id1, id2 Id, n1, n2 PointerToMember) (R, error)
	Typedef(id1, id2 Id, n1, n2 Typedef) (R, error)
	Qualified(id1, id2 Id, n1, n2 Qualified) (R, error)
	Primitive(id1, id2 Id, n1, n2 Primitive) (R, error)
	Array(id1, id2 Id, n1, n2 Array) (R, error)
	BaseClass(id1, id2 Id, n1, n2 BaseClass) (R, error)
	Method(id1, id2 Id, n1, n2 Method) (R, error)
	Member(id1, id2 Id, n1, n2 Member) (R, error)
	StructUnion(id1, id2 Id, n1, n2 StructUnion) (R, error)
	Enumeration(id1, id2 Id, n1, n2 Enumeration) (R, error)
	Function(id1, id2 Id, n1, n2 Function) (R, error)
	ElfSymbol(id1, id2 Id, n1, n2 ElfSymbol) (R, error)
	Interface(id1, id2 Id, n1, n2 Interface) (R, error)
}

// Apply2 dispatches v's matching homogeneous method when id1 and id2 hold
// the same variant, or v.Mismatch otherwise. It panics if either id is
// not SET.
func Apply2[R any](g *Graph, id1, id2 Id, v Visitor2[R]) (R, error) {
	if g.stateOf(id1) != stateSet {
		violate2("Apply2", id1, id2, "cannot dispatch over an unset id")
	}
	if g.stateOf(id2) != stateSet {
		violate2("Apply2", id1, id2, "cannot dispatch over an unset id")
	}
	n1, n2 := g.nodes[id1], g.nodes[id2]

	switch a := n1.(type) {
	case Void:
		if b, ok := n2.(Void); ok {
			return v.Void(id1, id2, a, b)
		}
	case Variadic:
		if b, ok := n2.(Variadic); ok {
			return v.Variadic(id1, id2, a, b)
		}
	case PointerReference:
		if b, ok := n2.(PointerReference); ok {
			return v.PointerReference(id1, id2, a, b)
		}
	case PointerToMember:
		if b, ok := n2.(PointerToMember); ok {
			return v.PointerToMember(id1, id2, a, b)
		}
	case Typedef:
		if b, ok := n2.(Typedef); ok {
			return v.Typedef(id1, id2, a, b)
		}
	case Qualified:
		if b, ok := n2.(Qualified); ok {
			return v.Qualified(id1, id2, a, b)
		}
	case Primitive:
		if b, ok := n2.(Primitive); ok {
			return v.Primitive(id1, id2, a, b)
		}
	case Array:
		if b, ok := n2.(Array); ok {
			return v.Array(id1, id2, a, b)
		}
	case BaseClass:
		if b, ok := n2.(BaseClass); ok {
			return v.BaseClass(id1, id2, a, b)
		}
	case Method:
		if b, ok := n2.(Method); ok {
			return v.Method(id1, id2, a, b)
		}
	case Member:
		if b, ok := n2.(Member); ok {
			return v.Member(id1, id2, a, b)
		}
	case StructUnion:
		if b, ok := n2.(StructUnion); ok {
			return v.StructUnion(id1, id2, a, b)
		}
	case Enumeration:
		if b, ok := n2.(Enumeration); ok {
			return v.Enumeration(id1, id2, a, b)
		}
	case Function:
		if b, ok := n2.(Function); ok {
			return v.Function(id1, id2, a, b)
		}
	case ElfSymbol:
		if b, ok := n2.(ElfSymbol); ok {
			return v.ElfSymbol(id1, id2, a, b)
		}
	case Interface:
		if b, ok := n2.(Interface); ok {
			return v.Interface(id1, id2, a, b)
		}
	default:
		violate2("Apply2", id1, id2, "unrecognised node variant")
	}
	return v.Mismatch(id1, id2)
}

// Variant returns a short tag name for n's variant, for diagnostics. (The
// per-variant seed fingerprint mixes in is its own Tag constant, not this
// name.)
func Variant(n Node) string {
	switch n.(type) {
	case Void:
		return "Void"
	case Variadic:
		return "Variadic"
	case PointerReference:
		return "PointerReference"
	case PointerToMember:
		return "PointerToMember"
	case Typedef:
		return "Typedef"
	case Qualified:
		return "Qualified"
	case Primitive:
		return "Primitive"
	case Array:
		return "Array"
	case BaseClass:
		return "BaseClass"
	case Method:
		return "Method"
	case Member:
		return "Member"
	case StructUnion:
		return "StructUnion"
	case Enumeration:
		return "Enumeration"
	case Function:
		return "Function"
	case ElfSymbol:
		return "ElfSymbol"
	case Interface:
		return "Interface"
	default:
		return "Unknown"
	}
}
