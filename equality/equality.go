package equality

import (
	"fmt"

	"github.com/stg-tools/stg/graph"
	"github.com/stg-tools/stg/scc"
)

// Comparator decides structural equality between ids of Left and Right
// (which may be the same *graph.Graph, e.g. for deduplication within one
// graph). Ordered children are compared positionally; unordered children
// are never introduced at this layer — that is the differ's job.
type Comparator struct {
	Left, Right *graph.Graph
	cache       Cache
	tracker     *scc.Tracker[Pair]
	tentative   map[Pair]bool
}

// NewComparator returns a Comparator backed by cache.
func NewComparator(left, right *graph.Graph, cache Cache) *Comparator {
	return &Comparator{
		Left:      left,
		Right:     right,
		cache:     cache,
		tracker:   scc.New[Pair](),
		tentative: map[Pair]bool{},
	}
}

// Equals reports whether a (in Left) and b (in Right) denote structurally
// identical types or symbols.
func (c *Comparator) Equals(a, b graph.Id) (bool, error) {
	return c.equalsPair(nil, a, b)
}

// equalsPair is the SCC-tolerant recursive core:
//  1. consult the cache,
//  2. open the pair in the SCC tracker; a back-edge returns tentative-true,
//  3. recursively compare children by variant,
//  4. on closing an SCC, commit the aggregate outcome to the cache.
func (c *Comparator) equalsPair(parent *Pair, a, b graph.Id) (bool, error) {
	if c.Left == c.Right && a == b {
		return true, nil
	}
	if known, equal := c.cache.Query(a, b); known {
		return equal, nil
	}

	key := Pair{a, b}
	status := c.tracker.Open(key)
	if status == scc.Open {
		if parent != nil {
			c.tracker.RelaxBackEdge(*parent, key)
		}
		return true, nil
	}

	val, err := c.compareNodes(key, a, b)
	if err != nil {
		return false, err
	}
	c.tentative[key] = val
	if parent != nil {
		c.tracker.RelaxChild(*parent, key)
	}

	component, trivial, isRoot := c.tracker.Close(key)
	if !isRoot {
		return val, nil
	}

	outcome := true
	for _, k := range component {
		if !c.tentative[k] {
			outcome = false
			break
		}
	}
	if trivial {
		commit(c.cache, outcome, []Pair{key})
		return outcome, nil
	}
	commit(c.cache, outcome, component)
	return outcome, nil
}

func commit(cache Cache, outcome bool, pairs []Pair) {
	if outcome {
		cache.AllSame(pairs)
	} else {
		cache.AllDifferent(pairs)
	}
}

func equalUint32Ptr(a, b *uint32) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func equalUint64Ptr(a, b *uint64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func equalVersionInfo(a, b *graph.VersionInfo) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

// compareNodes dispatches on the variants held at a (in Left) and b (in
// Right). A variant mismatch is a definite inequality with no recursion.
// Ordered children recurse through equalsPair with key as parent, so that
// cycles through them are tracked in the same SCC.
func (c *Comparator) compareNodes(key Pair, a, b graph.Id) (bool, error) {
	na, nb := c.Left.Get(a), c.Right.Get(b)

	switch x := na.(type) {
	case graph.Void:
		_, ok := nb.(graph.Void)
		return ok, nil

	case graph.Variadic:
		_, ok := nb.(graph.Variadic)
		return ok, nil

	case graph.PointerReference:
		y, ok := nb.(graph.PointerReference)
		if !ok || x.Kind != y.Kind {
			return false, nil
		}
		return c.equalsPair(&key, x.Pointee, y.Pointee)

	case graph.PointerToMember:
		y, ok := nb.(graph.PointerToMember)
		if !ok {
			return false, nil
		}
		eqContaining, err := c.equalsPair(&key, x.ContainingType, y.ContainingType)
		if err != nil {
			return false, err
		}
		eqPointee, err := c.equalsPair(&key, x.PointeeType, y.PointeeType)
		if err != nil {
			return false, err
		}
		return eqContaining && eqPointee, nil

	case graph.Typedef:
		y, ok := nb.(graph.Typedef)
		if !ok || x.Name != y.Name {
			return false, nil
		}
		return c.equalsPair(&key, x.ReferredType, y.ReferredType)

	case graph.Qualified:
		y, ok := nb.(graph.Qualified)
		if !ok || x.Qualifier != y.Qualifier {
			return false, nil
		}
		return c.equalsPair(&key, x.QualifiedType, y.QualifiedType)

	case graph.Primitive:
		y, ok := nb.(graph.Primitive)
		if !ok {
			return false, nil
		}
		return x.Name == y.Name && x.Encoding == y.Encoding && x.Bytesize == y.Bytesize, nil

	case graph.Array:
		y, ok := nb.(graph.Array)
		if !ok || x.NumberOfElements != y.NumberOfElements {
			return false, nil
		}
		return c.equalsPair(&key, x.ElementType, y.ElementType)

	case graph.BaseClass:
		y, ok := nb.(graph.BaseClass)
		if !ok || x.OffsetBits != y.OffsetBits || x.Inheritance != y.Inheritance {
			return false, nil
		}
		return c.equalsPair(&key, x.Type, y.Type)

	case graph.Method:
		y, ok := nb.(graph.Method)
		if !ok || x.MangledName != y.MangledName || x.Name != y.Name || x.Kind != y.Kind {
			return false, nil
		}
		if !equalUint64Ptr(x.VtableOffset, y.VtableOffset) {
			return false, nil
		}
		return c.equalsPair(&key, x.Type, y.Type)

	case graph.Member:
		y, ok := nb.(graph.Member)
		if !ok || x.Name != y.Name || x.OffsetBits != y.OffsetBits || x.Bitsize != y.Bitsize {
			return false, nil
		}
		return c.equalsPair(&key, x.Type, y.Type)

	case graph.StructUnion:
		y, ok := nb.(graph.StructUnion)
		if !ok || x.Kind != y.Kind || x.Name != y.Name {
			return false, nil
		}
		if (x.Definition == nil) != (y.Definition == nil) {
			return false, nil
		}
		if x.Definition == nil {
			return true, nil
		}
		xd, yd := x.Definition, y.Definition
		if xd.Bytesize != yd.Bytesize ||
			len(xd.BaseClasses) != len(yd.BaseClasses) ||
			len(xd.Methods) != len(yd.Methods) ||
			len(xd.Members) != len(yd.Members) {
			return false, nil
		}
		ok2 := true
		for i := range xd.BaseClasses {
			eq, err := c.equalsPair(&key, xd.BaseClasses[i], yd.BaseClasses[i])
			if err != nil {
				return false, err
			}
			ok2 = ok2 && eq
		}
		for i := range xd.Methods {
			eq, err := c.equalsPair(&key, xd.Methods[i], yd.Methods[i])
			if err != nil {
				return false, err
			}
			ok2 = ok2 && eq
		}
		for i := range xd.Members {
			eq, err := c.equalsPair(&key, xd.Members[i], yd.Members[i])
			if err != nil {
				return false, err
			}
			ok2 = ok2 && eq
		}
		return ok2, nil

	case graph.Enumeration:
		y, ok := nb.(graph.Enumeration)
		if !ok || x.Name != y.Name {
			return false, nil
		}
		if (x.Definition == nil) != (y.Definition == nil) {
			return false, nil
		}
		if x.Definition == nil {
			return true, nil
		}
		xd, yd := x.Definition, y.Definition
		if len(xd.Enumerators) != len(yd.Enumerators) {
			return false, nil
		}
		for i := range xd.Enumerators {
			if xd.Enumerators[i] != yd.Enumerators[i] {
				return false, nil
			}
		}
		return c.equalsPair(&key, xd.UnderlyingType, yd.UnderlyingType)

	case graph.Function:
		y, ok := nb.(graph.Function)
		if !ok || len(x.Parameters) != len(y.Parameters) {
			return false, nil
		}
		ok2, err := c.equalsPair(&key, x.ReturnType, y.ReturnType)
		if err != nil {
			return false, err
		}
		for i := range x.Parameters {
			eq, err := c.equalsPair(&key, x.Parameters[i], y.Parameters[i])
			if err != nil {
				return false, err
			}
			ok2 = ok2 && eq
		}
		return ok2, nil

	case graph.ElfSymbol:
		y, ok := nb.(graph.ElfSymbol)
		if !ok ||
			x.SymbolName != y.SymbolName ||
			x.IsDefined != y.IsDefined ||
			x.SymbolType != y.SymbolType ||
			x.Binding != y.Binding ||
			x.Visibility != y.Visibility ||
			x.Namespace != y.Namespace ||
			x.FullName != y.FullName {
			return false, nil
		}
		if !equalUint32Ptr(x.CRC, y.CRC) || !equalVersionInfo(x.VersionInfo, y.VersionInfo) {
			return false, nil
		}
		if (x.Type == graph.None) != (y.Type == graph.None) {
			return false, nil
		}
		if x.Type == graph.None {
			return true, nil
		}
		return c.equalsPair(&key, x.Type, y.Type)

	case graph.Interface:
		y, ok := nb.(graph.Interface)
		if !ok || x.Symbols.Len() != y.Symbols.Len() || x.Types.Len() != y.Types.Len() {
			return false, nil
		}
		ok2 := true
		for _, k := range x.Symbols.Keys() {
			xa, _ := x.Symbols.Get(k)
			yb, found := y.Symbols.Get(k)
			if !found {
				ok2 = false
				continue
			}
			eq, err := c.equalsPair(&key, xa, yb)
			if err != nil {
				return false, err
			}
			ok2 = ok2 && eq
		}
		for _, k := range x.Types.Keys() {
			xa, _ := x.Types.Get(k)
			yb, found := y.Types.Get(k)
			if !found {
				ok2 = false
				continue
			}
			eq, err := c.equalsPair(&key, xa, yb)
			if err != nil {
				return false, err
			}
			ok2 = ok2 && eq
		}
		return ok2, nil

	default:
		return false, fmt.Errorf("equality: unrecognised node variant at %s", a)
	}
}
