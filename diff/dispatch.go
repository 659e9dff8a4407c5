package diff

import (
	"fmt"
	"sort"

	"github.com/stg-tools/stg/graph"
)

// compareOne resolves qualifiers and typedefs ahead of the real
// comparison, then dispatches on the (now bare) matched variants.
// Grounded directly on Compare::operator()(Id,Id)'s steps 3-4.
func (c *Compare) compareOne(key Comparison, a, b graph.Id) (result, error) {
	unqualified1, quals1 := ResolveQualifiers(c.Left, a)
	unqualified2, quals2 := ResolveQualifiers(c.Right, b)

	if len(quals1) > 0 || len(quals2) > 0 {
		r := newResult()
		c.diffQualifiers(&r, quals1, quals2)
		equals, edge, err := c.compare(&key, unqualified1, unqualified2)
		if err != nil {
			return r, err
		}
		r.maybeAddEdgeDiff("underlying", equals, edge)
		return r, nil
	}

	resolved1, typedefs1 := ResolveTypedefs(c.Left, unqualified1)
	resolved2, typedefs2 := ResolveTypedefs(c.Right, unqualified2)
	if unqualified1 != resolved1 || unqualified2 != resolved2 {
		r := newResult()
		r.diff.HoldsChanges = len(typedefs1) > 0 && len(typedefs2) > 0 && typedefs1[0] == typedefs2[0]
		equals, edge, err := c.compare(&key, resolved1, resolved2)
		if err != nil {
			return r, err
		}
		r.maybeAddEdgeDiff("resolved", equals, edge)
		return r, nil
	}

	return c.compareNodes(key, unqualified1, unqualified2)
}

func qualifierName(q graph.Qualifier) string {
	switch q {
	case graph.Const:
		return "const"
	case graph.Volatile:
		return "volatile"
	case graph.Restrict:
		return "restrict"
	default:
		return "unknown"
	}
}

// diffQualifiers walks both qualifier sets in total-order, emitting a
// removed/added detail for each asymmetric qualifier. Suppressed entirely
// (no text, no equals flip) when IgnoreQualifier is set, matching the
// reference's ignore_diff-gated CompareDefined pattern.
func (c *Compare) diffQualifiers(r *result, quals1, quals2 map[graph.Qualifier]bool) {
	list1 := sortedQualifiers(quals1)
	list2 := sortedQualifiers(quals2)
	ignore := c.Options.Ignore.Has(IgnoreQualifier)
	i, j := 0, 0
	for i < len(list1) || j < len(list2) {
		switch {
		case j == len(list2) || (i < len(list1) && list1[i] < list2[j]):
			if !ignore {
				r.addNodeDiff(fmt.Sprintf("qualifier %s removed", qualifierName(list1[i])))
			}
			i++
		case i == len(list1) || (j < len(list2) && list1[i] > list2[j]):
			if !ignore {
				r.addNodeDiff(fmt.Sprintf("qualifier %s added", qualifierName(list2[j])))
			}
			j++
		default:
			i++
			j++
		}
	}
}

// compareDefined reports whether both sides are defined (safe to recurse
// into their definitions). When exactly one side is defined, it records
// a declaration/definition transition unless ignoreDiff suppresses it.
func compareDefined(r *result, defined1, defined2, ignoreDiff bool) bool {
	if defined1 && defined2 {
		return true
	}
	if !ignoreDiff && defined1 != defined2 {
		state := func(defined bool) string {
			if defined {
				return "fully defined"
			}
			return "only declared"
		}
		r.addNodeDiff(fmt.Sprintf("was %s, is now %s", state(defined1), state(defined2)))
	}
	return false
}

type keyIndex struct {
	key   string
	index int
}

func sortedByKey(keys []keyIndex) []keyIndex {
	out := append([]keyIndex(nil), keys...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

// matchingKeyList computes MatchingKey for every id, disambiguating
// repeated empty keys with a positional "#anon#N" tag, then stable-sorts
// by key — mirroring the reference's MatchingKeys(graph, ids).
func matchingKeyList(g *graph.Graph, ids []graph.Id) []keyIndex {
	out := make([]keyIndex, len(ids))
	anon := 0
	for i, id := range ids {
		key := MatchingKey(g, id)
		if key == "" {
			key = fmt.Sprintf("#anon#%d", anon)
			anon++
		}
		out[i] = keyIndex{key, i}
	}
	return sortedByKey(out)
}

func enumeratorKeyList(enums []graph.Enumerator) []keyIndex {
	out := make([]keyIndex, len(enums))
	for i, e := range enums {
		out[i] = keyIndex{e.Name, i}
	}
	return sortedByKey(out)
}

// pairUp merges two key-sorted index lists, producing one Match per
// unique key: present-in-both when keys coincide, Index1/Index2-only
// otherwise. Mirrors the reference's PairUp.
func pairUp(keys1, keys2 []keyIndex) []Match {
	var pairs []Match
	i, j := 0, 0
	for i < len(keys1) || j < len(keys2) {
		switch {
		case j == len(keys2) || (i < len(keys1) && keys1[i].key < keys2[j].key):
			idx := keys1[i].index
			pairs = append(pairs, Match{Index1: &idx})
			i++
		case i == len(keys1) || (j < len(keys2) && keys1[i].key > keys2[j].key):
			idx := keys2[j].index
			pairs = append(pairs, Match{Index2: &idx})
			j++
		default:
			idx1, idx2 := keys1[i].index, keys2[j].index
			pairs = append(pairs, Match{Index1: &idx1, Index2: &idx2})
			i++
			j++
		}
	}
	return pairs
}

// compareMultiset pairs up ids1/ids2 by MatchingKey, optionally reorders
// the matched pairs to extend the left ordering with the right's, and
// recurses into every matched pair / records every mismatch as an
// Added/Removed edge.
func (c *Compare) compareMultiset(r *result, parent Comparison, ids1, ids2 []graph.Id, reorder bool) error {
	keys1 := matchingKeyList(c.Left, ids1)
	keys2 := matchingKeyList(c.Right, ids2)
	matches := pairUp(keys1, keys2)
	if reorder {
		Reorder(matches)
	}
	for _, m := range matches {
		switch {
		case m.Index1 != nil && m.Index2 == nil:
			r.addEdgeDiff("", c.Removed(ids1[*m.Index1]))
		case m.Index1 == nil && m.Index2 != nil:
			r.addEdgeDiff("", c.Added(ids2[*m.Index2]))
		default:
			equals, edge, err := c.compare(&parent, ids1[*m.Index1], ids2[*m.Index2])
			if err != nil {
				return err
			}
			r.maybeAddEdgeDiff("", equals, edge)
		}
	}
	return nil
}

func (c *Compare) comparePointerReference(key Comparison, x1, x2 graph.PointerReference) (result, error) {
	r := newResult()
	if x1.Kind != x2.Kind {
		r.markIncomparable()
		return r, nil
	}
	equals, edge, err := c.compare(&key, x1.Pointee, x2.Pointee)
	if err != nil {
		return r, err
	}
	text := "pointed-to"
	if x1.Kind != graph.Pointer {
		text = "referred-to"
	}
	r.maybeAddEdgeDiff(text, equals, edge)
	return r, nil
}

// comparePointerToMember has no reference counterpart (the C++ node
// universe has no pointer-to-member); grounded on equality's treatment of
// the same variant, generalised from "equal" to "diff".
func (c *Compare) comparePointerToMember(key Comparison, x1, x2 graph.PointerToMember) (result, error) {
	r := newResult()
	eq1, edge1, err := c.compare(&key, x1.ContainingType, x2.ContainingType)
	if err != nil {
		return r, err
	}
	r.maybeAddEdgeDiff("containing", eq1, edge1)
	eq2, edge2, err := c.compare(&key, x1.PointeeType, x2.PointeeType)
	if err != nil {
		return r, err
	}
	r.maybeAddEdgeDiff("pointee", eq2, edge2)
	return r, nil
}

func (c *Compare) comparePrimitive(x1, x2 graph.Primitive) result {
	r := newResult()
	if x1.Name != x2.Name {
		r.markIncomparable()
		return r
	}
	r.diff.HoldsChanges = x1.Name != ""
	if !c.Options.Ignore.Has(IgnorePrimitiveEncoding) {
		maybeAddNodeDiff(&r, "encoding", x1.Encoding, x2.Encoding)
	}
	maybeAddNodeDiff(&r, "byte size", x1.Bytesize, x2.Bytesize)
	return r
}

func (c *Compare) compareArray(key Comparison, x1, x2 graph.Array) (result, error) {
	r := newResult()
	maybeAddNodeDiff(&r, "number of elements", x1.NumberOfElements, x2.NumberOfElements)
	equals, edge, err := c.compare(&key, x1.ElementType, x2.ElementType)
	if err != nil {
		return r, err
	}
	r.maybeAddEdgeDiff("element", equals, edge)
	return r, nil
}

func (c *Compare) compareBaseClass(key Comparison, x1, x2 graph.BaseClass) (result, error) {
	r := newResult()
	maybeAddNodeDiff(&r, "inheritance", x1.Inheritance, x2.Inheritance)
	maybeAddNodeDiff(&r, "offset", x1.OffsetBits, x2.OffsetBits)
	equals, edge, err := c.compare(&key, x1.Type, x2.Type)
	if err != nil {
		return r, err
	}
	r.maybeAddEdgeDiff("", equals, edge)
	return r, nil
}

func (c *Compare) compareMember(key Comparison, x1, x2 graph.Member) (result, error) {
	r := newResult()
	maybeAddNodeDiff(&r, "offset", x1.OffsetBits, x2.OffsetBits)
	if !c.Options.Ignore.Has(IgnoreMemberSize) {
		maybeAddNodeDiff(&r, "size", x1.Bitsize, x2.Bitsize)
	}
	equals, edge, err := c.compare(&key, x1.Type, x2.Type)
	if err != nil {
		return r, err
	}
	r.maybeAddEdgeDiff("", equals, edge)
	return r, nil
}

func (c *Compare) compareMethod(key Comparison, x1, x2 graph.Method) (result, error) {
	r := newResult()
	maybeAddNodeDiff(&r, "kind", x1.Kind, x2.Kind)
	maybeAddNodeDiffOptional(&r, "vtable offset", x1.VtableOffset, x2.VtableOffset)
	equals, edge, err := c.compare(&key, x1.Type, x2.Type)
	if err != nil {
		return r, err
	}
	r.maybeAddEdgeDiff("", equals, edge)
	return r, nil
}

func (c *Compare) compareStructUnion(key Comparison, x1, x2 graph.StructUnion) (result, error) {
	r := newResult()
	if x1.Kind != x2.Kind || x1.Name != x2.Name {
		r.markIncomparable()
		return r, nil
	}
	r.diff.HoldsChanges = x1.Name != ""

	if !compareDefined(&r, x1.Definition != nil, x2.Definition != nil, c.Options.Ignore.Has(IgnoreTypeDeclarationStatus)) {
		return r, nil
	}
	d1, d2 := x1.Definition, x2.Definition
	maybeAddNodeDiff(&r, "byte size", d1.Bytesize, d2.Bytesize)
	if err := c.compareMultiset(&r, key, d1.BaseClasses, d2.BaseClasses, true); err != nil {
		return r, err
	}
	if err := c.compareMultiset(&r, key, d1.Methods, d2.Methods, false); err != nil {
		return r, err
	}
	if err := c.compareMultiset(&r, key, d1.Members, d2.Members, true); err != nil {
		return r, err
	}
	return r, nil
}

func (c *Compare) compareEnumeration(key Comparison, x1, x2 graph.Enumeration) (result, error) {
	r := newResult()
	if x1.Name != x2.Name {
		r.markIncomparable()
		return r, nil
	}
	r.diff.HoldsChanges = x1.Name != ""

	if !compareDefined(&r, x1.Definition != nil, x2.Definition != nil, c.Options.Ignore.Has(IgnoreTypeDeclarationStatus)) {
		return r, nil
	}
	d1, d2 := x1.Definition, x2.Definition

	keys1 := enumeratorKeyList(d1.Enumerators)
	keys2 := enumeratorKeyList(d2.Enumerators)
	matches := pairUp(keys1, keys2)
	Reorder(matches)
	for _, m := range matches {
		switch {
		case m.Index1 != nil && m.Index2 == nil:
			e := d1.Enumerators[*m.Index1]
			r.addNodeDiff(fmt.Sprintf("enumerator '%s' (%d) was removed", e.Name, e.Value))
		case m.Index1 == nil && m.Index2 != nil:
			e := d2.Enumerators[*m.Index2]
			r.addNodeDiff(fmt.Sprintf("enumerator '%s' (%d) was added", e.Name, e.Value))
		default:
			e1, e2 := d1.Enumerators[*m.Index1], d2.Enumerators[*m.Index2]
			if e1.Value != e2.Value {
				r.addNodeDiff(fmt.Sprintf("enumerator '%s' value changed from %d to %d", e1.Name, e1.Value, e2.Value))
			}
		}
	}

	if !c.Options.Ignore.Has(IgnoreEnumUnderlyingType) {
		equals, edge, err := c.compare(&key, d1.UnderlyingType, d2.UnderlyingType)
		if err != nil {
			return r, err
		}
		r.maybeAddEdgeDiff("underlying", equals, edge)
	}
	return r, nil
}

func (c *Compare) compareFunction(key Comparison, x1, x2 graph.Function) (result, error) {
	r := newResult()
	equals, edge, err := c.compare(&key, x1.ReturnType, x2.ReturnType)
	if err != nil {
		return r, err
	}
	r.maybeAddEdgeDiff("return", equals, edge)

	min := len(x1.Parameters)
	if len(x2.Parameters) < min {
		min = len(x2.Parameters)
	}
	for i := 0; i < min; i++ {
		equals, edge, err := c.compare(&key, x1.Parameters[i], x2.Parameters[i])
		if err != nil {
			return r, err
		}
		r.maybeAddEdgeDiff(fmt.Sprintf("parameter %d", i+1), equals, edge)
	}

	added := len(x1.Parameters) < len(x2.Parameters)
	tail := x1.Parameters
	if added {
		tail = x2.Parameters
	}
	for i := min; i < len(tail); i++ {
		var comparison Comparison
		if added {
			comparison = c.Added(tail[i])
		} else {
			comparison = c.Removed(tail[i])
		}
		r.addEdgeDiff(fmt.Sprintf("parameter %d of", i+1), comparison)
	}
	return r, nil
}

func (c *Compare) compareElfSymbol(key Comparison, x1, x2 graph.ElfSymbol) (result, error) {
	r := newResult()
	maybeAddNodeDiff(&r, "name", x1.SymbolName, x2.SymbolName)

	if x1.VersionInfo != nil && x2.VersionInfo != nil {
		maybeAddNodeDiff(&r, "version", x1.VersionInfo.Name, x2.VersionInfo.Name)
		maybeAddNodeDiff(&r, "default version", x1.VersionInfo.IsDefault, x2.VersionInfo.IsDefault)
	} else {
		maybeAddNodeDiff(&r, "has version", x1.VersionInfo != nil, x2.VersionInfo != nil)
	}

	maybeAddNodeDiff(&r, "defined", x1.IsDefined, x2.IsDefined)
	maybeAddNodeDiff(&r, "symbol type", x1.SymbolType, x2.SymbolType)
	maybeAddNodeDiff(&r, "binding", x1.Binding, x2.Binding)
	maybeAddNodeDiff(&r, "visibility", x1.Visibility, x2.Visibility)
	if !c.Options.Ignore.Has(IgnoreSymbolCRC) {
		maybeAddNodeDiffOptional(&r, "CRC", x1.CRC, x2.CRC)
	}
	maybeAddNodeDiff(&r, "namespace", x1.Namespace, x2.Namespace)

	switch {
	case x1.Type != graph.None && x2.Type != graph.None:
		equals, edge, err := c.compare(&key, x1.Type, x2.Type)
		if err != nil {
			return r, err
		}
		r.maybeAddEdgeDiff("", equals, edge)
	case x1.Type != graph.None:
		if !c.Options.Ignore.Has(IgnoreSymbolTypePresence) {
			r.addEdgeDiff("", c.Removed(x1.Type))
		}
	case x2.Type != graph.None:
		if !c.Options.Ignore.Has(IgnoreSymbolTypePresence) {
			r.addEdgeDiff("", c.Added(x2.Type))
		}
	}
	return r, nil
}

// compareInterface diffs the two graphs' root nodes: their exported
// symbol and type maps, each matched by name (not MatchingKey — these
// are top-level, already-named collections) in sorted order, grouping
// into removed / added / changed. Grounded on Compare::operator()(Symbols,
// Symbols), generalised to cover both of Interface's maps.
func (c *Compare) compareInterface(key Comparison, x1, x2 graph.Interface) (result, error) {
	r := newResult()
	r.diff.HoldsChanges = true
	if err := c.compareOrderedMap(&r, key, x1.Symbols, x2.Symbols); err != nil {
		return r, err
	}
	if err := c.compareOrderedMap(&r, key, x1.Types, x2.Types); err != nil {
		return r, err
	}
	return r, nil
}

func (c *Compare) compareOrderedMap(r *result, key Comparison, left, right *graph.OrderedMap) error {
	keys1 := append([]string(nil), left.Keys()...)
	keys2 := append([]string(nil), right.Keys()...)
	sort.Strings(keys1)
	sort.Strings(keys2)

	i, j := 0, 0
	for i < len(keys1) || j < len(keys2) {
		switch {
		case j == len(keys2) || (i < len(keys1) && keys1[i] < keys2[j]):
			id, _ := left.Get(keys1[i])
			r.addEdgeDiff("", c.Removed(id))
			i++
		case i == len(keys1) || (j < len(keys2) && keys1[i] > keys2[j]):
			if !c.Options.Ignore.Has(IgnoreInterfaceAddition) {
				id, _ := right.Get(keys2[j])
				r.addEdgeDiff("", c.Added(id))
			}
			j++
		default:
			id1, _ := left.Get(keys1[i])
			id2, _ := right.Get(keys2[j])
			equals, edge, err := c.compare(&key, id1, id2)
			if err != nil {
				return err
			}
			r.maybeAddEdgeDiff("", equals, edge)
			i++
			j++
		}
	}
	return nil
}

// compareNodes dispatches on the variants held at a (in Left) and b (in
// Right). A variant mismatch marks the pair incomparable with no
// recursion. Typedef and Qualified are never dispatched here: compareOne
// always resolves them away first.
func (c *Compare) compareNodes(key Comparison, a, b graph.Id) (result, error) {
	na, nb := c.Left.Get(a), c.Right.Get(b)

	switch x := na.(type) {
	case graph.Void:
		if _, ok := nb.(graph.Void); ok {
			return newResult(), nil
		}
	case graph.Variadic:
		if _, ok := nb.(graph.Variadic); ok {
			return newResult(), nil
		}
	case graph.PointerReference:
		if y, ok := nb.(graph.PointerReference); ok {
			return c.comparePointerReference(key, x, y)
		}
	case graph.PointerToMember:
		if y, ok := nb.(graph.PointerToMember); ok {
			return c.comparePointerToMember(key, x, y)
		}
	case graph.Primitive:
		if y, ok := nb.(graph.Primitive); ok {
			return c.comparePrimitive(x, y), nil
		}
	case graph.Array:
		if y, ok := nb.(graph.Array); ok {
			return c.compareArray(key, x, y)
		}
	case graph.BaseClass:
		if y, ok := nb.(graph.BaseClass); ok {
			return c.compareBaseClass(key, x, y)
		}
	case graph.Method:
		if y, ok := nb.(graph.Method); ok {
			return c.compareMethod(key, x, y)
		}
	case graph.Member:
		if y, ok := nb.(graph.Member); ok {
			return c.compareMember(key, x, y)
		}
	case graph.StructUnion:
		if y, ok := nb.(graph.StructUnion); ok {
			return c.compareStructUnion(key, x, y)
		}
	case graph.Enumeration:
		if y, ok := nb.(graph.Enumeration); ok {
			return c.compareEnumeration(key, x, y)
		}
	case graph.Function:
		if y, ok := nb.(graph.Function); ok {
			return c.compareFunction(key, x, y)
		}
	case graph.ElfSymbol:
		if y, ok := nb.(graph.ElfSymbol); ok {
			return c.compareElfSymbol(key, x, y)
		}
	case graph.Interface:
		if y, ok := nb.(graph.Interface); ok {
			return c.compareInterface(key, x, y)
		}
	case graph.Typedef, graph.Qualified:
		panic("diff: internal error: compareNodes called directly on a Typedef/Qualified")
	}

	r := newResult()
	r.markIncomparable()
	return r, nil
}
