// Package fingerprint assigns each node reachable from a graph root a
// 32-bit content hash that is SCC-safe: structurally equal, cycle-free
// nodes usually share a hash, and every node in a mutually recursive
// cycle shares the same (coarser) fallback hash so cycles never cause
// hash divergence.
package fingerprint

import (
	"github.com/stg-tools/stg/graph"
	"github.com/stg-tools/stg/scc"
)

// Hasher computes fingerprints over one Graph. It is single-use: create
// one per Fingerprint call.
type Hasher struct {
	g         *graph.Graph
	tracker   *scc.Tracker[graph.Id]
	tentative *graph.DenseIdMapping[uint32]
	memo      map[graph.Id]uint32
	todo      []graph.Id
	queued    map[graph.Id]bool
	mix       mixer
}

// NewHasher returns a Hasher over g.
func NewHasher(g *graph.Graph) *Hasher {
	return &Hasher{
		g:         g,
		tracker:   scc.New[graph.Id](),
		tentative: graph.NewDenseIdMapping[uint32](g.MaxId() + 1),
		memo:      make(map[graph.Id]uint32),
		queued:    make(map[graph.Id]bool),
	}
}

// Fingerprint computes a fingerprint for every node reachable from root,
// including nodes only reachable via the deferred todo queue (named
// Typedef/StructUnion/Enumeration targets, ElfSymbol types, Interface
// symbol values). It terminates even in the presence of cycles.
func Fingerprint(g *graph.Graph, root graph.Id) (map[graph.Id]uint32, error) {
	h := NewHasher(g)
	return h.Run(root)
}

// Run is the instance form of Fingerprint, for callers that want to reuse
// a single Hasher's internal mixer configuration (there is currently no
// configuration, but this mirrors the constructor-then-run shape used
// elsewhere in this codebase, e.g. diff.NewCompare).
func (h *Hasher) Run(root graph.Id) (map[graph.Id]uint32, error) {
	h.enqueue(root)
	for len(h.todo) > 0 {
		id := h.todo[0]
		h.todo = h.todo[1:]
		if id == graph.None {
			continue
		}
		if _, ok := h.memo[id]; ok {
			continue
		}
		if _, err := h.fingerprintOf(graph.None, id); err != nil {
			return nil, err
		}
	}
	return h.memo, nil
}

func (h *Hasher) enqueue(id graph.Id) {
	if id == graph.None || h.queued[id] {
		return
	}
	h.queued[id] = true
	h.todo = append(h.todo, id)
}

// fingerprintOf returns child's fingerprint, recursing into it if this is
// the first visit. parent is graph.None for top-level todo-queue entries.
func (h *Hasher) fingerprintOf(parent, child graph.Id) (uint32, error) {
	if v, ok := h.memo[child]; ok {
		return v, nil
	}
	status := h.tracker.Open(child)
	if status == scc.Open {
		if parent != graph.None {
			h.tracker.RelaxBackEdge(parent, child)
		}
		return 0, nil
	}

	val, err := graph.Apply[uint32](h.g, child, hasherVisitor{h})
	if err != nil {
		return 0, err
	}
	h.tentative.Set(child, val)

	if parent != graph.None {
		h.tracker.RelaxChild(parent, child)
	}

	component, trivial, isRoot := h.tracker.Close(child)
	if !isRoot {
		return val, nil
	}
	if trivial {
		h.memo[child] = val
		return val, nil
	}
	fallback := h.mix.mixUint32(uint32(len(component)))
	for _, m := range component {
		h.memo[m] = fallback
	}
	return fallback, nil
}

// hasherVisitor adapts Hasher to graph.Visitor[uint32], implementing the
// per-variant mixing rules.
type hasherVisitor struct{ h *Hasher }

func (v hasherVisitor) VisitVoid(graph.Id, graph.Void) (uint32, error) {
	return v.h.mix.combine(uint32(TagVoid)), nil
}

func (v hasherVisitor) VisitVariadic(graph.Id, graph.Variadic) (uint32, error) {
	return v.h.mix.combine(uint32(TagVariadic)), nil
}

func (v hasherVisitor) VisitPointerReference(id graph.Id, n graph.PointerReference) (uint32, error) {
	child, err := v.h.fingerprintOf(id, n.Pointee)
	if err != nil {
		return 0, err
	}
	return v.h.mix.combine(uint32(TagPointerReference), uint32(n.Kind), child), nil
}

func (v hasherVisitor) VisitPointerToMember(id graph.Id, n graph.PointerToMember) (uint32, error) {
	containing, err := v.h.fingerprintOf(id, n.ContainingType)
	if err != nil {
		return 0, err
	}
	pointee, err := v.h.fingerprintOf(id, n.PointeeType)
	if err != nil {
		return 0, err
	}
	return v.h.mix.combine(uint32(TagPointerToMember), containing, pointee), nil
}

// VisitTypedef fingerprints by name only, deferring ReferredType to the
// todo queue: two typedefs sharing a name but different targets collide
// by design, resolved later by the equality pass.
func (v hasherVisitor) VisitTypedef(_ graph.Id, n graph.Typedef) (uint32, error) {
	v.h.enqueue(n.ReferredType)
	return v.h.mix.combine(uint32(TagTypedef), v.h.mix.hashString(n.Name)), nil
}

func (v hasherVisitor) VisitQualified(id graph.Id, n graph.Qualified) (uint32, error) {
	child, err := v.h.fingerprintOf(id, n.QualifiedType)
	if err != nil {
		return 0, err
	}
	return v.h.mix.combine(uint32(TagQualified), uint32(n.Qualifier), child), nil
}

func (v hasherVisitor) VisitPrimitive(_ graph.Id, n graph.Primitive) (uint32, error) {
	return v.h.mix.combine(uint32(TagPrimitive), v.h.mix.hashString(n.Name), uint32(n.Encoding), n.Bytesize), nil
}

func (v hasherVisitor) VisitArray(id graph.Id, n graph.Array) (uint32, error) {
	child, err := v.h.fingerprintOf(id, n.ElementType)
	if err != nil {
		return 0, err
	}
	return v.h.mix.combine(uint32(TagArray), v.h.mix.mixUint64(n.NumberOfElements), child), nil
}

func (v hasherVisitor) VisitBaseClass(id graph.Id, n graph.BaseClass) (uint32, error) {
	child, err := v.h.fingerprintOf(id, n.Type)
	if err != nil {
		return 0, err
	}
	return v.h.mix.combine(uint32(TagBaseClass), child, v.h.mix.mixUint64(n.OffsetBits), uint32(n.Inheritance)), nil
}

func (v hasherVisitor) VisitMethod(id graph.Id, n graph.Method) (uint32, error) {
	child, err := v.h.fingerprintOf(id, n.Type)
	if err != nil {
		return 0, err
	}
	vtableOffset := uint32(0xffffffff)
	if n.VtableOffset != nil {
		vtableOffset = v.h.mix.mixUint64(*n.VtableOffset)
	}
	return v.h.mix.combine(uint32(TagMethod), v.h.mix.hashString(n.MangledName), v.h.mix.hashString(n.Name), uint32(n.Kind), vtableOffset, child), nil
}

func (v hasherVisitor) VisitMember(id graph.Id, n graph.Member) (uint32, error) {
	child, err := v.h.fingerprintOf(id, n.Type)
	if err != nil {
		return 0, err
	}
	return v.h.mix.combine(uint32(TagMember), v.h.mix.hashString(n.Name), child, v.h.mix.mixUint64(n.OffsetBits), v.h.mix.mixUint64(n.Bitsize)), nil
}

// VisitStructUnion defers named struct/unions (hashing by kind+name only
// and pushing the definition's children to the todo queue so they still
// receive fingerprints for callers that query them directly); anonymous
// struct/unions cannot be looked up by name later so they are hashed
// fully inline, recursing into every base class, method, and member.
func (v hasherVisitor) VisitStructUnion(id graph.Id, n graph.StructUnion) (uint32, error) {
	if n.Name != "" {
		if n.Definition != nil {
			for _, m := range n.Definition.BaseClasses {
				v.h.enqueue(m)
			}
			for _, m := range n.Definition.Methods {
				v.h.enqueue(m)
			}
			for _, m := range n.Definition.Members {
				v.h.enqueue(m)
			}
		}
		return v.h.mix.combine(uint32(TagStructUnion), uint32(n.Kind), v.h.mix.hashString(n.Name)), nil
	}

	acc := v.h.mix.combine(uint32(TagStructUnion), uint32(n.Kind))
	if n.Definition == nil {
		return acc, nil
	}
	for _, id2 := range n.Definition.BaseClasses {
		child, err := v.h.fingerprintOf(id, id2)
		if err != nil {
			return 0, err
		}
		acc = v.h.mix.combine(acc, child)
	}
	for _, id2 := range n.Definition.Methods {
		child, err := v.h.fingerprintOf(id, id2)
		if err != nil {
			return 0, err
		}
		acc = v.h.mix.combine(acc, child)
	}
	for _, id2 := range n.Definition.Members {
		child, err := v.h.fingerprintOf(id, id2)
		if err != nil {
			return 0, err
		}
		acc = v.h.mix.combine(acc, child)
	}
	return acc, nil
}

// VisitEnumeration mirrors VisitStructUnion's named/anonymous split.
func (v hasherVisitor) VisitEnumeration(id graph.Id, n graph.Enumeration) (uint32, error) {
	if n.Name != "" {
		if n.Definition != nil {
			v.h.enqueue(n.Definition.UnderlyingType)
		}
		return v.h.mix.combine(uint32(TagEnumeration), v.h.mix.hashString(n.Name)), nil
	}

	acc := v.h.mix.combine(uint32(TagEnumeration))
	if n.Definition == nil {
		return acc, nil
	}
	underlying, err := v.h.fingerprintOf(id, n.Definition.UnderlyingType)
	if err != nil {
		return 0, err
	}
	acc = v.h.mix.combine(acc, underlying)
	for _, e := range n.Definition.Enumerators {
		acc = v.h.mix.combine(acc, v.h.mix.hashString(e.Name), v.h.mix.mixUint64(uint64(e.Value)))
	}
	return acc, nil
}

func (v hasherVisitor) VisitFunction(id graph.Id, n graph.Function) (uint32, error) {
	ret, err := v.h.fingerprintOf(id, n.ReturnType)
	if err != nil {
		return 0, err
	}
	acc := v.h.mix.combine(uint32(TagFunction), ret)
	for _, p := range n.Parameters {
		child, err := v.h.fingerprintOf(id, p)
		if err != nil {
			return 0, err
		}
		acc = v.h.mix.combine(acc, child)
	}
	return acc, nil
}

// VisitElfSymbol defers Type to the todo queue: a symbol's identity for
// hashing purposes is its name and linkage attributes, not the full
// recursive shape of whatever it is typed as (which would otherwise force
// eager recursion through every exported symbol's type graph up front).
func (v hasherVisitor) VisitElfSymbol(_ graph.Id, n graph.ElfSymbol) (uint32, error) {
	v.h.enqueue(n.Type)
	crc := uint32(0xffffffff)
	if n.CRC != nil {
		crc = *n.CRC
	}
	return v.h.mix.combine(
		uint32(TagElfSymbol),
		v.h.mix.hashString(n.SymbolName),
		v.h.mix.mixBool(n.IsDefined),
		uint32(n.SymbolType),
		uint32(n.Binding),
		uint32(n.Visibility),
		v.h.mix.hashString(n.Namespace),
		crc,
	), nil
}

// VisitInterface defers every symbol target to the todo queue (so the
// export surface's breadth doesn't force one giant eager recursion), but
// recurses directly into named type entries since those are exactly what
// dedup/equality partition on.
func (v hasherVisitor) VisitInterface(id graph.Id, n graph.Interface) (uint32, error) {
	acc := v.h.mix.combine(uint32(TagInterface))
	for _, k := range n.Symbols.Keys() {
		target, _ := n.Symbols.Get(k)
		v.h.enqueue(target)
		acc = v.h.mix.combine(acc, v.h.mix.hashString(k))
	}
	for _, k := range n.Types.Keys() {
		target, _ := n.Types.Get(k)
		child, err := v.h.fingerprintOf(id, target)
		if err != nil {
			return 0, err
		}
		acc = v.h.mix.combine(acc, v.h.mix.hashString(k), child)
	}
	return acc, nil
}
