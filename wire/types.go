// Package wire implements the canonical, round-trippable graph encoding:
// a deterministic BFS renumbering pass (Renumber), canonical CBOR
// encode/decode (Encode/Decode), and a content digest (Digest) used both
// as a CI gate and to derive a watch-session correlation id (SessionID).
package wire

// graphEnvelope is the top-level encoded shape: a format version, the
// root's (renumbered) id, and every node in ascending id order.
//
// graphNode is a single flat struct overlaying every variant's fields
// rather than 16 separate CBOR-tagged types: canonical CBOR encoding sorts
// map keys and omits nothing, so the unused fields of whichever variant
// isn't Type just encode as their zero value, at a fixed, bounded cost per
// node.
type graphEnvelope struct {
	Version uint8
	Root    uint32
	Nodes   []graphNode
}

// graphNode is one node's wire form, tagged by Type. Field names are
// reused across variants that never co-occur (e.g. Name backs Typedef,
// Method, StructUnion and Enumeration; TypeID backs BaseClass, Method,
// Member and ElfSymbol's referenced type).
type graphNode struct {
	Type string

	// PointerReference, StructUnion.Kind, Method.Kind (never co-occur)
	Kind uint8

	// PointerReference.Pointee
	Pointee uint32

	// PointerToMember
	ContainingType uint32
	PointeeType    uint32

	// Typedef.Name / Method.Name / StructUnion.Name / Enumeration.Name
	Name string
	// Typedef.ReferredType
	ReferredType uint32

	// Qualified
	Qualifier     uint8
	QualifiedType uint32

	// Primitive
	Encoding uint8
	Bytesize uint64

	// Array
	NumberOfElements uint64
	ElementType      uint32

	// BaseClass.Type / Method.Type / Member.Type / ElfSymbol.Type
	TypeID uint32
	// BaseClass.OffsetBits / Member.OffsetBits
	OffsetBits uint64
	// BaseClass.Inheritance
	Inheritance uint8

	// Method
	MangledName     string
	HasVtableOffset bool
	VtableOffset    uint64

	// Member.Bitsize
	Bitsize uint64

	// StructUnion / Enumeration: Definition != nil
	Defined     bool
	BaseClasses []uint32
	Methods     []uint32
	Members     []uint32

	// Enumeration.Definition
	UnderlyingType uint32
	Enumerators    []wireEnumerator

	// Function
	ReturnType uint32
	Parameters []uint32

	// ElfSymbol
	SymbolName       string
	HasVersion       bool
	VersionName      string
	VersionIsDefault bool
	IsDefined        bool
	SymbolType       uint8
	Binding          uint8
	Visibility       uint8
	HasCRC           bool
	CRC              uint32
	Namespace        string
	FullName         string

	// Interface
	Symbols []wireEntry
	Types   []wireEntry
}

type wireEnumerator struct {
	Name  string
	Value int64
}

// wireEntry is one OrderedMap entry; order in the slice is the map's
// iteration order.
type wireEntry struct {
	Key string
	ID  uint32
}
