package graph

// Node is the closed set of tagged node variants a Graph can store. Every
// cross-reference between nodes is an Id, never an embedded node, so that
// the graph can represent arbitrary cycles without shared-ownership
// headaches.
//
// The unexported sealed method closes the interface: only the 16 variants
// declared in this file satisfy it, so a type switch over Node that lists
// all 16 is exhaustive and a missing case is a bug the compiler-adjacent
// go vet exhaustive check will flag.
type Node interface {
	sealed()
}

// PointerKind distinguishes the three pointer-like reference shapes.
type PointerKind uint8

const (
	Pointer PointerKind = iota
	LValueReference
	RValueReference
)

// Qualifier is one of the three C-family type qualifiers.
type Qualifier uint8

const (
	Const Qualifier = iota
	Volatile
	Restrict
)

// PrimitiveEncoding describes how a Primitive's bits are interpreted.
// The zero value means "no encoding known".
type PrimitiveEncoding uint8

const (
	NoEncoding PrimitiveEncoding = iota
	Boolean
	SignedInteger
	UnsignedInteger
	SignedCharacter
	UnsignedCharacter
	RealNumber
	ComplexNumber
	UTF
)

// Inheritance marks how a BaseClass is inherited.
type Inheritance uint8

const (
	NonVirtualInheritance Inheritance = iota
	VirtualInheritance
)

// MethodKind distinguishes ordinary, static and virtual methods.
type MethodKind uint8

const (
	NonVirtualMethod MethodKind = iota
	StaticMethod
	VirtualMethod
)

// StructUnionKind distinguishes struct from union.
type StructUnionKind uint8

const (
	Struct StructUnionKind = iota
	Union
)

// SymbolType classifies an ELF symbol.
type SymbolType uint8

const (
	ObjectSymbol SymbolType = iota
	FunctionSymbol
	CommonSymbol
	TLSSymbol
	GNUIFuncSymbol
)

// SymbolBinding classifies ELF symbol linkage.
type SymbolBinding uint8

const (
	GlobalBinding SymbolBinding = iota
	LocalBinding
	WeakBinding
	GNUUniqueBinding
)

// SymbolVisibility classifies ELF symbol visibility.
type SymbolVisibility uint8

const (
	DefaultVisibility SymbolVisibility = iota
	ProtectedVisibility
	HiddenVisibility
	InternalVisibility
)

// Void is the void type. There is at most one logical instance per graph.
type Void struct{}

func (Void) sealed() {}

// Variadic represents the variadic parameter slot ("..."). Front-ends
// should share a single instance per graph.
type Variadic struct{}

func (Variadic) sealed() {}

// PointerReference is a pointer, lvalue reference, or rvalue reference to
// Pointee.
type PointerReference struct {
	Kind    PointerKind
	Pointee Id
}

func (PointerReference) sealed() {}

// PointerToMember is a pointer-to-member: ContainingType is the class the
// member belongs to, PointeeType is the member's own type.
type PointerToMember struct {
	ContainingType Id
	PointeeType    Id
}

func (PointerToMember) sealed() {}

// Typedef names ReferredType.
type Typedef struct {
	Name         string
	ReferredType Id
}

func (Typedef) sealed() {}

// Qualified applies a single Qualifier to QualifiedType. Chains of
// qualifiers are chains of Qualified nodes; canonical emission order is
// Restrict innermost, then Volatile, then Const.
type Qualified struct {
	Qualifier     Qualifier
	QualifiedType Id
}

func (Qualified) sealed() {}

// Primitive is a fundamental type with no further structure.
type Primitive struct {
	Name     string
	Encoding PrimitiveEncoding // NoEncoding if unknown
	Bytesize uint32
}

func (Primitive) sealed() {}

// Array is a single-dimension array. Multi-dimensional arrays are chains:
// T[M][N] is an Array of M elements of type Array-of-N-of-T.
type Array struct {
	NumberOfElements uint64
	ElementType      Id
}

func (Array) sealed() {}

// BaseClass is one base-class edge of a StructUnion definition.
type BaseClass struct {
	Type        Id
	OffsetBits  uint64
	Inheritance Inheritance
}

func (BaseClass) sealed() {}

// Method is one method edge of a StructUnion definition.
type Method struct {
	MangledName  string
	Name         string
	Kind         MethodKind
	VtableOffset *uint64 // nil unless Kind == VirtualMethod and known
	Type         Id
}

func (Method) sealed() {}

// Member is one data-member edge of a StructUnion definition. Bitsize == 0
// marks an ordinary (non-bitfield) member.
type Member struct {
	Name       string
	Type       Id
	OffsetBits uint64
	Bitsize    uint64
}

func (Member) sealed() {}

// StructUnionDefinition is present iff the StructUnion is a definition
// rather than a forward declaration.
type StructUnionDefinition struct {
	Bytesize    uint64
	BaseClasses []Id
	Methods     []Id
	Members     []Id
}

// StructUnion is a struct or union, possibly a forward declaration
// (Definition == nil). Empty Name means anonymous.
type StructUnion struct {
	Kind       StructUnionKind
	Name       string
	Definition *StructUnionDefinition
}

func (StructUnion) sealed() {}

// Enumerator is one (name, value) pair of an Enumeration's definition.
type Enumerator struct {
	Name  string
	Value int64
}

// EnumerationDefinition is present iff the Enumeration is a definition
// rather than a forward declaration.
type EnumerationDefinition struct {
	UnderlyingType Id
	Enumerators    []Enumerator
}

// Enumeration is an enum type, possibly a forward declaration
// (Definition == nil). Empty Name means anonymous.
type Enumeration struct {
	Name       string
	Definition *EnumerationDefinition
}

func (Enumeration) sealed() {}

// Function is a function type. The variadic slot, when present, is the
// shared Variadic Id appended to Parameters.
type Function struct {
	ReturnType Id
	Parameters []Id
}

func (Function) sealed() {}

// VersionInfo is an ELF symbol's version metadata.
type VersionInfo struct {
	IsDefault bool
	Name      string
}

// ElfSymbol is one exported or imported ELF symbol.
type ElfSymbol struct {
	SymbolName  string
	VersionInfo *VersionInfo // nil if unversioned
	IsDefined   bool
	SymbolType  SymbolType
	Binding     SymbolBinding
	Visibility  SymbolVisibility
	CRC         *uint32 // nil if unknown
	Namespace   string  // empty if none
	Type        Id      // None if the symbol has no associated type
	FullName    string  // empty if same as SymbolName (e.g. no demangling applied)
}

func (ElfSymbol) sealed() {}

// Interface is the root node of a graph: an ordered mapping of exported
// symbol names to ElfSymbol ids, and an ordered mapping of exported type
// names to type ids. By convention there is at most one Interface per
// graph.
type Interface struct {
	Symbols *OrderedMap
	Types   *OrderedMap
}

func (Interface) sealed() {}
