package fingerprint

// mixer implements the hash-prospector/FNV-1a/Boost-combine construction
// the SCC-fallback and todo-queue semantics in this package are defined
// against. It is deliberately hand-rolled rather than delegated to a
// third-party hash library: the fallback value assigned to a non-trivial
// SCC is derived from this exact mixing shape, and swapping primitives
// would change the fingerprint values that dedup partitions on (see
// DESIGN.md).
type mixer struct{}

// mixUint32 applies the hash-prospector finalizer.
// See https://github.com/skeeto/hash-prospector.
func (mixer) mixUint32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x21f0aaad
	x ^= x >> 15
	x *= 0xd35a2d97
	x ^= x >> 15
	return x
}

func (m mixer) mixUint64(x uint64) uint32 {
	lo := uint32(x)
	hi := uint32(x >> 32)
	return m.combine2(lo, hi)
}

func (m mixer) mixBool(b bool) uint32 {
	if b {
		return m.mixUint32(1)
	}
	return m.mixUint32(0)
}

// hashString is 32-bit FNV-1a.
// See https://wikipedia.org/wiki/Fowler-Noll-Vo_hash_function.
func (mixer) hashString(s string) uint32 {
	h := uint32(0x811c9dc5)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 0x01000193
	}
	return h
}

// combine mixes a variadic sequence of already-hashed uint32 values using
// a reverse-order Boost-style hash_combine, matching the reference mixer
// exactly so that tag-byte + scalar + child-hash sequences produce the
// same family of values the SCC-fallback derivation expects.
func (m mixer) combine(values ...uint32) uint32 {
	if len(values) == 0 {
		return 0
	}
	seed := values[len(values)-1]
	for i := len(values) - 2; i >= 0; i-- {
		seed = values[i] ^ (seed + 0x9e3779b9 + (seed << 6) + (seed >> 2))
	}
	return seed
}

func (m mixer) combine2(a, b uint32) uint32 {
	return m.combine(a, b)
}

// Tag is a stable per-variant mixing seed. The exact numbering
// only needs to be internally consistent and stable across a process
// run; it is never persisted (the wire codec uses its own sha256 digest,
// not fingerprint values, for cross-run stability).
type Tag uint32

const (
	TagVoid Tag = iota
	TagVariadic
	TagPointerReference
	TagPointerToMember
	TagTypedef
	TagQualified
	TagPrimitive
	TagArray
	TagBaseClass
	TagMethod
	TagMember
	TagStructUnion
	TagEnumeration
	TagFunction
	TagElfSymbol
	TagInterface
)
