// Package equality implements structural equality between two (possibly
// distinct) graphs' nodes, with cycle tolerance via a shared SCC tracker
// and a pluggable equality cache.
package equality

import "github.com/stg-tools/stg/graph"

// Pair identifies one (left, right) id comparison. Left comes from the
// Comparator's first graph, right from its second (which may be the same
// graph, e.g. when deduplicating within one graph).
type Pair struct {
	Left  graph.Id
	Right graph.Id
}

// Cache abstracts the equality memo so unification/dedup callers can
// supply a fingerprint-aware union-find cache while tests can use a
// trivial hash-free one.
type Cache interface {
	// Query reports whether (a, b) is already known, and if so, whether
	// they are equal.
	Query(a, b graph.Id) (known, equal bool)
	// AllSame commits every pair in pairs as mutually equal.
	AllSame(pairs []Pair)
	// AllDifferent commits every pair in pairs as mutually unequal.
	AllDifferent(pairs []Pair)
}

// SimpleEqualityCache is a hash-free cache: a plain set of known-equal and
// known-unequal (left, right) pairs, stored in the order given. Suitable for tests and for callers
// without fingerprints available.
type SimpleEqualityCache struct {
	equal   map[Pair]bool
	unequal map[Pair]bool
}

// NewSimpleEqualityCache returns an empty SimpleEqualityCache.
func NewSimpleEqualityCache() *SimpleEqualityCache {
	return &SimpleEqualityCache{equal: map[Pair]bool{}, unequal: map[Pair]bool{}}
}

func (c *SimpleEqualityCache) Query(a, b graph.Id) (bool, bool) {
	p := Pair{a, b}
	if c.equal[p] {
		return true, true
	}
	if c.unequal[p] {
		return true, false
	}
	return false, false
}

func (c *SimpleEqualityCache) AllSame(pairs []Pair) {
	for _, p := range pairs {
		c.equal[p] = true
	}
}

func (c *SimpleEqualityCache) AllDifferent(pairs []Pair) {
	for _, p := range pairs {
		c.unequal[p] = true
	}
}

// nodeRef disambiguates an Id by which side of a Pair it appeared on,
// since the same numeric Id can appear on both the left graph and the
// right graph (or twice in the same graph, for dedup's within-one-graph
// comparisons).
type nodeRef struct {
	side int
	id   graph.Id
}

// HashEqualityCache is the union-find-backed cache used whenever
// fingerprints are available (the common case: resolve and dedup always
// have one). Hashes that differ short-circuit to inequality without
// touching the union-find at all; proven-equal pairs are unioned;
// proven-unequal pairs are recorded symmetrically and merged on union, so
// that inequality knowledge survives later merges of either side.
type HashEqualityCache struct {
	leftHashes, rightHashes map[graph.Id]uint32
	parent                 map[nodeRef]nodeRef
	rank                   map[nodeRef]int
	unequalTo              map[nodeRef]map[nodeRef]bool
}

// NewHashEqualityCache returns a cache that consults leftHashes for ids
// from the comparator's first graph and rightHashes for ids from its
// second (pass the same map twice for a single-graph comparator, e.g.
// dedup).
func NewHashEqualityCache(leftHashes, rightHashes map[graph.Id]uint32) *HashEqualityCache {
	return &HashEqualityCache{
		leftHashes:  leftHashes,
		rightHashes: rightHashes,
		parent:      map[nodeRef]nodeRef{},
		rank:        map[nodeRef]int{},
		unequalTo:   map[nodeRef]map[nodeRef]bool{},
	}
}

func (c *HashEqualityCache) find(n nodeRef) nodeRef {
	if _, ok := c.parent[n]; !ok {
		c.parent[n] = n
		return n
	}
	for c.parent[n] != n {
		// Path halving: point n directly at its grandparent.
		c.parent[n] = c.parent[c.parent[n]]
		n = c.parent[n]
	}
	return n
}

func (c *HashEqualityCache) union(a, b nodeRef) {
	ra, rb := c.find(a), c.find(b)
	if ra == rb {
		return
	}
	if c.rank[ra] < c.rank[rb] {
		ra, rb = rb, ra
	}
	c.parent[rb] = ra
	if c.rank[ra] == c.rank[rb] {
		c.rank[ra]++
	}
	if ineq, ok := c.unequalTo[rb]; ok {
		if c.unequalTo[ra] == nil {
			c.unequalTo[ra] = map[nodeRef]bool{}
		}
		for k := range ineq {
			c.unequalTo[ra][k] = true
		}
		delete(c.unequalTo, rb)
	}
}

func (c *HashEqualityCache) disunion(a, b nodeRef) {
	ra, rb := c.find(a), c.find(b)
	if c.unequalTo[ra] == nil {
		c.unequalTo[ra] = map[nodeRef]bool{}
	}
	if c.unequalTo[rb] == nil {
		c.unequalTo[rb] = map[nodeRef]bool{}
	}
	c.unequalTo[ra][rb] = true
	c.unequalTo[rb][ra] = true
}

func (c *HashEqualityCache) Query(a, b graph.Id) (bool, bool) {
	if h1, ok := c.leftHashes[a]; ok {
		if h2, ok := c.rightHashes[b]; ok && h1 != h2 {
			return true, false
		}
	}
	left, right := nodeRef{0, a}, nodeRef{1, b}
	rl, rr := c.find(left), c.find(right)
	if rl == rr {
		return true, true
	}
	if c.unequalTo[rl] != nil && c.unequalTo[rl][rr] {
		return true, false
	}
	return false, false
}

func (c *HashEqualityCache) AllSame(pairs []Pair) {
	for _, p := range pairs {
		c.union(nodeRef{0, p.Left}, nodeRef{1, p.Right})
	}
}

func (c *HashEqualityCache) AllDifferent(pairs []Pair) {
	for _, p := range pairs {
		c.disunion(nodeRef{0, p.Left}, nodeRef{1, p.Right})
	}
}
