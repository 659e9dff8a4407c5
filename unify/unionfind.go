// Package unify implements forward-declaration resolution: merging a
// forward declaration with its definition (and declarations with
// declarations of the same named type) via a union-find over Ids.
package unify

import "github.com/stg-tools/stg/graph"

// UnionFind accumulates a directed id substitution: Union(keep, drop)
// records that drop should be replaced by keep everywhere. Unlike a
// classic rank-balanced union-find, merges here are directional (the
// caller always knows which side should win — the defined side over the
// declared side, or the first-seen definition over a later duplicate),
// so there is no rank heuristic to omit; only path halving on Find is
// needed for amortised near-O(1) lookups.
type UnionFind struct {
	parent map[graph.Id]graph.Id
}

// New returns an empty UnionFind.
func New() *UnionFind {
	return &UnionFind{parent: map[graph.Id]graph.Id{}}
}

// Find returns id's current representative, applying path halving.
func (u *UnionFind) Find(id graph.Id) graph.Id {
	p, ok := u.parent[id]
	if !ok {
		return id
	}
	for {
		gp, ok := u.parent[p]
		if !ok {
			break
		}
		u.parent[id] = gp // path halving
		id, p = p, gp
	}
	return p
}

// Union records that drop's representative becomes keep's representative.
// keep is never replaced by this call; if keep itself already has a
// representative (from an earlier merge), drop is mapped onto that
// representative instead, preserving transitivity.
func (u *UnionFind) Union(keep, drop graph.Id) {
	keepRep := u.Find(keep)
	dropRep := u.Find(drop)
	if keepRep == dropRep {
		return
	}
	u.parent[dropRep] = keepRep
}

// Mapping is a proposed (not yet committed) set of Union calls. Unify
// builds one per attempt; the caller applies it via Commit only if the
// whole attempt succeeds, matching the "tentative mapping... committed
// only if the entire attempt succeeds" rule.
type Mapping []Merge

// Merge is one proposed Union(Keep, Drop) call.
type Merge struct {
	Keep, Drop graph.Id
}

// Commit applies every merge in m to u.
func (u *UnionFind) Commit(m Mapping) {
	for _, merge := range m {
		u.Union(merge.Keep, merge.Drop)
	}
}
