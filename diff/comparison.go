// Package diff implements the differ: an SCC-tolerant structural
// comparison of two graphs producing a diff graph addressed by pairs of
// (possibly absent) ids, the same pattern equality uses for single-graph
// structural equality, generalised to record what changed rather than
// merely whether.
package diff

import "github.com/stg-tools/stg/graph"

// Comparison is one node of the diff graph: a pair of ids, either of
// which may be graph.None to mean "absent on this side" (an addition or
// a removal). Comparison is comparable and usable as a map key, mirroring
// the reference's std::pair<optional<Id>, optional<Id>> plus hash.
type Comparison struct {
	Left, Right graph.Id
}

// DiffDetail is one line of a Diff: either a scalar attribute change
// (Edge is nil) or a pointer to a nested Comparison this detail concerns.
type DiffDetail struct {
	Text string
	Edge *Comparison
}

// Diff is the diff record attached to one Comparison.
type Diff struct {
	// HoldsChanges marks this Comparison as a reportable boundary: it has
	// a name of its own, or is a symbol/interface, so changes nested
	// below it should be attributed to it rather than bubbled further up.
	HoldsChanges bool
	// HasChanges marks at least one local (non-recursive) attribute
	// difference at this Comparison.
	HasChanges bool
	Details    []DiffDetail
}

func (d *Diff) add(text string, edge *Comparison) {
	d.Details = append(d.Details, DiffDetail{Text: text, Edge: edge})
}

// result accumulates one node comparison's outcome while it is being
// built, mirroring the reference Result's Mark/Add/MaybeAdd helpers.
type result struct {
	equals bool
	diff   Diff
}

func newResult() result {
	return result{equals: true}
}

// markIncomparable records that two nodes could not be meaningfully
// compared (a variant or key mismatch): definitely unequal, no further
// recursion.
func (r *result) markIncomparable() {
	r.equals = false
	r.diff.HasChanges = true
}

// addNodeDiff records a definite, purely local attribute change.
func (r *result) addNodeDiff(text string) {
	r.equals = false
	r.diff.HasChanges = true
	r.diff.add(text, nil)
}

// addEdgeDiff records a removed or added child (no "maybe" about it).
func (r *result) addEdgeDiff(text string, c Comparison) {
	r.equals = false
	r.diff.add(text, &c)
}

// maybeAddEdgeDiff folds in a recursive comparison's outcome: equals is
// ANDed in, and a detail is recorded only if the recursive call produced
// one (i.e. the pair is not already known-equal-and-closed).
func (r *result) maybeAddEdgeDiff(text string, equals bool, edge *Comparison) {
	r.equals = r.equals && equals
	if edge != nil {
		r.diff.add(text, edge)
	}
}
