package diff

import (
	"sort"

	"github.com/stg-tools/stg/graph"
	"github.com/stg-tools/stg/metrics"
	"github.com/stg-tools/stg/scc"
)

// Compare runs the SCC-tolerant structural comparison between Left and
// Right, accumulating every non-equal Comparison's Diff into Outcomes.
// The overall shape mirrors equality.Comparator closely: both pass
// through a cache-then-SCC-tracker recursion, differing in that Compare
// records what changed rather than only whether.
type Compare struct {
	Left, Right *graph.Graph
	Options     Options

	known       map[Comparison]bool
	tentative   map[Comparison]bool
	provisional map[Comparison]Diff
	outcomes    map[Comparison]Diff
	tracker     *scc.Tracker[Comparison]

	queried         *metrics.Counter
	alreadyCompared *metrics.Counter
	beingCompared   *metrics.Counter
	reallyCompared  *metrics.Counter
	equivalent      *metrics.Counter
	inequivalent    *metrics.Counter
	sccSize         *metrics.Histogram
}

// NewCompare returns a Compare ready to diff ids drawn from left and
// right. m may be nil, in which case metrics are discarded.
func NewCompare(left, right *graph.Graph, opts Options, m *metrics.Metrics) *Compare {
	if m == nil {
		m = metrics.New()
	}
	return &Compare{
		Left:        left,
		Right:       right,
		Options:     opts,
		known:       map[Comparison]bool{},
		tentative:   map[Comparison]bool{},
		provisional: map[Comparison]Diff{},
		outcomes:    map[Comparison]Diff{},
		tracker:     scc.New[Comparison](),

		queried:         m.Counter("compare.queried"),
		alreadyCompared: m.Counter("compare.already_compared"),
		beingCompared:   m.Counter("compare.being_compared"),
		reallyCompared:  m.Counter("compare.really_compared"),
		equivalent:      m.Counter("compare.equivalent"),
		inequivalent:    m.Counter("compare.inequivalent"),
		sccSize:         m.Histogram("compare.scc_size"),
	}
}

// Outcomes returns every Comparison found to be unequal, with its Diff.
// Equal comparisons are never recorded, matching the reference (there is
// nothing to report about them).
func (c *Compare) Outcomes() map[Comparison]Diff {
	return c.outcomes
}

// Compare reports whether id1 (in Left) and id2 (in Right) are
// structurally equal, along with the Comparison to look up in Outcomes()
// when they are not (nil when they are).
func (c *Compare) Compare(id1, id2 graph.Id) (bool, *Comparison, error) {
	return c.compare(nil, id1, id2)
}

// Removed records that id (in Left) has no counterpart in Right.
func (c *Compare) Removed(id graph.Id) Comparison {
	comparison := Comparison{Left: id, Right: graph.None}
	c.outcomes[comparison] = Diff{}
	return comparison
}

// Added records that id (in Right) has no counterpart in Left.
func (c *Compare) Added(id graph.Id) Comparison {
	comparison := Comparison{Left: graph.None, Right: id}
	c.outcomes[comparison] = Diff{}
	return comparison
}

// compare is the SCC-tolerant recursive core:
//  1. consult known (a closed result),
//  2. open the pair in the SCC tracker; a back-edge returns tentative-true,
//  3. resolve qualifiers/typedefs, then dispatch on matched variants,
//  4. on closing an SCC, commit the aggregate outcome to known/outcomes.
func (c *Compare) compare(parent *Comparison, a, b graph.Id) (bool, *Comparison, error) {
	comparison := Comparison{Left: a, Right: b}
	c.queried.Inc()

	if equal, known := c.known[comparison]; known {
		c.alreadyCompared.Inc()
		if equal {
			return true, nil, nil
		}
		return false, &comparison, nil
	}

	status := c.tracker.Open(comparison)
	if status == scc.Open {
		c.beingCompared.Inc()
		if parent != nil {
			c.tracker.RelaxBackEdge(*parent, comparison)
		}
		return true, &comparison, nil
	}
	c.reallyCompared.Inc()

	r, err := c.compareOne(comparison, a, b)
	if err != nil {
		return false, nil, err
	}

	c.tentative[comparison] = r.equals
	c.provisional[comparison] = r.diff
	if parent != nil {
		c.tracker.RelaxChild(*parent, comparison)
	}

	component, trivial, isRoot := c.tracker.Close(comparison)
	if !isRoot {
		if r.equals {
			return true, &comparison, nil
		}
		return false, &comparison, nil
	}

	equals := true
	for _, member := range component {
		if !c.tentative[member] {
			equals = false
			break
		}
	}
	if !trivial {
		c.sccSize.Add(uint64(len(component)))
	}
	c.commit(equals, component)
	if equals {
		c.equivalent.Inc()
		return true, nil, nil
	}
	c.inequivalent.Inc()
	return false, &comparison, nil
}

// commit records the final equal/unequal verdict for every member of a
// closed component, moving their diffs from provisional into known and
// (if unequal) outcomes.
func (c *Compare) commit(equals bool, component []Comparison) {
	for _, member := range component {
		c.known[member] = equals
		diff := c.provisional[member]
		delete(c.provisional, member)
		delete(c.tentative, member)
		if !equals {
			c.outcomes[member] = diff
		}
	}
}

func sortedQualifiers(quals map[graph.Qualifier]bool) []graph.Qualifier {
	out := make([]graph.Qualifier, 0, len(quals))
	for q := range quals {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
