// Package dedup implements the deduplicator: partition nodes by
// fingerprint, confirm duplicates within each partition by structural
// equality, and rewrite the graph so only one representative of each
// duplicate set survives. It never invents equalities — the equality
// pass is the sole oracle — so at worst it leaves nodes un-deduplicated.
package dedup

import (
	"sort"

	"github.com/stg-tools/stg/equality"
	"github.com/stg-tools/stg/graph"
	"github.com/stg-tools/stg/metrics"
	"github.com/stg-tools/stg/subst"
	"github.com/stg-tools/stg/unify"
)

// sortedIds returns hashes's keys in ascending order. Map iteration order
// is randomized, and every pass here needs a stable, reproducible
// traversal order, so callers sort ids before using them to pick
// representatives or emit output.
func sortedIds(hashes map[graph.Id]uint32) []graph.Id {
	ids := make([]graph.Id, 0, len(hashes))
	for id := range hashes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Deduplicate partitions every id in hashes by fingerprint value, refines
// each partition into clusters of confirmed-equal ids via a
// HashEqualityCache-backed Comparator, rewrites every remaining
// representative node's outgoing references through the resulting
// union-find, and removes every non-representative node. It returns the
// (possibly remapped) root id.
//
// Grounded directly on the reference Deduplicate: partition-by-hash,
// then for each partition repeatedly peel off a candidate and bucket the
// rest into "equal to candidate" (dropped) and "not yet compared" (the
// next round's ids), continuing until each partition is a single id. The
// reference's EqualityCache doubles as its own union-find (cache.Find);
// this port keeps that bookkeeping separate in a dedicated
// unify.UnionFind, since equality's cache is shared, cross-graph-capable
// machinery that does not expose a plain-id "current representative"
// query, while unify.UnionFind already does exactly that.
func Deduplicate(g *graph.Graph, root graph.Id, hashes map[graph.Id]uint32, m *metrics.Metrics) (graph.Id, error) {
	if m == nil {
		m = metrics.New()
	}

	partitions := partitionByHash(hashes, m)

	fingerprintValues := make([]uint32, 0, len(partitions))
	for fp := range partitions {
		fingerprintValues = append(fingerprintValues, fp)
	}
	sort.Slice(fingerprintValues, func(i, j int) bool { return fingerprintValues[i] < fingerprintValues[j] })

	comparator := equality.NewComparator(g, g, equality.NewHashEqualityCache(hashes, hashes))
	uf := unify.New()
	equalities := m.Counter("deduplicate.equalities")
	inequalities := m.Counter("deduplicate.inequalities")

	stop := m.Time("find duplicates")
	for _, fp := range fingerprintValues {
		if err := refinePartition(comparator, uf, partitions[fp], equalities, inequalities); err != nil {
			stop()
			return root, err
		}
	}
	stop()

	return rewrite(g, root, hashes, uf, m)
}

// partitionByHash groups every id in hashes by its fingerprint value. Ids
// within each partition are ordered ascending by Id, so that refinePartition's
// candidate selection (ids[0]) is deterministic given the same input graph.
func partitionByHash(hashes map[graph.Id]uint32, m *metrics.Metrics) map[uint32][]graph.Id {
	stop := m.Time("partition nodes")
	defer stop()

	partitions := map[uint32][]graph.Id{}
	for _, id := range sortedIds(hashes) {
		fp := hashes[id]
		partitions[fp] = append(partitions[fp], id)
	}
	m.Counter("deduplicate.nodes").Set(uint64(len(hashes)))
	m.Counter("deduplicate.hashes").Set(uint64(len(partitions)))

	histogram := m.Histogram("deduplicate.hash_partition_size")
	minComparisons := m.Counter("deduplicate.min_comparisons")
	maxComparisons := m.Counter("deduplicate.max_comparisons")
	for _, ids := range partitions {
		n := uint64(len(ids))
		histogram.Add(n)
		minComparisons.Add(n - 1)
		maxComparisons.Add(n * (n - 1) / 2)
	}
	return partitions
}

// refinePartition repeatedly picks the head of ids as a candidate and
// partitions the rest into "equal to candidate" (each of which is unioned
// onto candidate in uf, so they share its union-find representative) and
// "not yet compared", iterating with the latter until it is empty.
func refinePartition(comparator *equality.Comparator, uf *unify.UnionFind, ids []graph.Id, equalities, inequalities *metrics.Counter) error {
	for len(ids) > 1 {
		candidate := ids[0]
		var todo []graph.Id
		for _, id := range ids[1:] {
			eq, err := comparator.Equals(id, candidate)
			if err != nil {
				return err
			}
			if eq {
				uf.Union(candidate, id)
				equalities.Inc()
			} else {
				todo = append(todo, id)
				inequalities.Inc()
			}
		}
		ids = todo
	}
	return nil
}

// rewrite applies subst.Walk to every id that remains its own
// representative in uf, removes every id that is not, and returns root
// remapped through the same union-find.
func rewrite(g *graph.Graph, root graph.Id, hashes map[graph.Id]uint32, uf *unify.UnionFind, m *metrics.Metrics) (graph.Id, error) {
	stop := m.Time("rewrite")
	defer stop()

	remap := uf.Find
	unique := m.Counter("deduplicate.unique")
	duplicate := m.Counter("deduplicate.duplicate")

	ids := sortedIds(hashes)
	for _, id := range ids {
		if remap(id) != id {
			continue
		}
		if err := subst.Walk(g, id, remap); err != nil {
			return root, err
		}
		unique.Inc()
	}
	for _, id := range ids {
		if remap(id) != id {
			if err := g.Remove(id); err != nil {
				return root, err
			}
			duplicate.Inc()
		}
	}

	newRoot := remap(root)
	g.SetRoot(newRoot)
	return newRoot, nil
}
