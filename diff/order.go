package diff

import "sort"

// ExtendOrder updates indexes1 with items from indexes2, incorporating as
// much of the latter's order as is compatible, and returns the result.
//
// The two orderings are reconciled by starting with indexes1 and greedily
// inserting new items from indexes2, in a position which satisfies that
// ordering, if possible.
//
// Example: indexes1 = [rose, george, emily], indexes2 = [george, ted, emily]
// yields [rose, george, ted, emily].
func ExtendOrder[T comparable](indexes1, indexes2 []T) []T {
	pos := 0
	for _, value := range indexes2 {
		found := -1
		for i, v := range indexes1 {
			if v == value {
				found = i
				break
			}
		}
		if found == -1 {
			indexes1 = append(indexes1, value)
			copy(indexes1[pos+1:], indexes1[pos:])
			indexes1[pos] = value
			pos++
		} else if pos <= found {
			pos = found + 1
		}
	}
	return indexes1
}

// Permute reorders data in place according to permutation: each
// data[i] <- data[permutation[i]], and permutation is restored to the
// identity as a side effect. data and permutation must be the same
// length, and permutation must contain every value in [0, len).
func Permute[T any](data []T, permutation []int) {
	size := len(permutation)
	for from := 0; from < size; from++ {
		to := from
		for permutation[to] != from {
			data[to], data[permutation[to]] = data[permutation[to]], data[to]
			to, permutation[to] = permutation[to], to
		}
		permutation[to] = to
	}
}

// Match is one element of a Reorder input: the (possibly absent) index
// of this item in each of the two original orderings being reconciled.
type Match struct {
	Index1, Index2 *int
}

// Reorder permutes data in place according to its implicit ordering
// constraints. At least one of Index1/Index2 must be non-nil per element.
// The first ordering (Index1) takes precedence in the event of a
// conflict; ExtendOrder and Permute do the real work.
func Reorder(data []Match) {
	type posIdx struct{ pos, idx int }
	positions1 := make([]posIdx, 0, len(data))
	positions2 := make([]posIdx, 0, len(data))
	for index, m := range data {
		if m.Index1 == nil && m.Index2 == nil {
			panic("diff: Reorder: constraint with no positions")
		}
		if m.Index1 != nil {
			positions1 = append(positions1, posIdx{*m.Index1, index})
		}
		if m.Index2 != nil {
			positions2 = append(positions2, posIdx{*m.Index2, index})
		}
	}
	sort.SliceStable(positions1, func(i, j int) bool { return positions1[i].pos < positions1[j].pos })
	sort.SliceStable(positions2, func(i, j int) bool { return positions2[i].pos < positions2[j].pos })

	indexes1 := make([]int, 0, len(positions1))
	for _, p := range positions1 {
		indexes1 = append(indexes1, p.idx)
	}
	indexes2 := make([]int, 0, len(positions2))
	for _, p := range positions2 {
		indexes2 = append(indexes2, p.idx)
	}
	indexes1 = ExtendOrder(indexes1, indexes2)
	Permute(data, indexes1)
}
