package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stg-tools/stg/diff"
)

func TestExtendOrderInsertsNewItemsAtConsistentPosition(t *testing.T) {
	indexes1 := []string{"rose", "george", "emily"}
	indexes2 := []string{"george", "ted", "emily"}

	got := diff.ExtendOrder(indexes1, indexes2)
	assert.Equal(t, []string{"rose", "george", "ted", "emily"}, got)
}

func TestExtendOrderLeavesIdenticalOrderUnchanged(t *testing.T) {
	indexes1 := []string{"a", "b", "c"}
	indexes2 := []string{"a", "b", "c"}

	got := diff.ExtendOrder(indexes1, indexes2)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestExtendOrderInsertsWhollyNewItemsFirst(t *testing.T) {
	indexes1 := []string{"a", "b"}
	indexes2 := []string{"c", "d"}

	got := diff.ExtendOrder(indexes1, indexes2)
	assert.Equal(t, []string{"c", "d", "a", "b"}, got)
}

func TestPermuteReordersDataInPlace(t *testing.T) {
	data := []string{"a", "b", "c", "d"}
	permutation := []int{2, 0, 3, 1}

	diff.Permute(data, permutation)

	assert.Equal(t, []string{"c", "a", "d", "b"}, data)
}

func TestPermuteIdentityIsNoop(t *testing.T) {
	data := []string{"a", "b", "c"}
	permutation := []int{0, 1, 2}

	diff.Permute(data, permutation)

	assert.Equal(t, []string{"a", "b", "c"}, data)
}

func intPtr(i int) *int { return &i }

func TestReorderMatchedPairsFollowLeftOrderWhenConsistent(t *testing.T) {
	data := []diff.Match{
		{Index1: intPtr(0), Index2: intPtr(0)},
		{Index1: intPtr(1), Index2: intPtr(1)},
		{Index1: intPtr(2), Index2: intPtr(2)},
	}

	diff.Reorder(data)

	assert.Equal(t, 0, *data[0].Index1)
	assert.Equal(t, 1, *data[1].Index1)
	assert.Equal(t, 2, *data[2].Index1)
}

func TestReorderInsertsAddedItemNearItsRightPosition(t *testing.T) {
	// Left order: rose, emily. Right order: rose, ted, emily.
	data := []diff.Match{
		{Index1: intPtr(0), Index2: intPtr(0)}, // rose
		{Index2: intPtr(1)},                    // ted, added
		{Index1: intPtr(1), Index2: intPtr(2)}, // emily
	}

	diff.Reorder(data)

	// ted should land between rose and emily, not at the end.
	var order []string
	for _, m := range data {
		switch {
		case m.Index1 != nil && m.Index2 != nil:
			if *m.Index1 == 0 {
				order = append(order, "rose")
			} else {
				order = append(order, "emily")
			}
		case m.Index2 != nil:
			order = append(order, "ted")
		}
	}
	assert.Equal(t, []string{"rose", "ted", "emily"}, order)
}

func TestReorderPanicsOnConstraintWithNoPositions(t *testing.T) {
	data := []diff.Match{{}}
	assert.Panics(t, func() { diff.Reorder(data) })
}
