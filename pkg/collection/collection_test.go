package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sale struct {
	Category string
	Amount   float64
}

func TestMapFilter(t *testing.T) {
	nums := []int{1, 2, 3, 4}

	doubled := Map(nums, func(n int) int { return n * 2 })
	assert.Equal(t, []int{2, 4, 6, 8}, doubled)

	even := Filter(nums, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)

	assert.Nil(t, Filter(nums, func(n int) bool { return n > 10 }))
}

func TestFirstContains(t *testing.T) {
	sales := []sale{{"Saree", 8000}, {"Kurti", 1200}}

	got, ok := First(sales, func(s sale) bool { return s.Category == "Kurti" })
	assert.True(t, ok)
	assert.Equal(t, 1200.0, got.Amount)

	_, ok = First(sales, func(s sale) bool { return s.Category == "Lehenga" })
	assert.False(t, ok)

	assert.True(t, Contains(sales, func(s sale) bool { return s.Amount > 5000 }))
}

func TestGroupBySum(t *testing.T) {
	sales := []sale{{"Saree", 8000}, {"Kurti", 1200}, {"Saree", 6000}}

	grouped := GroupBy(sales, func(s sale) string { return s.Category })
	assert.Len(t, grouped, 2)
	assert.Len(t, grouped["Saree"], 2)

	assert.InDelta(t, 15200, Sum(sales, func(s sale) float64 { return s.Amount }), 0.0001)
	assert.InDelta(t, 14000, Sum(grouped["Saree"], func(s sale) float64 { return s.Amount }), 0.0001)
}

func TestKeyByUnique(t *testing.T) {
	sales := []sale{{"Saree", 8000}, {"Kurti", 1200}, {"Saree", 6000}}

	keyed := KeyBy(sales, func(s sale) string { return s.Category })
	assert.Len(t, keyed, 2)
	assert.Equal(t, 6000.0, keyed["Saree"].Amount) // last wins

	assert.Equal(t, []string{"a", "b", "c"}, Unique([]string{"a", "b", "a", "c", "b"}))
}

func TestSortByChunk(t *testing.T) {
	nums := []int{3, 1, 2}
	SortBy(nums, func(a, b int) bool { return a < b })
	assert.Equal(t, []int{1, 2, 3}, nums)

	chunks := Chunk([]int{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, chunks)

	assert.Nil(t, Chunk([]int{1}, 0))
}
