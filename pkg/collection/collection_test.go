package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterAndMap(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5}

	even := Filter(nums, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)

	doubled := Map(even, func(n int) int { return n * 2 })
	assert.Equal(t, []int{4, 8}, doubled)
}

func TestFirst(t *testing.T) {
	nums := []int{1, 2, 3}

	v, ok := First(nums, func(n int) bool { return n > 1 })
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = First(nums, func(n int) bool { return n > 9 })
	assert.False(t, ok)
}

func TestGroupBy(t *testing.T) {
	words := []string{"apple", "avocado", "banana"}
	groups := GroupBy(words, func(w string) string { return w[:1] })

	assert.Len(t, groups["a"], 2)
	assert.Len(t, groups["b"], 1)
}

func TestSortByDoesNotMutateInput(t *testing.T) {
	nums := []int{3, 1, 2}
	sorted := SortBy(nums, func(a, b int) bool { return a < b })

	assert.Equal(t, []int{1, 2, 3}, sorted)
	assert.Equal(t, []int{3, 1, 2}, nums)
}

func TestSum(t *testing.T) {
	prices := []float64{9.5, 20, 12}
	assert.Equal(t, 41.5, Sum(prices, func(p float64) float64 { return p }))
}

func TestPaginate(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Paginate(nums, 1, 2))
	assert.Equal(t, []int{3, 4}, Paginate(nums, 2, 2))
	assert.Equal(t, []int{5}, Paginate(nums, 3, 2))
	assert.Empty(t, Paginate(nums, 4, 2), "past the end")
	assert.Equal(t, []int{1, 2}, Paginate(nums, 0, 2), "page floor of 1")
}
