package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10), "an empty list still has one page")
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 3, TotalPages(25, 0), "non-positive size falls back to the default")
}

func TestPaginate_TwentyFiveItems(t *testing.T) {
	items := seq(25)

	page1, info1 := Paginate(items, 1, DefaultPageSize)
	assert.Len(t, page1, 10)
	assert.Equal(t, 0, page1[0])
	assert.Equal(t, 3, info1.TotalPages)
	assert.False(t, info1.HasPrev, "prev is disabled on the first page")
	assert.True(t, info1.HasNext)

	page3, info3 := Paginate(items, 3, DefaultPageSize)
	assert.Equal(t, []int{20, 21, 22, 23, 24}, page3)
	assert.True(t, info3.HasPrev)
	assert.False(t, info3.HasNext, "next is disabled on the last page")
	assert.Equal(t, 25, info3.TotalItems)
}

func TestPaginate_OutOfRangeAndEmpty(t *testing.T) {
	page, info := Paginate(seq(25), 4, 10)
	assert.Empty(t, page)
	assert.False(t, info.HasNext)

	empty, info := Paginate([]string{}, 1, 10)
	assert.Empty(t, empty)
	assert.Equal(t, 1, info.TotalPages)
	assert.False(t, info.HasPrev)
	assert.False(t, info.HasNext)

	clamped, info := Paginate(seq(5), 0, 10)
	assert.Len(t, clamped, 5)
	assert.Equal(t, 1, info.Page)
}

func TestPaginate_DoesNotAliasInput(t *testing.T) {
	items := seq(3)
	page, _ := Paginate(items, 1, 10)
	page[0] = 99
	assert.Equal(t, 0, items[0])
}

func TestBounds(t *testing.T) {
	start, end := Bounds(25, 3, 10)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = Bounds(25, 7, 10)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)
}
