package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginateTwelveByFive(t *testing.T) {
	items := seq(12)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, Paginate(items, 1, 5))
	assert.Equal(t, []int{6, 7, 8, 9, 10}, Paginate(items, 2, 5))
	assert.Equal(t, []int{11, 12}, Paginate(items, 3, 5))
	assert.Equal(t, 3, TotalPages(len(items), 5))
}

func TestPaginateOutOfRange(t *testing.T) {
	items := seq(3)

	assert.Empty(t, Paginate(items, 0, 5))
	assert.Empty(t, Paginate(items, 2, 5))
	assert.Empty(t, Paginate([]int(nil), 1, 5))
	assert.Equal(t, 0, TotalPages(0, 5))
}

func TestPaginateDefaultsSize(t *testing.T) {
	assert.Len(t, Paginate(seq(12), 1, 0), DefaultPageSize)
	assert.Equal(t, 3, TotalPages(12, -1))
}

func TestPagerTransitions(t *testing.T) {
	p := NewPager(5)
	p.SetTotal(12)
	require.Equal(t, 1, p.Page())
	require.Equal(t, 3, p.TotalPages())

	assert.Equal(t, 1, p.Prev(), "prev is clamped at page 1")
	assert.Equal(t, 2, p.Next())
	assert.Equal(t, 3, p.Next())
	assert.Equal(t, 3, p.Next(), "next is clamped at the last page")
	assert.False(t, p.HasNext())

	start, end := p.Window()
	assert.Equal(t, 10, start)
	assert.Equal(t, 12, end)

	p.Reset()
	assert.Equal(t, 1, p.Page())

	p.Next()
	p.SetTotal(3)
	assert.Equal(t, 1, p.Page(), "new data resets to page 1")
	assert.Equal(t, 1, p.TotalPages())
}

func TestPagerEmpty(t *testing.T) {
	p := NewPager(0)
	p.SetTotal(0)

	assert.Equal(t, DefaultPageSize, p.Size())
	assert.Equal(t, 1, p.Next())
	start, end := p.Window()
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}
