package pagination_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/K9173A/todoapp/pagination"
	"github.com/stretchr/testify/assert"
)

func newPaginator(current, total, perPage int) *pagination.Paginator {
	p := pagination.New(perPage)
	p.SetCurrentPage(current)
	p.SetTotalItems(total)
	return p
}

func TestSettersClamp(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	p := pagination.New(0)
	assert.Equal(1, p.ItemsPerPage())
	assert.Equal(1, p.CurrentPage())

	p.SetCurrentPage(-4)
	assert.Equal(1, p.CurrentPage())

	p.SetCurrentPage(0)
	assert.Equal(1, p.CurrentPage())

	p.SetCurrentPage(7)
	assert.Equal(7, p.CurrentPage())

	p.SetTotalItems(-1)
	assert.Equal(0, p.TotalItems())

	p.SetItemsPerPage(-10)
	assert.Equal(1, p.ItemsPerPage())
}

func TestOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		current, perPage, want int
	}{
		{1, 5, 0},
		{2, 5, 5},
		{3, 5, 10},
		{10, 1, 9},
		{0, 5, 0},
		{-3, 5, 0},
		{math.MaxInt, 5, (math.MaxInt/5 - 1) * 5},
		{math.MaxInt, 1, math.MaxInt - 1},
	}

	for _, tt := range tests {
		p := newPaginator(tt.current, 100, tt.perPage)
		assert.Equal(t, tt.want, p.Offset(), "page %d per page %d", tt.current, tt.perPage)
	}
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total, perPage, want int
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{12, 5, 3},
		{15, 5, 3},
		{16, 5, 4},
		{7, 1, 7},
	}

	for _, tt := range tests {
		p := newPaginator(1, tt.total, tt.perPage)
		assert.Equal(t, tt.want, p.TotalPages(), "total %d per page %d", tt.total, tt.perPage)
	}
}

func TestWindowFirstPage(t *testing.T) {
	t.Parallel()

	p := newPaginator(1, 12, 5)

	assert.Equal(t, 3, p.TotalPages())
	assert.Equal(t, pagination.Window{Previous: []int{}, Current: 1, Next: []int{2, 3}}, p.Window(3))
}

func TestWindowLastPage(t *testing.T) {
	t.Parallel()

	p := newPaginator(3, 15, 5)

	assert.Equal(t, pagination.Window{Previous: []int{1, 2}, Current: 3, Next: []int{}}, p.Window(3))
}

func TestWindowMiddle(t *testing.T) {
	t.Parallel()

	p := newPaginator(6, 100, 5)

	w := p.Window(3)
	assert.Equal(t, []int{3, 4, 5}, w.Previous)
	assert.Equal(t, 6, w.Current)
	assert.Equal(t, []int{7, 8, 9}, w.Next)

	w = p.Window(1)
	assert.Equal(t, []int{5}, w.Previous)
	assert.Equal(t, []int{7}, w.Next)

	w = p.Window(0)
	assert.Empty(t, w.Previous)
	assert.Empty(t, w.Next)

	w = p.Window(-2)
	assert.Empty(t, w.Previous)
	assert.Empty(t, w.Next)
}

func TestWindowEmptyList(t *testing.T) {
	t.Parallel()

	p := newPaginator(1, 0, 5)

	assert.Equal(t, pagination.Window{Previous: []int{}, Current: 1, Next: []int{}}, p.Window(3))
}

func TestWindowPastLastPage(t *testing.T) {
	t.Parallel()

	p := newPaginator(5, 12, 5)

	w := p.Window(3)
	assert.Equal(t, []int{2, 3}, w.Previous)
	assert.Empty(t, w.Next)
}

func TestWindowBounds(t *testing.T) {
	t.Parallel()

	for perPage := 1; perPage <= 6; perPage++ {
		for total := 0; total <= 40; total++ {
			for current := 1; current <= 12; current++ {
				for r := 0; r <= 4; r++ {
					p := newPaginator(current, total, perPage)
					w := p.Window(r)
					last := p.TotalPages()
					name := fmt.Sprintf("per=%d total=%d cur=%d r=%d", perPage, total, current, r)

					assert.GreaterOrEqual(t, p.Offset(), 0, name)
					assert.Equal(t, (current-1)*perPage, p.Offset(), name)
					assert.LessOrEqual(t, len(w.Previous), r, name)
					assert.LessOrEqual(t, len(w.Next), r, name)

					for _, n := range append(append([]int{}, w.Previous...), w.Next...) {
						assert.GreaterOrEqual(t, n, 1, name)
						assert.LessOrEqual(t, n, last, name)
						assert.NotEqual(t, current, n, name)
					}
					for i := 1; i < len(w.Previous); i++ {
						assert.Equal(t, w.Previous[i-1]+1, w.Previous[i], name)
					}
					for i := 1; i < len(w.Next); i++ {
						assert.Equal(t, w.Next[i-1]+1, w.Next[i], name)
					}
					for _, n := range w.Previous {
						assert.Less(t, n, current, name)
					}
					for _, n := range w.Next {
						assert.Greater(t, n, current, name)
					}
				}
			}
		}
	}
}

func TestHugePageStaysInRange(t *testing.T) {
	t.Parallel()

	for _, perPage := range []int{1, 5, 7, 1000} {
		p := newPaginator(math.MaxInt, 12, perPage)
		name := fmt.Sprintf("per=%d", perPage)

		assert.Equal(t, math.MaxInt/perPage, p.CurrentPage(), name)
		assert.GreaterOrEqual(t, p.Offset(), 0, name)

		w := p.Window(3)
		assert.Empty(t, w.Next, name)
		for _, n := range w.Previous {
			assert.GreaterOrEqual(t, n, 1, name)
			assert.LessOrEqual(t, n, p.TotalPages(), name)
		}
	}
}

func TestWindowHugeTotal(t *testing.T) {
	t.Parallel()

	p := newPaginator(math.MaxInt-1, math.MaxInt, 1)

	w := p.Window(3)
	assert.Equal(t, []int{math.MaxInt - 4, math.MaxInt - 3, math.MaxInt - 2}, w.Previous)
	assert.Equal(t, []int{math.MaxInt}, w.Next)
	assert.Equal(t, math.MaxInt, p.TotalPages())
}

func TestSetItemsPerPageReclampsPage(t *testing.T) {
	t.Parallel()

	p := newPaginator(math.MaxInt, 0, 1)
	p.SetItemsPerPage(10)

	assert.Equal(t, math.MaxInt/10, p.CurrentPage())
	assert.GreaterOrEqual(t, p.Offset(), 0)
}

func TestClampToLastPage(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	p := newPaginator(4, 15, 5)
	p.ClampToLastPage()
	assert.Equal(3, p.CurrentPage())

	p = newPaginator(2, 15, 5)
	p.ClampToLastPage()
	assert.Equal(2, p.CurrentPage())

	p = newPaginator(3, 0, 5)
	p.ClampToLastPage()
	assert.Equal(3, p.CurrentPage())
}
