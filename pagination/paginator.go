// Package pagination computes page offsets, page-number windows and the
// links between pages of the task list. A Paginator is built for a single
// request and never shared.
package pagination

import "math"

const (
	// DefaultItemsPerPage is the page size used when none is configured.
	DefaultItemsPerPage = 5
	// DefaultRange is how many page numbers are shown on each side of the
	// current page.
	DefaultRange = 3
)

// Window is the set of page numbers surrounding the current page.
type Window struct {
	Previous []int
	Current  int
	Next     []int
}

// Paginator holds the three inputs of the page arithmetic plus the state
// needed to compose links back to the list.
type Paginator struct {
	currentPage  int
	itemsPerPage int
	totalItems   int

	baseURL string
	sort    Sort
	extra   map[string]string
}

// New returns a Paginator on page 1 with the given page size, sorted by
// newest first.
func New(itemsPerPage int) *Paginator {
	p := &Paginator{
		currentPage: 1,
		baseURL:     "/p/",
		sort:        sorts[Newest],
		extra:       map[string]string{},
	}
	p.SetItemsPerPage(itemsPerPage)
	return p
}

// SetCurrentPage stores n, clamping non-positive values to 1 and values
// past MaxPage to MaxPage.
func (p *Paginator) SetCurrentPage(n int) {
	if n < 1 {
		n = 1
	}
	if limit := p.MaxPage(); n > limit {
		n = limit
	}
	p.currentPage = n
}

// MaxPage is the highest page whose offset still fits in an int.
func (p *Paginator) MaxPage() int {
	return math.MaxInt / p.itemsPerPage
}

// SetTotalItems stores n, clamping negative values to 0.
func (p *Paginator) SetTotalItems(n int) {
	if n < 0 {
		n = 0
	}
	p.totalItems = n
}

// SetItemsPerPage stores n, clamping non-positive values to 1. The current
// page is clamped again to the new MaxPage.
func (p *Paginator) SetItemsPerPage(n int) {
	if n < 1 {
		n = 1
	}
	p.itemsPerPage = n
	p.SetCurrentPage(p.currentPage)
}

// CurrentPage returns the 1-based page being shown.
func (p *Paginator) CurrentPage() int { return p.currentPage }

// ItemsPerPage returns the page size.
func (p *Paginator) ItemsPerPage() int { return p.itemsPerPage }

// TotalItems returns the number of items in the whole list.
func (p *Paginator) TotalItems() int { return p.totalItems }

// Offset is the number of items preceding the current page.
func (p *Paginator) Offset() int {
	return (p.currentPage - 1) * p.itemsPerPage
}

// TotalPages is ceil(totalItems / itemsPerPage).
func (p *Paginator) TotalPages() int {
	pages := p.totalItems / p.itemsPerPage
	if p.totalItems%p.itemsPerPage != 0 {
		pages++
	}
	return pages
}

// ClampToLastPage moves the current page back onto the last page when it has
// run past the end of a non-empty list.
func (p *Paginator) ClampToLastPage() {
	if last := p.TotalPages(); last > 0 && p.currentPage > last {
		p.currentPage = last
	}
}

// Window returns up to r page numbers on each side of the current page. The
// returned numbers are ascending, exclude the current page and stay within
// [1, TotalPages()].
func (p *Paginator) Window(r int) Window {
	if r < 0 {
		r = 0
	}
	last := p.TotalPages()

	w := Window{
		Previous: []int{},
		Current:  p.currentPage,
		Next:     []int{},
	}

	for n, hi := max(1, p.currentPage-r), min(p.currentPage-1, last); n <= hi; n++ {
		w.Previous = append(w.Previous, n)
	}
	if p.currentPage < last {
		hi := last
		if r < last-p.currentPage {
			hi = p.currentPage + r
		}
		for i := 1; i <= hi-p.currentPage; i++ {
			w.Next = append(w.Next, p.currentPage+i)
		}
	}

	return w
}
