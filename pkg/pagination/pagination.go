// Package pagination slices ordered in-memory sequences into fixed-size pages.
package pagination

// DefaultPageSize matches the notice board's five-per-page layout.
const DefaultPageSize = 5

// Paginate returns the items of the 1-indexed page, i.e. items[(page-1)*size : page*size].
// Pages outside the available range yield an empty slice.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages returns ceil(count/size).
func TotalPages(count, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if count <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// Pager tracks the current page of a list view.
// Next and Prev are no-ops at the boundaries.
//
// The server itself pages with Paginate and TotalPages; Pager is exported for
// Go clients of the notice API that step through a listing page by page and
// reset when the selected date or month changes.
type Pager struct {
	size  int
	count int
	page  int
}

// NewPager builds a pager positioned on page 1.
func NewPager(size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{size: size, page: 1}
}

// Page returns the current 1-indexed page.
func (p *Pager) Page() int { return p.page }

// Size returns the page size.
func (p *Pager) Size() int { return p.size }

// TotalPages returns the number of pages for the current item count.
func (p *Pager) TotalPages() int { return TotalPages(p.count, p.size) }

// HasNext reports whether Next would move.
func (p *Pager) HasNext() bool { return p.page < p.TotalPages() }

// HasPrev reports whether Prev would move.
func (p *Pager) HasPrev() bool { return p.page > 1 }

// Next advances one page, clamped at the last page.
func (p *Pager) Next() int {
	if p.HasNext() {
		p.page++
	}
	return p.page
}

// Prev goes back one page, clamped at page 1.
func (p *Pager) Prev() int {
	if p.HasPrev() {
		p.page--
	}
	return p.page
}

// Reset returns to page 1. Used when the selected date or month changes.
func (p *Pager) Reset() {
	p.page = 1
}

// SetTotal records a freshly fetched item count and resets to page 1.
func (p *Pager) SetTotal(count int) {
	if count < 0 {
		count = 0
	}
	p.count = count
	p.Reset()
}

// Window returns the half-open item index range [start, end) of the current page.
func (p *Pager) Window() (start, end int) {
	start = (p.page - 1) * p.size
	end = start + p.size
	if end > p.count {
		end = p.count
	}
	if start > end {
		start = end
	}
	return start, end
}
