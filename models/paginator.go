package models

// Paginator computes the row window for a requested page. The requested
// page is clamped to [1, last]; a zero total still yields a single empty
// page so the offset stays valid.
type Paginator struct {
	page    int
	perPage int
	total   int64
}

// NewPaginator builds a paginator for the requested page.
func NewPaginator(page, perPage int, total int64) Paginator {
	if perPage < 1 {
		perPage = 1
	}
	last := pageCount(perPage, total)
	if page < 1 {
		page = 1
	}
	if page > last {
		page = last
	}
	return Paginator{page: page, perPage: perPage, total: total}
}

func pageCount(perPage int, total int64) int {
	last := int((total + int64(perPage) - 1) / int64(perPage))
	if last < 1 {
		last = 1
	}
	return last
}

// Page returns the clamped page number.
func (p Paginator) Page() int { return p.page }

// PerPage returns the page size.
func (p Paginator) PerPage() int { return p.perPage }

// Total returns the total item count the paginator was built from.
func (p Paginator) Total() int64 { return p.total }

// Offset returns the row offset of the first item on the page.
func (p Paginator) Offset() int { return (p.page - 1) * p.perPage }

// TotalPages returns the number of pages, at least 1.
func (p Paginator) TotalPages() int { return pageCount(p.perPage, p.total) }

// HasPrev reports whether a previous page exists.
func (p Paginator) HasPrev() bool { return p.page > 1 }

// HasNext reports whether a next page exists.
func (p Paginator) HasNext() bool { return p.page < p.TotalPages() }

// PrevPage returns the previous page number, clamped to 1.
func (p Paginator) PrevPage() int {
	if p.page > 1 {
		return p.page - 1
	}
	return 1
}

// NextPage returns the next page number, clamped to the last page.
func (p Paginator) NextPage() int {
	if p.HasNext() {
		return p.page + 1
	}
	return p.page
}

// Pages lists all page numbers for the pager links.
func (p Paginator) Pages() []int {
	pages := make([]int, p.TotalPages())
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
