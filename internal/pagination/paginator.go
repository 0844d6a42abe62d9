package pagination

// Paginator splits a listing of ItemCount items into pages of PerPage items.
// A PerPage of zero or less disables pagination: everything lands on one page.
type Paginator struct {
	ItemCount int
	PerPage   int
}

// NewPaginator returns a paginator for itemCount items. Negative counts are
// treated as an empty listing.
func NewPaginator(itemCount, perPage int) Paginator {
	return Paginator{ItemCount: max(itemCount, 0), PerPage: perPage}
}

// NumPages returns the number of pages; an empty listing still has one page.
func (p Paginator) NumPages() int {
	if p.PerPage <= 0 || p.ItemCount <= 0 {
		return 1
	}
	return (p.ItemCount-1)/p.PerPage + 1
}

// Page returns page n, clamped into [1, NumPages].
func (p Paginator) Page(n int) Page {
	total := p.NumPages()
	n = min(max(n, 1), total)

	pg := Page{Number: n, NumPages: total}
	if p.ItemCount <= 0 {
		return pg
	}
	if p.PerPage <= 0 {
		pg.StartIndex, pg.EndIndex = 1, p.ItemCount
		return pg
	}
	pg.StartIndex = (n-1)*p.PerPage + 1
	pg.EndIndex = pg.StartIndex - 1 + min(p.PerPage, p.ItemCount-pg.StartIndex+1)
	return pg
}

// Pages returns every page of the listing in order.
func (p Paginator) Pages() []Page {
	total := p.NumPages()
	out := make([]Page, 0, total)
	for n := 1; n <= total; n++ {
		out = append(out, p.Page(n))
	}
	return out
}

// Page is one page of a paginated listing. StartIndex and EndIndex are the
// 1-based inclusive item range on the page, both zero for an empty listing.
type Page struct {
	Number     int
	NumPages   int
	StartIndex int
	EndIndex   int
}

func (p Page) HasPrevious() bool { return p.Number > 1 }
func (p Page) HasNext() bool     { return p.Number < p.NumPages }
func (p Page) HasOtherPages() bool {
	return p.HasPrevious() || p.HasNext()
}

// PreviousNumber returns the previous page number, or zero on the first page.
func (p Page) PreviousNumber() int {
	if !p.HasPrevious() {
		return 0
	}
	return p.Number - 1
}

// NextNumber returns the next page number, or zero on the last page.
func (p Page) NextNumber() int {
	if !p.HasNext() {
		return 0
	}
	return p.Number + 1
}

// Window returns the pagination window around this page.
func (p Page) Window(th Thresholds) []Item {
	return Window(p.Number, p.NumPages, th)
}
