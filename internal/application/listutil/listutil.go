package listutil

import (
	"net/url"
	"strconv"
	"strings"
)

// ListParams carries the table state of a list view: search, sort and page.
type ListParams struct {
	Search  string
	Sort    string // column key, "" for the view's default order
	Desc    bool
	Page    int // 1-indexed
	PerPage int
	Filter  string // single optional filter, e.g. kart status
}

// PageInfo carries pagination metadata for rendering.
type PageInfo struct {
	Page       int // current page (1-indexed)
	PerPage    int // rows per page
	Total      int // total matching rows
	TotalPages int // ceil(Total / PerPage)
}

// DefaultPerPage is the default number of rows per page.
const DefaultPerPage = 20

// PerPageOptions are the allowed rows-per-page values.
var PerPageOptions = []int{10, 20, 50, 100}

// Parse extracts list parameters from URL query values.
// PRE: sortable lists the column keys the view accepts
// POST: Page >= 1; PerPage is one of PerPageOptions; Sort is "" or in sortable
func Parse(q url.Values, sortable []string) ListParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !contains(PerPageOptions, perPage) {
		perPage = DefaultPerPage
	}
	sort := q.Get("sort")
	if !contains(sortable, sort) {
		sort = ""
	}
	return ListParams{
		Search:  strings.TrimSpace(q.Get("q")),
		Sort:    sort,
		Desc:    q.Get("dir") == "desc",
		Page:    page,
		PerPage: perPage,
		Filter:  strings.TrimSpace(q.Get("filter")),
	}
}

// Dir returns "asc" or "desc".
func (p ListParams) Dir() string {
	if p.Desc {
		return "desc"
	}
	return "asc"
}

// Values encodes the parameters back into query values, omitting defaults.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Search != "" {
		v.Set("q", p.Search)
	}
	if p.Sort != "" {
		v.Set("sort", p.Sort)
		v.Set("dir", p.Dir())
	}
	if p.Filter != "" {
		v.Set("filter", p.Filter)
	}
	if p.PerPage != 0 && p.PerPage != DefaultPerPage {
		v.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Page > 1 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	return v
}

// PageURL returns the query string for page n with the other parameters kept.
func (p ListParams) PageURL(n int) string {
	p.Page = n
	if enc := p.Values().Encode(); enc != "" {
		return "?" + enc
	}
	return "?"
}

// SortURL returns the query string that sorts by col, toggling the direction
// when col is already the sort column. Paging restarts at 1.
func (p ListParams) SortURL(col string) string {
	if p.Sort == col {
		p.Desc = !p.Desc
	} else {
		p.Sort, p.Desc = col, false
	}
	return p.PageURL(1)
}

// NewPageInfo computes pagination metadata.
// PRE: total >= 0
// POST: TotalPages >= 1; Page clamped to [1, TotalPages]
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset returns the index of the first row on the current page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// StartRow returns the 1-indexed first row number on the current page, or 0 when empty.
func (p PageInfo) StartRow() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndRow returns the 1-indexed last row number on the current page.
func (p PageInfo) EndRow() int {
	end := p.Offset() + p.PerPage
	if end > p.Total {
		end = p.Total
	}
	return end
}

// PageNumbers returns at most 5 page numbers centered on the current page.
func (p PageInfo) PageNumbers() []int {
	const maxButtons = 5
	start := p.Page - maxButtons/2
	if start < 1 {
		start = 1
	}
	end := start + maxButtons - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = end - maxButtons + 1
		if start < 1 {
			start = 1
		}
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// ShowPagination reports whether pagination controls should be displayed.
func (p PageInfo) ShowPagination() bool {
	return p.Total > p.PerPage
}

// Paginate returns the slice of items on the page described by info.
// PRE: info was built from len(items)
func Paginate[T any](items []T, info PageInfo) []T {
	start := info.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + info.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
