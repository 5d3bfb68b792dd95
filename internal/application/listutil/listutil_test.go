package listutil

import (
	"net/url"
	"reflect"
	"testing"
)

// TestParseDefaults verifies defaults when no query values are provided.
func TestParseDefaults(t *testing.T) {
	p := Parse(url.Values{}, []string{"nombre"})
	if p.Page != 1 || p.PerPage != DefaultPerPage || p.Sort != "" || p.Desc {
		t.Errorf("unexpected defaults: %+v", p)
	}
}

// TestParseValues verifies valid values are kept and invalid ones dropped.
func TestParseValues(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		want  ListParams
	}{
		{
			name:  "valid",
			query: url.Values{"q": {" ana "}, "sort": {"nombre"}, "dir": {"desc"}, "page": {"3"}, "per_page": {"50"}},
			want:  ListParams{Search: "ana", Sort: "nombre", Desc: true, Page: 3, PerPage: 50},
		},
		{
			name:  "unknown sort column",
			query: url.Values{"sort": {"password"}},
			want:  ListParams{Page: 1, PerPage: DefaultPerPage},
		},
		{
			name:  "per page not allowed",
			query: url.Values{"per_page": {"25"}, "page": {"-2"}},
			want:  ListParams{Page: 1, PerPage: DefaultPerPage},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.query, []string{"nombre", "email"}); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestSortURLToggles flips the direction on the active column.
func TestSortURLToggles(t *testing.T) {
	p := ListParams{Sort: "nombre", Page: 4, PerPage: DefaultPerPage}
	if got := p.SortURL("nombre"); got != "?dir=desc&sort=nombre" {
		t.Errorf("SortURL(active) = %q", got)
	}
	if got := p.SortURL("email"); got != "?dir=asc&sort=email" {
		t.Errorf("SortURL(other) = %q", got)
	}
}

// TestPageURLKeepsSearch keeps the other parameters.
func TestPageURLKeepsSearch(t *testing.T) {
	p := ListParams{Search: "K0", PerPage: 50}
	if got := p.PageURL(2); got != "?page=2&per_page=50&q=K0" {
		t.Errorf("PageURL = %q", got)
	}
}

// TestNewPageInfo verifies clamping and row numbers.
func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(9, 10, 25)
	if info.Page != 3 || info.TotalPages != 3 {
		t.Fatalf("info = %+v", info)
	}
	if info.StartRow() != 21 || info.EndRow() != 25 {
		t.Errorf("rows %d..%d", info.StartRow(), info.EndRow())
	}
	if empty := NewPageInfo(1, 10, 0); empty.StartRow() != 0 || empty.ShowPagination() {
		t.Errorf("empty = %+v", empty)
	}
}

// TestPageNumbers centers on the current page.
func TestPageNumbers(t *testing.T) {
	info := NewPageInfo(5, 10, 100)
	if got := info.PageNumbers(); !reflect.DeepEqual(got, []int{3, 4, 5, 6, 7}) {
		t.Errorf("PageNumbers = %v", got)
	}
	last := NewPageInfo(10, 10, 100)
	if got := last.PageNumbers(); !reflect.DeepEqual(got, []int{6, 7, 8, 9, 10}) {
		t.Errorf("PageNumbers(last) = %v", got)
	}
}

// TestPaginate slices the current page.
func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	if got := Paginate(items, NewPageInfo(2, 10, len(items))); !reflect.DeepEqual(got, items) {
		t.Errorf("single page = %v", got)
	}
	info := PageInfo{Page: 2, PerPage: 2, Total: 5, TotalPages: 3}
	if got := Paginate(items, info); !reflect.DeepEqual(got, []int{3, 4}) {
		t.Errorf("page 2 = %v", got)
	}
	if got := Paginate(items, PageInfo{Page: 4, PerPage: 2}); got != nil {
		t.Errorf("past end = %v", got)
	}
}
