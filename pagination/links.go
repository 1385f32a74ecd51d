package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names read by FromQuery.
const (
	PageKey = "page"
	SortKey = "sort"
)

// PageLink is a page number and the URL that shows it.
type PageLink struct {
	Number int
	URL    string
}

// Links is a Window with a URL attached to every page number.
type Links struct {
	Previous []PageLink
	Current  int
	Next     []PageLink
}

// FromQuery builds a Paginator from request parameters. page, when not empty,
// takes precedence over the "page" query value (it comes from the path).
// Unparseable or non-positive pages fall back to 1; an unknown sort token is
// returned as *UnknownSortKeyError. Keys listed in preserve are carried over
// into every composed link.
func FromQuery(page string, query url.Values, itemsPerPage int, preserve ...string) (*Paginator, error) {
	p := New(itemsPerPage)

	if page == "" {
		page = query.Get(PageKey)
	}
	n, _ := strconv.Atoi(strings.TrimSpace(page))
	p.SetCurrentPage(n)

	s, err := ResolveSort(query.Get(SortKey))
	if err != nil {
		return nil, err
	}
	p.sort = s

	for _, key := range preserve {
		if v := query.Get(key); v != "" {
			p.extra[key] = v
		}
	}

	return p, nil
}

// Sort returns the resolved sort of the list.
func (p *Paginator) Sort() Sort {
	return p.sort
}

// SetSort replaces the sort of the list.
func (p *Paginator) SetSort(s Sort) {
	p.sort = s
}

// Preserve adds a query parameter to every composed link. An empty value
// removes it.
func (p *Paginator) Preserve(key, value string) {
	if value == "" {
		delete(p.extra, key)
		return
	}
	p.extra[key] = value
}

func (p *Paginator) values(page int, sortKey string) url.Values {
	v := url.Values{}
	for key, value := range p.extra {
		v.Set(key, value)
	}
	v.Set(SortKey, sortKey)
	if page > 0 {
		v.Set(PageKey, strconv.Itoa(page))
	}
	return v
}

// PageURL composes the link to page n keeping the current sort and
// preserved parameters.
func (p *Paginator) PageURL(n int) string {
	return p.baseURL + strconv.Itoa(n) + "?" + p.values(0, p.sort.Key).Encode()
}

// SortURL composes the link to the first page of the list sorted by key.
func (p *Paginator) SortURL(key string) string {
	return p.baseURL + "1?" + p.values(0, key).Encode()
}

// FilterURL composes the link to the first page of the list with the
// preserved parameter key set to value, or dropped when value is empty.
func (p *Paginator) FilterURL(key, value string) string {
	v := p.values(0, p.sort.Key)
	if value == "" {
		v.Del(key)
	} else {
		v.Set(key, value)
	}
	return p.baseURL + "1?" + v.Encode()
}

// QueryString encodes the current page, sort and preserved parameters, for
// requests that must come back to the same view.
func (p *Paginator) QueryString() string {
	return p.values(p.currentPage, p.sort.Key).Encode()
}

// Links returns Window(r) with URLs attached.
func (p *Paginator) Links(r int) Links {
	w := p.Window(r)
	return Links{
		Previous: p.pageLinks(w.Previous),
		Current:  w.Current,
		Next:     p.pageLinks(w.Next),
	}
}

func (p *Paginator) pageLinks(numbers []int) []PageLink {
	links := make([]PageLink, 0, len(numbers))
	for _, n := range numbers {
		links = append(links, PageLink{Number: n, URL: p.PageURL(n)})
	}
	return links
}
