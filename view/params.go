package view

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/go-querystring/query"

	"github.com/s0up4200/kobis/kobis"
)

// PerPage is the fixed page size of the search page
const PerPage = 10

// Movie type codes accepted by the provider
const (
	TypeFeature = "220101" // 장편
	TypeShort   = "220102" // 단편
	TypeOmnibus = "220103" // 옴니버스
)

// Nation codes accepted by the provider
const (
	NationKorean  = "K"
	NationForeign = "F"
)

// SearchParams is the state of the search page as carried in its URL
type SearchParams struct {
	Term   string `url:"q,omitempty"`
	Year   string `url:"year,omitempty"`
	Type   string `url:"type,omitempty"`
	Nation string `url:"nation,omitempty"`
	Page   int    `url:"page,omitempty"`
}

// ParseSearchParams reads search page state from query values. The "all"
// placeholder counts as unset and a missing or invalid page becomes 1.
func ParseSearchParams(values url.Values) SearchParams {
	p := SearchParams{
		Term:   strings.TrimSpace(values.Get("q")),
		Year:   selectValue(values.Get("year")),
		Type:   selectValue(values.Get("type")),
		Nation: selectValue(values.Get("nation")),
		Page:   1,
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		p.Page = page
	}
	return p
}

// ParseSearchURL accepts a full URL or a bare query string
func ParseSearchURL(raw string) (SearchParams, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return SearchParams{}, fmt.Errorf("invalid search URL: %w", err)
	}
	return ParseSearchParams(values), nil
}

func selectValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

// Searchable reports whether the params hold a term to search for
func (p SearchParams) Searchable() bool {
	return strings.TrimSpace(p.Term) != ""
}

// WithPage returns a copy positioned on page
func (p SearchParams) WithPage(page int) SearchParams {
	if page < 1 {
		page = 1
	}
	p.Page = page
	return p
}

// Values encodes the params for a URL. Page 1 is left implicit.
func (p SearchParams) Values() url.Values {
	if p.Page <= 1 {
		p.Page = 0
	}
	values, err := query.Values(p)
	if err != nil {
		// SearchParams has only string and int fields
		return url.Values{}
	}
	return values
}

// Encode returns the URL query string
func (p SearchParams) Encode() string {
	return p.Values().Encode()
}

// Query maps the page state onto a catalog search. The year bounds both
// ends of the production-year range.
func (p SearchParams) Query() kobis.SearchQuery {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return kobis.SearchQuery{
		MovieName:           strings.TrimSpace(p.Term),
		ProductionStartYear: p.Year,
		ProductionEndYear:   p.Year,
		NationCode:          p.Nation,
		TypeCode:            p.Type,
		Page:                page,
		PerPage:             PerPage,
	}
}
