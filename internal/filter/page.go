package filter

import (
	"net/url"
	"strconv"
)

// Page is a limit/offset window over an ordered listing. It carries no
// state between requests.
type Page struct {
	Limit  int
	Offset int
}

// ParsePage reads limit and offset. Missing, malformed or negative values
// fall back to defaultLimit and 0; a zero limit is treated as missing.
func ParsePage(q url.Values, defaultLimit int) Page {
	p := Page{Limit: defaultLimit}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		p.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v >= 0 {
		p.Offset = v
	}
	return p
}

func (p Page) HasNext(count int) bool {
	return p.Offset+p.Limit < count
}

func (p Page) HasPrevious() bool {
	return p.Offset > 0
}

// NextURL returns base with limit/offset moved one page forward, or nil
// when the current page is the last one.
func (p Page) NextURL(base *url.URL, count int) *string {
	if !p.HasNext(count) {
		return nil
	}
	return withPage(base, p.Limit, p.Offset+p.Limit, false)
}

// PreviousURL returns base moved one page back, or nil on the first page.
// The offset parameter is dropped when it would be zero.
func (p Page) PreviousURL(base *url.URL) *string {
	if !p.HasPrevious() {
		return nil
	}
	offset := p.Offset - p.Limit
	if offset <= 0 {
		return withPage(base, p.Limit, 0, true)
	}
	return withPage(base, p.Limit, offset, false)
}

func withPage(base *url.URL, limit, offset int, dropOffset bool) *string {
	u := *base
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	if dropOffset {
		q.Del("offset")
	} else {
		q.Set("offset", strconv.Itoa(offset))
	}
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

// Envelope is the paginated response body.
type Envelope[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func NewEnvelope[T any](base *url.URL, p Page, count int, results []T) Envelope[T] {
	if results == nil {
		results = []T{}
	}
	return Envelope[T]{
		Count:    count,
		Next:     p.NextURL(base, count),
		Previous: p.PreviousURL(base),
		Results:  results,
	}
}
