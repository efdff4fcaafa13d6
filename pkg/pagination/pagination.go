package pagination

import (
	"math"
	"net/url"
	"strconv"
)

// MaxPerPage bounds the per_page query parameter.
const MaxPerPage = 100

// Params is a resolved page request.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// FromQuery reads `page` and `per_page`. Missing, non-numeric or
// out-of-range values fall back to page 1 and defaultPerPage.
func FromQuery(q url.Values, defaultPerPage int) Params {
	if defaultPerPage <= 0 || defaultPerPage > MaxPerPage {
		defaultPerPage = 20
	}
	p := Params{Page: 1, PerPage: defaultPerPage}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("per_page")); err == nil && v > 0 && v <= MaxPerPage {
		p.PerPage = v
	}
	return p
}

// Offset is the zero-based index of the first item on the page. It
// saturates at math.MaxInt instead of overflowing for huge page numbers.
func (p Params) Offset() int {
	if p.Page <= 1 || p.PerPage <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PerPage
}

// Slice returns the window of items addressed by p. Pages past the end are
// empty, never nil.
func Slice[T any](items []T, p Params) []T {
	if p.PerPage <= 0 {
		return []T{}
	}
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + min(p.PerPage, len(items)-start)
	return items[start:end]
}

// Result is the paginated list envelope.
type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewResult computes the page counters for a window of a total.
func NewResult[T any](data []T, totalCount int, p Params) Result[T] {
	totalPages := totalCount / p.PerPage
	if totalCount%p.PerPage > 0 {
		totalPages++
	}
	if data == nil {
		data = []T{}
	}
	return Result[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
