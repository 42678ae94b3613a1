// Package queries contains read-only operations of the pickup core.
// Handlers query PostgreSQL directly through GORM raw SQL and return
// JSON-ready projections; they never load aggregates.
package queries

// MaxPageLimit bounds the limit of every paginated listing.
const MaxPageLimit = 100

// Page is a normalized page request: page is at least 1 and limit is within
// [1, MaxPageLimit]. A zero limit selects the listing default.
type Page struct {
	number int
	limit  int
}

// NewPage clamps the requested page and limit.
//
// Example:
//
//	NewPage(0, 500, 20) // page 1, limit 100
//	NewPage(3, 0, 20)   // page 3, limit 20
func NewPage(page, limit, defaultLimit int) Page {
	if page < 1 {
		page = 1
	}
	switch {
	case limit == 0:
		limit = defaultLimit
	case limit < 1:
		limit = 1
	case limit > MaxPageLimit:
		limit = MaxPageLimit
	}
	return Page{number: page, limit: limit}
}

func (p Page) Number() int {
	return p.number
}

func (p Page) Limit() int {
	return p.limit
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	return (p.number - 1) * p.limit
}

// Pagination describes a returned page.
type Pagination struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"has_more"`
}

// NewPagination computes has_more as offset + limit < total.
func NewPagination(p Page, total int64) Pagination {
	return Pagination{
		Total:   total,
		Page:    p.number,
		Limit:   p.limit,
		HasMore: int64(p.Offset()+p.limit) < total,
	}
}

// PagedResponse is the envelope of every paginated listing.
type PagedResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func newPagedResponse[T any](data []T, p Page, total int64) PagedResponse[T] {
	if data == nil {
		data = make([]T, 0)
	}
	return PagedResponse[T]{Data: data, Pagination: NewPagination(p, total)}
}
