package domain

// Default and maximum page sizes for list endpoints.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageParams is the page/limit pair passed from the HTTP layer to the repos.
// Page is 1-indexed.
type PageParams struct {
	Page  int
	Limit int
}

// NewPageParams builds PageParams from optional query values.
// Missing or non-positive values use page 1 and DefaultPageLimit; the limit
// is capped at MaxPageLimit.
func NewPageParams(page, limit *int) PageParams {
	p := PageParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is one slice of a larger ordered result set.
type Page[T any] struct {
	Items []T
	Total int64
	PageParams
}

// TotalPages returns how many pages of Limit items cover Total.
func (p Page[T]) TotalPages() int {
	if p.Limit <= 0 || p.Total <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
}
