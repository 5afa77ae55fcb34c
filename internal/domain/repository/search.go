package repository

// SortDirection orders search results.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// SearchQuery carries the paginated-search contract shared by every
// repository. Page is 1-based; an empty Term matches everything; Sort names
// a field validated against the repository's whitelist.
type SearchQuery struct {
	Page    int
	PerPage int
	Term    string
	Sort    string
	Dir     SortDirection
}

// Normalize fills defaults for zero-valued fields.
func (q SearchQuery) Normalize() SearchQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = 15
	}
	if q.Dir != SortDescending {
		q.Dir = SortAscending
	}
	return q
}

// Offset returns the row offset for the query's page.
func (q SearchQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// SearchResult is one page of a paginated search.
type SearchResult[T any] struct {
	Items       []T
	CurrentPage int
	PerPage     int
	Total       int
}
