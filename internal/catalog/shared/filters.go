// Package shared holds list plumbing common to the catalog entities.
package shared

// ListFilters carries pagination, search and sorting for list endpoints.
type ListFilters struct {
	Page    int
	Limit   int
	Search  string
	SortBy  string
	SortDir string

	CategoryID *string
	Status     *string
}

// Offset derives the SQL offset, clamped at zero.
func (f ListFilters) Offset() int {
	offset := (f.Page - 1) * f.Limit
	if offset < 0 {
		return 0
	}
	return offset
}

// SortOrder renders an ORDER BY fragment restricted to the allowed columns;
// the first allowed column is the fallback. Column names never come from
// user input unvalidated.
func (f ListFilters) SortOrder(allowed ...string) string {
	dir := "ASC"
	if f.SortDir == "desc" {
		dir = "DESC"
	}
	for _, col := range allowed {
		if f.SortBy == col {
			return col + " " + dir
		}
	}
	return allowed[0] + " " + dir
}
