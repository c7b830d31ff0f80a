package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOffset(t *testing.T) {
	require.Equal(t, 0, ListFilters{Page: 1, Limit: 10}.Offset())
	require.Equal(t, 20, ListFilters{Page: 3, Limit: 10}.Offset())
	require.Equal(t, 0, ListFilters{Page: 0, Limit: 10}.Offset())
}

func TestSortOrderRestrictsColumns(t *testing.T) {
	f := ListFilters{SortBy: "name", SortDir: "desc"}
	require.Equal(t, "name DESC", f.SortOrder("name", "created_at"))

	// Unknown columns fall back to the first allowed one.
	f = ListFilters{SortBy: "password_hash; DROP TABLE users", SortDir: "desc"}
	require.Equal(t, "name DESC", f.SortOrder("name", "created_at"))

	// Anything but an explicit desc sorts ascending.
	f = ListFilters{SortBy: "created_at", SortDir: "sideways"}
	require.Equal(t, "created_at ASC", f.SortOrder("name", "created_at"))
}
