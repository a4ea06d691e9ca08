package query

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderNumbersPlaceholders(t *testing.T) {
	b := NewBuilder()
	b.And("user_id = ?", "u1")
	b.And("(title ILIKE ? OR description ILIKE ?)", "%cafe%", "%cafe%")

	assert.Equal(t, " WHERE user_id = $1 AND (title ILIKE $2 OR description ILIKE $3)", b.WhereSQL())
	assert.Equal(t, []any{"u1", "%cafe%", "%cafe%"}, b.Args())
	assert.Equal(t, 4, b.NextPlaceholder())
}

func TestBuilderEmpty(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, "", b.WhereSQL())
	assert.Empty(t, b.Args())
}

func TestEntryFiltersAbsentFieldsAddNoClause(t *testing.T) {
	b := NewBuilder()
	EntryFilters{}.Apply(b, "u1")

	// Only the user scope remains.
	assert.Equal(t, " WHERE user_id = $1", b.WhereSQL())
	assert.Equal(t, []any{"u1"}, b.Args())
}

func TestEntryFiltersAllClauses(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	min := decimal.NewFromInt(10)
	max := decimal.NewFromInt(100)

	b := NewBuilder()
	EntryFilters{
		Type:           "expense",
		Title:          "coffee",
		DateFrom:       &from,
		DateTo:         &to,
		AmountMin:      &min,
		AmountMax:      &max,
		Currency:       "EUR",
		CategoryID:     "cat-1",
		CounterpartyID: "cp-1",
		Periodicity:    "NOT_RECURRING",
		TagKeys:        []string{"work", "travel"},
	}.Apply(b, "u1")

	sql := b.WhereSQL()
	assert.Contains(t, sql, "type = $2")
	assert.Contains(t, sql, "title ILIKE $3")
	assert.Contains(t, sql, "entry_date >= $4")
	assert.Contains(t, sql, "entry_date <= $5")
	assert.Contains(t, sql, "amount >= $6")
	assert.Contains(t, sql, "amount <= $7")
	assert.Contains(t, sql, "currency = $8")
	assert.Contains(t, sql, "category_id = $9")
	assert.Contains(t, sql, "counterparty_id = $10")
	assert.Contains(t, sql, "periodicity = $11")
	assert.Contains(t, sql, "tag->>'key' = ANY($12)")
	require.Len(t, b.Args(), 12)
	assert.Equal(t, "%coffee%", b.Args()[2])
	assert.Equal(t, []string{"work", "travel"}, b.Args()[11])
}

func TestParseSortFallsBackOnUnknownField(t *testing.T) {
	spec := ResourceSpec{
		SortFields:    []string{"date", "amount", "title", "createdAt"},
		DefaultSortBy: "date",
	}

	s := ParseSort("amount", "asc", spec)
	assert.Equal(t, Sort{SortBy: "amount", SortOrder: "asc"}, s)

	s = ParseSort("evil; DROP TABLE", "asc", spec)
	assert.Equal(t, "date", s.SortBy)

	s = ParseSort("", "", spec)
	assert.Equal(t, Sort{SortBy: "date", SortOrder: "desc"}, s)
	assert.Equal(t, " ORDER BY entry_date DESC", s.OrderBySQL())
}

func TestNormalizePagination(t *testing.T) {
	assert.Equal(t, Pagination{Limit: 50, Offset: 0}, NormalizePagination(0, 0))
	assert.Equal(t, Pagination{Limit: 50, Offset: 0}, NormalizePagination(-1, -5))
	assert.Equal(t, Pagination{Limit: 20, Offset: 40}, NormalizePagination(20, 40))
}

func TestPageResponseHasMore(t *testing.T) {
	// total=20, limit=20, offset=0 -> no more pages.
	assert.False(t, NewPageResponse(20, Pagination{Limit: 20, Offset: 0}).HasMore)
	// total=100, limit=20, offset=0 -> more pages.
	assert.True(t, NewPageResponse(100, Pagination{Limit: 20, Offset: 0}).HasMore)
	// total=2, limit=50, offset=0 -> no more pages.
	assert.False(t, NewPageResponse(2, Pagination{Limit: 50, Offset: 0}).HasMore)
}

func TestPageResponseReturnedVariant(t *testing.T) {
	// A short page means the window formula would claim another page;
	// the returned-count variant does not.
	p := Pagination{Limit: 50, Offset: 0}
	assert.False(t, NewPageResponseReturned(2, p, 2).HasMore)
	assert.True(t, NewPageResponseReturned(100, p, 50).HasMore)
}
