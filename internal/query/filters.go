package query

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryFilters is the recognized filter set for ledger entry searches.
// Reference-typed values (CategoryID, CounterpartyID) must already be resolved
// to internal IDs; the composer never sees human keys. Absent fields
// contribute no constraint.
type EntryFilters struct {
	Type           string // "expense" or "income"; empty on typed resources
	Title          string
	Description    string
	Search         string // ORs title/description, unified resource only
	DateFrom       *time.Time
	DateTo         *time.Time
	AmountMin      *decimal.Decimal
	AmountMax      *decimal.Decimal
	Currency       string
	CategoryID     string
	CounterpartyID string
	Periodicity    string
	TagKeys        []string
}

// Apply adds every present filter to the builder, scoped to userID. All
// clauses combine with AND; date and amount bounds are inclusive; free-text
// matches are case-insensitive substrings; the tag filter matches entries
// whose tag-key set intersects TagKeys.
func (f EntryFilters) Apply(b *Builder, userID string) {
	b.And("user_id = ?", userID)
	if f.Type != "" {
		b.And("type = ?", f.Type)
	}
	if f.Title != "" {
		b.And("title ILIKE ?", "%"+f.Title+"%")
	}
	if f.Description != "" {
		b.And("description ILIKE ?", "%"+f.Description+"%")
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		b.And("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}
	if f.DateFrom != nil {
		b.And("entry_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		b.And("entry_date <= ?", *f.DateTo)
	}
	if f.AmountMin != nil {
		b.And("amount >= ?", *f.AmountMin)
	}
	if f.AmountMax != nil {
		b.And("amount <= ?", *f.AmountMax)
	}
	if f.Currency != "" {
		b.And("currency = ?", f.Currency)
	}
	if f.CategoryID != "" {
		b.And("category_id = ?", f.CategoryID)
	}
	if f.CounterpartyID != "" {
		b.And("counterparty_id = ?", f.CounterpartyID)
	}
	if f.Periodicity != "" {
		b.And("periodicity = ?", f.Periodicity)
	}
	if len(f.TagKeys) > 0 {
		b.And("EXISTS (SELECT 1 FROM jsonb_array_elements(tags) tag WHERE tag->>'key' = ANY(?))", f.TagKeys)
	}
}
