package dto

import (
	"time"

	"github.com/finledger/finledger/internal/core/domain"
	"github.com/finledger/finledger/internal/query"
	"github.com/shopspring/decimal"
)

// CreateLedgerEntryRequest creates a manual ledger entry (no bank transaction
// link). Category and counterparty are human keys.
type CreateLedgerEntryRequest struct {
	Type         domain.EntryType `json:"type" binding:"required,oneof=expense income"`
	Title        string           `json:"title" binding:"required"`
	Description  string           `json:"description"`
	Amount       decimal.Decimal  `json:"amount" binding:"required"`
	Currency     string           `json:"currency" binding:"required,currencycode"`
	Category     string           `json:"category" binding:"required"`
	Counterparty string           `json:"counterparty"`
	Date         time.Time        `json:"date" binding:"required"`
	Periodicity  string           `json:"periodicity" binding:"omitempty,oneof=NOT_RECURRING RECURRING_VARIABLE_AMOUNT RECURRING_FIXED_AMOUNT"`
	Tags         []domain.Tag     `json:"tags"`
}

// UpdateLedgerEntryRequest partially updates a ledger entry. Nil fields are
// left untouched; Counterparty set to the empty string clears the reference.
type UpdateLedgerEntryRequest struct {
	Title        *string          `json:"title"`
	Description  *string          `json:"description"`
	Amount       *decimal.Decimal `json:"amount"`
	Currency     *string          `json:"currency" binding:"omitempty,currencycode"`
	Category     *string          `json:"category"`
	Counterparty *string          `json:"counterparty"`
	Date         *time.Time       `json:"date"`
	Periodicity  *string          `json:"periodicity" binding:"omitempty,oneof=NOT_RECURRING RECURRING_VARIABLE_AMOUNT RECURRING_FIXED_AMOUNT"`
	Tags         []domain.Tag     `json:"tags"`
}

// SearchEntriesRequest carries the query-composer filter inputs for every
// ledger search surface. The counterparty key is not bound here: its query
// parameter name differs per resource ("payee", "source", "counterparty") and
// the handler reads it by the resource spec's field name.
type SearchEntriesRequest struct {
	Type         string   `form:"type" binding:"omitempty,oneof=expense income"`
	Title        string   `form:"title"`
	Description  string   `form:"description"`
	Search       string   `form:"search"`
	DateFrom     string   `form:"dateFrom"`
	DateTo       string   `form:"dateTo"`
	AmountMin    *float64 `form:"amountMin"`
	AmountMax    *float64 `form:"amountMax"`
	Currency     string   `form:"currency"`
	Category     string   `form:"category"`
	Periodicity  string   `form:"periodicity" binding:"omitempty,oneof=NOT_RECURRING RECURRING_VARIABLE_AMOUNT RECURRING_FIXED_AMOUNT"`
	Tags         []string `form:"tags"`
	SortBy       string   `form:"sortBy"`
	SortOrder    string   `form:"sortOrder"`
	Limit        int      `form:"limit"`
	Offset       int      `form:"offset"`
	IncludeTotal bool     `form:"includeTotal"`

	// Set by the handler from the resource-specific parameter name.
	CounterpartyKey string `form:"-"`
}

// SearchEntriesResult is the composed search output. The handler places
// Results under the resource's response key.
type SearchEntriesResult struct {
	Results     []domain.LedgerEntry
	Pagination  query.PageResponse
	Sort        query.Sort
	TotalAmount *decimal.Decimal
}
