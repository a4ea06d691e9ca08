package repositories

import (
	"context"

	"github.com/finledger/finledger/internal/core/domain"
	"github.com/finledger/finledger/internal/query"
	"github.com/shopspring/decimal"
)

// LedgerEntryReader defines read operations for ledger entries.
type LedgerEntryReader interface {
	// FindEntryByID retrieves one entry with category and counterparty
	// metadata joined.
	FindEntryByID(ctx context.Context, userID, entryID string) (*domain.LedgerEntry, error)

	// FindEntryByBankTransactionID retrieves the entry claiming the given bank
	// transaction, or apperrors.ErrNotFound when none does.
	FindEntryByBankTransactionID(ctx context.Context, userID, bankTransactionID string) (*domain.LedgerEntry, error)

	// SearchEntries returns one page of entries matching the composed filters
	// plus the full matching count, with reference metadata joined.
	SearchEntries(ctx context.Context, filters query.EntryFilters, userID string, sort query.Sort, page query.Pagination) ([]domain.LedgerEntry, int64, error)

	// SumEntryAmounts totals amount over the same filter set, independent of
	// any page window.
	SumEntryAmounts(ctx context.Context, filters query.EntryFilters, userID string) (decimal.Decimal, error)

	// LinkedBankTransactionIDs returns the full set of bank transaction ids
	// this user has already reconciled, in one batch query.
	LinkedBankTransactionIDs(ctx context.Context, userID string) ([]string, error)
}

// LedgerEntryWriter defines write operations for ledger entries.
type LedgerEntryWriter interface {
	// SaveEntry inserts a manual entry (no bank transaction link).
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// SaveLinkedEntry inserts an entry derived from a bank transaction and
	// clears the source's dismissed flag, both inside one database
	// transaction. A uniqueness violation on the link column is surfaced as
	// *apperrors.DuplicateLinkError carrying the winning entry's id.
	SaveLinkedEntry(ctx context.Context, entry domain.LedgerEntry) error

	// UpdateEntry rewrites the mutable fields of an entry.
	UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error

	// DeleteEntry removes the entry. The source bank transaction's dismissed
	// flag is not restored.
	DeleteEntry(ctx context.Context, userID, entryID string) error
}

// LedgerEntryRepositoryFacade combines reader and writer.
type LedgerEntryRepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
}
