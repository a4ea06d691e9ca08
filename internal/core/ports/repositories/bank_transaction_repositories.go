package repositories

import (
	"context"

	"github.com/finledger/finledger/internal/core/domain"
	"github.com/finledger/finledger/internal/query"
)

// BankTransactionReader defines read operations for bank transaction data.
// Every operation is scoped by the owning user; a row owned by someone else
// behaves exactly like a missing row.
type BankTransactionReader interface {
	// FindBankTransactionByID retrieves one transaction within the user's scope.
	FindBankTransactionByID(ctx context.Context, userID, bankTransactionID string) (*domain.BankTransaction, error)

	// ListBankTransactions returns one page of matching transactions plus the
	// full matching count. Review-status filtering happens in SQL so the count
	// stays exact.
	ListBankTransactions(ctx context.Context, userID string, filters domain.BankTransactionFilters, page query.Pagination) ([]domain.BankTransaction, int64, error)

	// BankTransactionStats aggregates totals and counts over the filter set.
	BankTransactionStats(ctx context.Context, userID string, filters domain.BankTransactionFilters) (*domain.BankTransactionStats, error)
}

// BankTransactionWriter defines write operations for bank transaction data.
type BankTransactionWriter interface {
	// UpsertBankTransaction inserts or refreshes a transaction by its source
	// id. Used by the bank-feed worker; idempotent on redelivery.
	UpsertBankTransaction(ctx context.Context, tx domain.BankTransaction) error

	// UpdateReviewFlags applies a partial flags update and returns the updated
	// row.
	UpdateReviewFlags(ctx context.Context, userID, bankTransactionID string, patch domain.ReviewFlagsPatch) (*domain.BankTransaction, error)

	// DeleteBankTransaction removes the row. A linked ledger entry is left
	// untouched; deletion never cascades.
	DeleteBankTransaction(ctx context.Context, userID, bankTransactionID string) error
}

// BankTransactionRepositoryFacade combines reader and writer.
type BankTransactionRepositoryFacade interface {
	BankTransactionReader
	BankTransactionWriter
}
