package services

import (
	"context"

	"github.com/finledger/finledger/internal/core/domain"
	"github.com/finledger/finledger/internal/dto"
)

// ReconciliationSvc links bank transactions to ledger entries and manages the
// review lifecycle of bank transactions.
type ReconciliationSvc interface {
	// CreateFromBankTransaction derives a ledger entry from a bank
	// transaction, establishing the permanent one-to-one link. Returns
	// *apperrors.DuplicateLinkError when the transaction is already linked,
	// including under a lost creation race.
	CreateFromBankTransaction(ctx context.Context, userID, bankTransactionID string, req dto.CreateFromBankTransactionRequest) (*domain.LedgerEntry, error)

	// GetLinkedEntry reports the linked ledger entry, if any. "Not linked" is
	// not an error; an unknown bank transaction is.
	GetLinkedEntry(ctx context.Context, userID, bankTransactionID string) (*dto.LinkedEntryResponse, error)

	// SetReviewFlags partially updates processed/notified/dismissed/dismissNote.
	// An empty patch returns the unchanged record.
	SetReviewFlags(ctx context.Context, userID, bankTransactionID string, req dto.UpdateBankTransactionRequest) (*domain.BankTransaction, error)

	// ListWithReviewStatus returns one filtered page annotated with derived
	// review status, using a single batch linked-id lookup.
	ListWithReviewStatus(ctx context.Context, userID string, req dto.ListBankTransactionsRequest) (*dto.ListBankTransactionsResponse, error)

	// GetBankTransaction retrieves one bank transaction.
	GetBankTransaction(ctx context.Context, userID, bankTransactionID string) (*domain.BankTransaction, error)

	// DeleteBankTransaction removes a bank transaction without touching any
	// linked ledger entry.
	DeleteBankTransaction(ctx context.Context, userID, bankTransactionID string) error

	// Stats aggregates the user's bank transactions over the filter set.
	Stats(ctx context.Context, userID string, req dto.BankTransactionStatsRequest) (*domain.BankTransactionStats, error)
}
