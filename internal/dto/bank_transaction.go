package dto

import (
	"github.com/finledger/finledger/internal/core/domain"
	"github.com/finledger/finledger/internal/query"
)

// CreateFromBankTransactionRequest is the payload for reconciling a bank
// transaction into a ledger entry. Category is the human key, resolved within
// the caller's scope.
type CreateFromBankTransactionRequest struct {
	Category     string       `json:"category" binding:"required"`
	Counterparty string       `json:"counterparty"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Tags         []domain.Tag `json:"tags"`
}

// UpdateBankTransactionRequest is a partial update of review flags. Only
// non-nil fields are written.
type UpdateBankTransactionRequest struct {
	Processed   *bool   `json:"processed"`
	Notified    *bool   `json:"notified"`
	Dismissed   *bool   `json:"dismissed"`
	DismissNote *string `json:"dismissNote"`
}

// ListBankTransactionsRequest carries the recognized bank transaction list
// filters as query parameters.
type ListBankTransactionsRequest struct {
	AccountID    string `form:"accountId"`
	BankID       string `form:"bankId"`
	Type         string `form:"type" binding:"omitempty,oneof=DEBIT CREDIT"`
	Processed    *bool  `form:"processed"`
	From         string `form:"from"`
	To           string `form:"to"`
	Search       string `form:"search"`
	ReviewStatus string `form:"reviewStatus" binding:"omitempty,oneof=dismissed linked unreviewed"`
	Limit        int    `form:"limit"`
	Offset       int    `form:"offset"`
}

// BankTransactionStatsRequest carries the stats filters.
type BankTransactionStatsRequest struct {
	AccountID string `form:"accountId"`
	BankID    string `form:"bankId"`
	From      string `form:"from"`
	To        string `form:"to"`
}

// BankTransactionWithStatus annotates a bank transaction with its derived
// review status.
type BankTransactionWithStatus struct {
	domain.BankTransaction
	ReviewStatus domain.ReviewStatus `json:"reviewStatus"`
}

// ListBankTransactionsResponse is the list payload: the page of transactions,
// the caller's full set of already-linked bank transaction ids for client-side
// annotation, and pagination.
type ListBankTransactionsResponse struct {
	Transactions         []BankTransactionWithStatus `json:"transactions"`
	LinkedTransactionIDs []string                    `json:"linkedTransactionIds"`
	Pagination           query.PageResponse          `json:"pagination"`
}

// LinkedEntryResponse reports whether a bank transaction has been reconciled.
// Never an error for "not linked".
type LinkedEntryResponse struct {
	Linked      bool                `json:"linked"`
	Transaction *domain.LedgerEntry `json:"transaction"`
}
