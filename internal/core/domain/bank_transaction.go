package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransactionType is the direction of a bank transaction as reported by
// the external aggregator.
type BankTransactionType string

const (
	BankTransactionDebit  BankTransactionType = "DEBIT"
	BankTransactionCredit BankTransactionType = "CREDIT"
)

// ReviewStatus is the derived, never stored, classification of a bank
// transaction. Dismissed wins over Linked, Linked over Unreviewed.
type ReviewStatus string

const (
	ReviewStatusUnreviewed ReviewStatus = "unreviewed"
	ReviewStatusLinked     ReviewStatus = "linked"
	ReviewStatusDismissed  ReviewStatus = "dismissed"
)

// BankTransaction is a raw record ingested from the external bank aggregator.
// Its amount is signed as reported by the source; its lifecycle is independent
// of any ledger entry derived from it.
type BankTransaction struct {
	BankTransactionID string              `json:"id"`
	UserID            string              `json:"-"`
	AccountID         string              `json:"accountID"`
	BankID            string              `json:"bankID"`
	Type              BankTransactionType `json:"type"`
	Amount            decimal.Decimal     `json:"amount"`
	Currency          string              `json:"currency"`
	Description       string              `json:"description"`
	MerchantName      string              `json:"merchantName,omitempty"`
	Timestamp         time.Time           `json:"timestamp"`
	Processed         bool                `json:"processed"`
	Notified          bool                `json:"notified"`
	Dismissed         bool                `json:"dismissed"`
	DismissNote       string              `json:"dismissNote,omitempty"`
	AuditFields
}

// ReviewStatusFor computes the derived review status given whether a ledger
// entry currently claims this transaction.
func (t BankTransaction) ReviewStatusFor(linked bool) ReviewStatus {
	switch {
	case t.Dismissed:
		return ReviewStatusDismissed
	case linked:
		return ReviewStatusLinked
	default:
		return ReviewStatusUnreviewed
	}
}

// BankTransactionStats aggregates a user's bank transactions over a filter.
type BankTransactionStats struct {
	TotalTransactions int64           `json:"totalTransactions"`
	TotalCredits      decimal.Decimal `json:"totalCredits"`
	TotalDebits       decimal.Decimal `json:"totalDebits"`
	CreditCount       int64           `json:"creditCount"`
	DebitCount        int64           `json:"debitCount"`
	ProcessedCount    int64           `json:"processedCount"`
	UnprocessedCount  int64           `json:"unprocessedCount"`
}
