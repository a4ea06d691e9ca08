package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction mirrors the bank_transactions table. Amount keeps the sign
// reported by the source.
type BankTransaction struct {
	BankTransactionID string
	UserID            string
	AccountID         string
	BankID            string
	Type              string
	Amount            decimal.Decimal
	Currency          string
	Description       string
	MerchantName      *string
	OccurredAt        time.Time
	Processed         bool
	Notified          bool
	Dismissed         bool
	DismissNote       *string
	AuditFields
}
