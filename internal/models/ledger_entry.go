package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tag is stored inside the ledger_entries.tags jsonb column.
type Tag struct {
	Key  string `json:"key"`
	Name string `json:"name,omitempty"`
}

// LedgerEntry mirrors the ledger_entries table. BankTransactionID is nullable;
// the partial unique index over it enforces at-most-one-link.
type LedgerEntry struct {
	EntryID           string
	UserID            string
	Type              string
	Title             string
	Description       *string
	Amount            decimal.Decimal
	Currency          string
	CategoryID        string
	CounterpartyID    *string
	EntryDate         time.Time
	Periodicity       string
	BankTransactionID *string
	Tags              []Tag
	AuditFields
}
