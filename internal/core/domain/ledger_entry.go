package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType determines the direction of a ledger entry. Amounts are always
// non-negative; direction is carried here, never by sign.
type EntryType string

const (
	EntryTypeExpense EntryType = "expense"
	EntryTypeIncome  EntryType = "income"
)

// Periodicity describes the recurring behavior of a ledger entry.
type Periodicity string

const (
	NotRecurring            Periodicity = "NOT_RECURRING"
	RecurringVariableAmount Periodicity = "RECURRING_VARIABLE_AMOUNT"
	RecurringFixedAmount    Periodicity = "RECURRING_FIXED_AMOUNT"
)

// Tag is a free-form label attached to a ledger entry.
type Tag struct {
	Key  string `json:"key"`
	Name string `json:"name,omitempty"`
}

// LedgerEntry is the canonical record of money movement, either entered
// manually or derived from a bank transaction via reconciliation.
type LedgerEntry struct {
	EntryID           string          `json:"entryID"`
	UserID            string          `json:"-"`
	Type              EntryType       `json:"type"`
	Title             string          `json:"title"`
	Description       string          `json:"description,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	CategoryID        string          `json:"categoryID"`
	CounterpartyID    string          `json:"counterpartyID,omitempty"`
	Date              time.Time       `json:"date"`
	Periodicity       Periodicity     `json:"periodicity"`
	BankTransactionID string          `json:"bankTransactionID,omitempty"`
	Tags              []Tag           `json:"tags,omitempty"`
	AuditFields

	// Populated by read paths that join reference metadata.
	Category     *Category     `json:"category,omitempty"`
	Counterparty *Counterparty `json:"counterparty,omitempty"`
}

// EntryTypeForBankTransaction maps a bank transaction type to the ledger entry
// type it reconciles into. The mapping is total: DEBIT becomes an expense and
// anything else an income.
func EntryTypeForBankTransaction(t BankTransactionType) EntryType {
	if t == BankTransactionDebit {
		return EntryTypeExpense
	}
	return EntryTypeIncome
}
