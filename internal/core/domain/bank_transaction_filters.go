package domain

import "time"

// BankTransactionFilters is the recognized filter set for bank transaction
// listings. Nil/empty fields contribute no constraint.
type BankTransactionFilters struct {
	AccountID    string
	BankID       string
	Type         string
	Processed    *bool
	From         *time.Time
	To           *time.Time
	Search       string // matches description or merchant name
	ReviewStatus ReviewStatus
}

// ReviewFlagsPatch is a partial update of a bank transaction's review flags.
// Only non-nil fields are written.
type ReviewFlagsPatch struct {
	Processed   *bool
	Notified    *bool
	Dismissed   *bool
	DismissNote *string
}

// IsEmpty reports whether the patch would write nothing.
func (p ReviewFlagsPatch) IsEmpty() bool {
	return p.Processed == nil && p.Notified == nil && p.Dismissed == nil && p.DismissNote == nil
}
