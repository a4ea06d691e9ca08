package models

// Counterparty mirrors the counterparties table. Optional contact columns are
// nullable in the schema and scanned into pointers.
type Counterparty struct {
	CounterpartyID string
	UserID         string
	Key            string
	Name           string
	Type           string
	Logo           *string
	Email          *string
	Phone          *string
	Notes          *string
	AuditFields
}
