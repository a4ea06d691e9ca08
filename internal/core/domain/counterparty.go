package domain

// CounterpartyType classifies the other party of a transaction.
type CounterpartyType string

const (
	CounterpartyCompany     CounterpartyType = "company"
	CounterpartyPerson      CounterpartyType = "person"
	CounterpartyInstitution CounterpartyType = "institution"
	CounterpartyOther       CounterpartyType = "other"
)

// Counterparty is the person or organization money was paid to or received
// from. Like Category it is user-scoped and addressed by its human key.
type Counterparty struct {
	CounterpartyID string           `json:"counterpartyID"`
	UserID         string           `json:"-"`
	Key            string           `json:"key"`
	Name           string           `json:"name"`
	Type           CounterpartyType `json:"type"`
	Logo           string           `json:"logo,omitempty"`
	Email          string           `json:"email,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	AuditFields
}
