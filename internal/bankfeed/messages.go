package bankfeed

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/finledger/finledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BankTransactionMessage is the wire form of one bank transaction published
// by the external aggregator. Amount keeps the sign the source reported.
type BankTransactionMessage struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	AccountID    string          `json:"accountId"`
	BankID       string          `json:"bankId"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Description  string          `json:"description"`
	MerchantName string          `json:"merchantName,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}

// Validate checks the fields the upsert cannot tolerate missing.
func (m *BankTransactionMessage) Validate() error {
	switch {
	case m.ID == "":
		return fmt.Errorf("message missing id")
	case m.UserID == "":
		return fmt.Errorf("message %s missing userId", m.ID)
	case m.Type != string(domain.BankTransactionDebit) && m.Type != string(domain.BankTransactionCredit):
		return fmt.Errorf("message %s has invalid type %q", m.ID, m.Type)
	case m.Currency == "":
		return fmt.Errorf("message %s missing currency", m.ID)
	}
	return nil
}

// ToDomain converts the message into a fresh bank transaction record.
func (m *BankTransactionMessage) ToDomain() domain.BankTransaction {
	now := time.Now()
	return domain.BankTransaction{
		BankTransactionID: m.ID,
		UserID:            m.UserID,
		AccountID:         m.AccountID,
		BankID:            m.BankID,
		Type:              domain.BankTransactionType(m.Type),
		Amount:            m.Amount,
		Currency:          m.Currency,
		Description:       m.Description,
		MerchantName:      m.MerchantName,
		Timestamp:         m.Timestamp,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// BankTransactionMessageFromJSON creates a message from JSON bytes.
func BankTransactionMessageFromJSON(data []byte) (*BankTransactionMessage, error) {
	var msg BankTransactionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
