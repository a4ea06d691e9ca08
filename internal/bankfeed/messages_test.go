package bankfeed

import (
	"testing"
	"time"

	"github.com/finledger/finledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMessage() BankTransactionMessage {
	return BankTransactionMessage{
		ID:           "bt-1",
		UserID:       "user-1",
		AccountID:    "acc-1",
		BankID:       "bank-1",
		Type:         "DEBIT",
		Amount:       decimal.RequireFromString("-42.50"),
		Currency:     "EUR",
		Description:  "CARD PAYMENT CAFE",
		MerchantName: "Cafe",
		Timestamp:    time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
	}
}

func TestBankTransactionMessageValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BankTransactionMessage)
		wantErr string
	}{
		{"valid", func(m *BankTransactionMessage) {}, ""},
		{"missing id", func(m *BankTransactionMessage) { m.ID = "" }, "missing id"},
		{"missing userId", func(m *BankTransactionMessage) { m.UserID = "" }, "missing userId"},
		{"invalid type", func(m *BankTransactionMessage) { m.Type = "TRANSFER" }, "invalid type"},
		{"lowercase type rejected", func(m *BankTransactionMessage) { m.Type = "debit" }, "invalid type"},
		{"missing currency", func(m *BankTransactionMessage) { m.Currency = "" }, "missing currency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validMessage()
			tt.mutate(&msg)
			err := msg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestBankTransactionMessageToDomain(t *testing.T) {
	msg := validMessage()
	tx := msg.ToDomain()

	assert.Equal(t, "bt-1", tx.BankTransactionID)
	assert.Equal(t, "user-1", tx.UserID)
	assert.Equal(t, domain.BankTransactionDebit, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("-42.50")), "amount keeps the source sign")
	assert.Equal(t, "EUR", tx.Currency)
	assert.Equal(t, "Cafe", tx.MerchantName)
	assert.Equal(t, msg.Timestamp, tx.Timestamp)
	assert.False(t, tx.Processed)
	assert.False(t, tx.Dismissed)
	assert.False(t, tx.CreatedAt.IsZero())
}

func TestBankTransactionMessageFromJSON(t *testing.T) {
	payload := []byte(`{
		"id": "bt-7",
		"userId": "user-1",
		"accountId": "acc-1",
		"bankId": "bank-1",
		"type": "CREDIT",
		"amount": 1500.00,
		"currency": "EUR",
		"description": "PAYROLL",
		"timestamp": "2025-03-25T08:00:00Z"
	}`)

	msg, err := BankTransactionMessageFromJSON(payload)
	require.NoError(t, err)
	assert.Equal(t, "bt-7", msg.ID)
	assert.Equal(t, "CREDIT", msg.Type)
	assert.True(t, msg.Amount.Equal(decimal.RequireFromString("1500")))
	assert.NoError(t, msg.Validate())
}

func TestBankTransactionMessageFromJSONMalformed(t *testing.T) {
	_, err := BankTransactionMessageFromJSON([]byte(`{"id": `))
	assert.Error(t, err)
}
