package mapping

import (
	"github.com/finledger/finledger/internal/core/domain"
	"github.com/finledger/finledger/internal/models"
)

// ToModelBankTransaction converts a domain.BankTransaction to its persistence model.
func ToModelBankTransaction(d domain.BankTransaction) models.BankTransaction {
	return models.BankTransaction{
		BankTransactionID: d.BankTransactionID,
		UserID:            d.UserID,
		AccountID:         d.AccountID,
		BankID:            d.BankID,
		Type:              string(d.Type),
		Amount:            d.Amount,
		Currency:          d.Currency,
		Description:       d.Description,
		MerchantName:      strPtr(d.MerchantName),
		OccurredAt:        d.Timestamp,
		Processed:         d.Processed,
		Notified:          d.Notified,
		Dismissed:         d.Dismissed,
		DismissNote:       strPtr(d.DismissNote),
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainBankTransaction converts a persistence model to domain.BankTransaction.
func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		BankTransactionID: m.BankTransactionID,
		UserID:            m.UserID,
		AccountID:         m.AccountID,
		BankID:            m.BankID,
		Type:              domain.BankTransactionType(m.Type),
		Amount:            m.Amount,
		Currency:          m.Currency,
		Description:       m.Description,
		MerchantName:      deref(m.MerchantName),
		Timestamp:         m.OccurredAt,
		Processed:         m.Processed,
		Notified:          m.Notified,
		Dismissed:         m.Dismissed,
		DismissNote:       deref(m.DismissNote),
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainBankTransactionSlice converts a slice of bank transaction models.
func ToDomainBankTransactionSlice(ms []models.BankTransaction) []domain.BankTransaction {
	ds := make([]domain.BankTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBankTransaction(m)
	}
	return ds
}
