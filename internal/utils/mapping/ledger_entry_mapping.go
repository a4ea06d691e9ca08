package mapping

import (
	"github.com/finledger/finledger/internal/core/domain"
	"github.com/finledger/finledger/internal/models"
)

// ToModelLedgerEntry converts a domain.LedgerEntry to its persistence model.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	tags := make([]models.Tag, len(d.Tags))
	for i, tag := range d.Tags {
		tags[i] = models.Tag{Key: tag.Key, Name: tag.Name}
	}
	return models.LedgerEntry{
		EntryID:           d.EntryID,
		UserID:            d.UserID,
		Type:              string(d.Type),
		Title:             d.Title,
		Description:       strPtr(d.Description),
		Amount:            d.Amount,
		Currency:          d.Currency,
		CategoryID:        d.CategoryID,
		CounterpartyID:    strPtr(d.CounterpartyID),
		EntryDate:         d.Date,
		Periodicity:       string(d.Periodicity),
		BankTransactionID: strPtr(d.BankTransactionID),
		Tags:              tags,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainLedgerEntry converts a persistence model to domain.LedgerEntry.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	tags := make([]domain.Tag, len(m.Tags))
	for i, tag := range m.Tags {
		tags[i] = domain.Tag{Key: tag.Key, Name: tag.Name}
	}
	return domain.LedgerEntry{
		EntryID:           m.EntryID,
		UserID:            m.UserID,
		Type:              domain.EntryType(m.Type),
		Title:             m.Title,
		Description:       deref(m.Description),
		Amount:            m.Amount,
		Currency:          m.Currency,
		CategoryID:        m.CategoryID,
		CounterpartyID:    deref(m.CounterpartyID),
		Date:              m.EntryDate,
		Periodicity:       domain.Periodicity(m.Periodicity),
		BankTransactionID: deref(m.BankTransactionID),
		Tags:              tags,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainLedgerEntrySlice converts a slice of ledger entry models.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
