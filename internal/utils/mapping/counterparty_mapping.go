package mapping

import (
	"github.com/finledger/finledger/internal/core/domain"
	"github.com/finledger/finledger/internal/models"
)

// ToModelCounterparty converts a domain.Counterparty to its persistence model.
func ToModelCounterparty(d domain.Counterparty) models.Counterparty {
	return models.Counterparty{
		CounterpartyID: d.CounterpartyID,
		UserID:         d.UserID,
		Key:            d.Key,
		Name:           d.Name,
		Type:           string(d.Type),
		Logo:           strPtr(d.Logo),
		Email:          strPtr(d.Email),
		Phone:          strPtr(d.Phone),
		Notes:          strPtr(d.Notes),
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainCounterparty converts a persistence model to domain.Counterparty.
func ToDomainCounterparty(m models.Counterparty) domain.Counterparty {
	return domain.Counterparty{
		CounterpartyID: m.CounterpartyID,
		UserID:         m.UserID,
		Key:            m.Key,
		Name:           m.Name,
		Type:           domain.CounterpartyType(m.Type),
		Logo:           deref(m.Logo),
		Email:          deref(m.Email),
		Phone:          deref(m.Phone),
		Notes:          deref(m.Notes),
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainCounterpartySlice converts a slice of counterparty models.
func ToDomainCounterpartySlice(ms []models.Counterparty) []domain.Counterparty {
	ds := make([]domain.Counterparty, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCounterparty(m)
	}
	return ds
}
