package mapping

import (
	"github.com/finledger/finledger/internal/core/domain"
	"github.com/finledger/finledger/internal/models"
)

// ToModelCategory converts a domain.Category to its persistence model.
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID: d.CategoryID,
		UserID:     d.UserID,
		Key:        d.Key,
		NameEn:     d.Name.En,
		NameEs:     d.Name.Es,
		Color:      d.Color,
		Icon:       d.Icon,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainCategory converts a persistence model to domain.Category.
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID: m.CategoryID,
		UserID:     m.UserID,
		Key:        m.Key,
		Name:       domain.CategoryName{En: m.NameEn, Es: m.NameEs},
		Color:      m.Color,
		Icon:       m.Icon,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainCategorySlice converts a slice of category models.
func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	ds := make([]domain.Category, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}
