package services

import (
	"context"

	"github.com/finledger/finledger/internal/core/domain"
	"github.com/finledger/finledger/internal/dto"
)

// ReferenceResolverSvc resolves human keys to internal references, strictly
// scoped per user. Pure reads.
type ReferenceResolverSvc interface {
	// ResolveCategory maps a category key to its internal id, or returns a
	// validation error wrapping the unknown key.
	ResolveCategory(ctx context.Context, userID, key string) (*domain.Category, error)

	// ResolveCounterparty maps a counterparty key to its internal id, same
	// contract as ResolveCategory.
	ResolveCounterparty(ctx context.Context, userID, key string) (*domain.Counterparty, error)
}

// ReferenceSvc adds the existence-level CRUD over categories and
// counterparties on top of resolution.
type ReferenceSvc interface {
	ReferenceResolverSvc

	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, key string) error

	ListCounterparties(ctx context.Context, userID string) ([]domain.Counterparty, error)
	CreateCounterparty(ctx context.Context, userID string, req dto.CreateCounterpartyRequest) (*domain.Counterparty, error)
	DeleteCounterparty(ctx context.Context, userID, key string) error
}
