package repositories

import (
	"context"

	"github.com/finledger/finledger/internal/core/domain"
)

// CategoryRepository manages user-scoped categories keyed by (userID, key).
type CategoryRepository interface {
	FindCategoryByKey(ctx context.Context, userID, key string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	SaveCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, userID, key string) error
}

// CounterpartyRepository manages user-scoped counterparties keyed by
// (userID, key).
type CounterpartyRepository interface {
	FindCounterpartyByKey(ctx context.Context, userID, key string) (*domain.Counterparty, error)
	ListCounterparties(ctx context.Context, userID string) ([]domain.Counterparty, error)
	SaveCounterparty(ctx context.Context, counterparty domain.Counterparty) error
	DeleteCounterparty(ctx context.Context, userID, key string) error
}
