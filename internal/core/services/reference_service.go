package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finledger/finledger/internal/apperrors"
	"github.com/finledger/finledger/internal/core/domain"
	portsrepo "github.com/finledger/finledger/internal/core/ports/repositories"
	portssvc "github.com/finledger/finledger/internal/core/ports/services"
	"github.com/finledger/finledger/internal/dto"
	"github.com/google/uuid"
)

// referenceService resolves human keys to categories and counterparties and
// carries their existence-level CRUD. Strictly user-scoped.
type referenceService struct {
	BaseService
	categoryRepo     portsrepo.CategoryRepository
	counterpartyRepo portsrepo.CounterpartyRepository
}

// NewReferenceService creates a new reference service.
func NewReferenceService(categoryRepo portsrepo.CategoryRepository, counterpartyRepo portsrepo.CounterpartyRepository) portssvc.ReferenceSvc {
	return &referenceService{
		categoryRepo:     categoryRepo,
		counterpartyRepo: counterpartyRepo,
	}
}

var _ portssvc.ReferenceSvc = (*referenceService)(nil)

func (s *referenceService) ResolveCategory(ctx context.Context, userID, key string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByKey(ctx, userID, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown category '%s'", apperrors.ErrValidation, key)
		}
		return nil, fmt.Errorf("failed to resolve category '%s': %w", key, err)
	}
	return category, nil
}

func (s *referenceService) ResolveCounterparty(ctx context.Context, userID, key string) (*domain.Counterparty, error) {
	counterparty, err := s.counterpartyRepo.FindCounterpartyByKey(ctx, userID, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown counterparty '%s'", apperrors.ErrValidation, key)
		}
		return nil, fmt.Errorf("failed to resolve counterparty '%s': %w", key, err)
	}
	return counterparty, nil
}

func (s *referenceService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	return s.categoryRepo.ListCategories(ctx, userID)
}

func (s *referenceService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	now := time.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Key:        req.Key,
		Name:       req.Name,
		Color:      req.Color,
		Icon:       req.Icon,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "failed to create category", "key", req.Key)
		return nil, err
	}
	return &category, nil
}

func (s *referenceService) DeleteCategory(ctx context.Context, userID, key string) error {
	return s.categoryRepo.DeleteCategory(ctx, userID, key)
}

func (s *referenceService) ListCounterparties(ctx context.Context, userID string) ([]domain.Counterparty, error) {
	return s.counterpartyRepo.ListCounterparties(ctx, userID)
}

func (s *referenceService) CreateCounterparty(ctx context.Context, userID string, req dto.CreateCounterpartyRequest) (*domain.Counterparty, error) {
	cpType := domain.CounterpartyType(req.Type)
	if req.Type == "" {
		cpType = domain.CounterpartyOther
	}
	now := time.Now()
	counterparty := domain.Counterparty{
		CounterpartyID: uuid.NewString(),
		UserID:         userID,
		Key:            req.Key,
		Name:           req.Name,
		Type:           cpType,
		Logo:           req.Logo,
		Email:          req.Email,
		Phone:          req.Phone,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.counterpartyRepo.SaveCounterparty(ctx, counterparty); err != nil {
		s.LogError(ctx, err, "failed to create counterparty", "key", req.Key)
		return nil, err
	}
	return &counterparty, nil
}

func (s *referenceService) DeleteCounterparty(ctx context.Context, userID, key string) error {
	return s.counterpartyRepo.DeleteCounterparty(ctx, userID, key)
}
