package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finledger/finledger/internal/apperrors"
	"github.com/finledger/finledger/internal/core/domain"
	portsrepo "github.com/finledger/finledger/internal/core/ports/repositories"
	portssvc "github.com/finledger/finledger/internal/core/ports/services"
	"github.com/finledger/finledger/internal/dto"
	"github.com/finledger/finledger/internal/query"
	"github.com/finledger/finledger/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService is the search and CRUD surface over ledger entries.
type ledgerService struct {
	BaseService
	entryRepo portsrepo.LedgerEntryRepositoryFacade
	resolver  portssvc.ReferenceResolverSvc
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(entryRepo portsrepo.LedgerEntryRepositoryFacade, resolver portssvc.ReferenceResolverSvc) portssvc.LedgerSvc {
	return &ledgerService{
		entryRepo: entryRepo,
		resolver:  resolver,
	}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

// filtersFromRequest resolves reference keys and parses string-typed inputs
// into a composed filter set. The aggregation path reuses the same resolved
// filters, so a total always covers exactly what the page query matched.
func (s *ledgerService) filtersFromRequest(ctx context.Context, userID string, req dto.SearchEntriesRequest) (*query.EntryFilters, error) {
	dateFrom, err := utils.ParseOptionalDateParam(req.DateFrom)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	dateTo, err := utils.ParseOptionalDateParam(req.DateTo)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	filters := query.EntryFilters{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Search:      req.Search,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		Currency:    req.Currency,
		Periodicity: req.Periodicity,
		TagKeys:     req.Tags,
	}
	if req.AmountMin != nil {
		min := decimal.NewFromFloat(*req.AmountMin)
		filters.AmountMin = &min
	}
	if req.AmountMax != nil {
		max := decimal.NewFromFloat(*req.AmountMax)
		filters.AmountMax = &max
	}
	if req.Category != "" {
		category, err := s.resolver.ResolveCategory(ctx, userID, req.Category)
		if err != nil {
			return nil, err
		}
		filters.CategoryID = category.CategoryID
	}
	if req.CounterpartyKey != "" {
		counterparty, err := s.resolver.ResolveCounterparty(ctx, userID, req.CounterpartyKey)
		if err != nil {
			return nil, err
		}
		filters.CounterpartyID = counterparty.CounterpartyID
	}
	return &filters, nil
}

func (s *ledgerService) SearchEntries(ctx context.Context, userID string, req dto.SearchEntriesRequest, spec query.ResourceSpec) (*dto.SearchEntriesResult, error) {
	filters, err := s.filtersFromRequest(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	sort := query.ParseSort(req.SortBy, req.SortOrder, spec)
	page := query.NormalizePagination(req.Limit, req.Offset)

	entries, total, err := s.entryRepo.SearchEntries(ctx, *filters, userID, sort, page)
	if err != nil {
		return nil, fmt.Errorf("failed to search ledger entries: %w", err)
	}

	pagination := query.NewPageResponse(total, page)
	if spec.HasMoreFromReturned {
		pagination = query.NewPageResponseReturned(total, page, len(entries))
	}

	result := &dto.SearchEntriesResult{
		Results:    entries,
		Pagination: pagination,
		Sort:       sort,
	}
	if req.IncludeTotal {
		totalAmount, err := s.entryRepo.SumEntryAmounts(ctx, *filters, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to total ledger entries: %w", err)
		}
		result.TotalAmount = &totalAmount
	}
	return result, nil
}

func (s *ledgerService) CreateEntry(ctx context.Context, userID string, req dto.CreateLedgerEntryRequest) (*domain.LedgerEntry, error) {
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	category, err := s.resolver.ResolveCategory(ctx, userID, req.Category)
	if err != nil {
		return nil, err
	}
	var counterparty *domain.Counterparty
	if req.Counterparty != "" {
		counterparty, err = s.resolver.ResolveCounterparty(ctx, userID, req.Counterparty)
		if err != nil {
			return nil, err
		}
	}

	periodicity := domain.Periodicity(req.Periodicity)
	if req.Periodicity == "" {
		periodicity = domain.NotRecurring
	}

	now := time.Now()
	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		UserID:      userID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		CategoryID:  category.CategoryID,
		Date:        req.Date,
		Periodicity: periodicity,
		Tags:        req.Tags,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if counterparty != nil {
		entry.CounterpartyID = counterparty.CounterpartyID
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "failed to create ledger entry", "title", req.Title)
		return nil, err
	}
	entry.Category = category
	entry.Counterparty = counterparty
	return &entry, nil
}

func (s *ledgerService) GetEntry(ctx context.Context, userID, entryID string) (*domain.LedgerEntry, error) {
	return s.entryRepo.FindEntryByID(ctx, userID, entryID)
}

func (s *ledgerService) UpdateEntry(ctx context.Context, userID, entryID string, req dto.UpdateLedgerEntryRequest) (*domain.LedgerEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		entry.Title = *req.Title
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
		}
		entry.Amount = *req.Amount
	}
	if req.Currency != nil {
		entry.Currency = *req.Currency
	}
	if req.Category != nil {
		category, err := s.resolver.ResolveCategory(ctx, userID, *req.Category)
		if err != nil {
			return nil, err
		}
		entry.CategoryID = category.CategoryID
	}
	if req.Counterparty != nil {
		if *req.Counterparty == "" {
			entry.CounterpartyID = ""
		} else {
			counterparty, err := s.resolver.ResolveCounterparty(ctx, userID, *req.Counterparty)
			if err != nil {
				return nil, err
			}
			entry.CounterpartyID = counterparty.CounterpartyID
		}
	}
	if req.Date != nil {
		entry.Date = *req.Date
	}
	if req.Periodicity != nil {
		entry.Periodicity = domain.Periodicity(*req.Periodicity)
	}
	if req.Tags != nil {
		entry.Tags = req.Tags
	}
	entry.UpdatedAt = time.Now()

	if err := s.entryRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "failed to update ledger entry", "entry_id", entryID)
		return nil, err
	}
	return s.entryRepo.FindEntryByID(ctx, userID, entryID)
}

func (s *ledgerService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	return s.entryRepo.DeleteEntry(ctx, userID, entryID)
}
