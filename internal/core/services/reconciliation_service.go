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
	"github.com/finledger/finledger/internal/query"
	"github.com/finledger/finledger/internal/utils"
	"github.com/google/uuid"
)

// reconciliationService links bank transactions to ledger entries and manages
// the review lifecycle. The at-most-one-link invariant is enforced by the
// database; the service's pre-check only makes the common case fail fast.
type reconciliationService struct {
	BaseService
	bankTxRepo portsrepo.BankTransactionRepositoryFacade
	entryRepo  portsrepo.LedgerEntryRepositoryFacade
	resolver   portssvc.ReferenceResolverSvc
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(bankTxRepo portsrepo.BankTransactionRepositoryFacade, entryRepo portsrepo.LedgerEntryRepositoryFacade, resolver portssvc.ReferenceResolverSvc) portssvc.ReconciliationSvc {
	return &reconciliationService{
		bankTxRepo: bankTxRepo,
		entryRepo:  entryRepo,
		resolver:   resolver,
	}
}

var _ portssvc.ReconciliationSvc = (*reconciliationService)(nil)

func (s *reconciliationService) CreateFromBankTransaction(ctx context.Context, userID, bankTransactionID string, req dto.CreateFromBankTransactionRequest) (*domain.LedgerEntry, error) {
	bankTx, err := s.bankTxRepo.FindBankTransactionByID(ctx, userID, bankTransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bank transaction %s: %w", bankTransactionID, err)
	}

	// Fail fast on an already-linked transaction. The unique index remains
	// the authority; a concurrent winner past this check surfaces through
	// SaveLinkedEntry as the same error type.
	if existing, err := s.entryRepo.FindEntryByBankTransactionID(ctx, userID, bankTransactionID); err == nil {
		return nil, &apperrors.DuplicateLinkError{
			BankTransactionID: bankTransactionID,
			ExistingEntryID:   existing.EntryID,
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing link for %s: %w", bankTransactionID, err)
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

	title := req.Title
	if title == "" {
		title = bankTx.MerchantName
	}
	if title == "" {
		title = bankTx.Description
	}
	description := req.Description
	if description == "" {
		description = "Created from bank transaction: " + bankTx.Description
	}

	now := time.Now()
	entry := domain.LedgerEntry{
		EntryID:           uuid.NewString(),
		UserID:            userID,
		Type:              domain.EntryTypeForBankTransaction(bankTx.Type),
		Title:             title,
		Description:       description,
		Amount:            bankTx.Amount.Abs(),
		Currency:          bankTx.Currency,
		CategoryID:        category.CategoryID,
		Date:              bankTx.Timestamp,
		Periodicity:       domain.NotRecurring,
		BankTransactionID: bankTransactionID,
		Tags:              req.Tags,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if counterparty != nil {
		entry.CounterpartyID = counterparty.CounterpartyID
	}

	if err := s.entryRepo.SaveLinkedEntry(ctx, entry); err != nil {
		var dup *apperrors.DuplicateLinkError
		if errors.As(err, &dup) {
			s.LogInfo(ctx, "lost link race for bank transaction",
				"bank_transaction_id", bankTransactionID,
				"existing_entry_id", dup.ExistingEntryID)
			return nil, dup
		}
		s.LogError(ctx, err, "failed to save linked ledger entry", "bank_transaction_id", bankTransactionID)
		return nil, err
	}

	entry.Category = category
	entry.Counterparty = counterparty
	return &entry, nil
}

func (s *reconciliationService) GetLinkedEntry(ctx context.Context, userID, bankTransactionID string) (*dto.LinkedEntryResponse, error) {
	if _, err := s.bankTxRepo.FindBankTransactionByID(ctx, userID, bankTransactionID); err != nil {
		return nil, fmt.Errorf("failed to load bank transaction %s: %w", bankTransactionID, err)
	}
	entry, err := s.entryRepo.FindEntryByBankTransactionID(ctx, userID, bankTransactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &dto.LinkedEntryResponse{Linked: false, Transaction: nil}, nil
		}
		return nil, fmt.Errorf("failed to find linked entry for %s: %w", bankTransactionID, err)
	}
	return &dto.LinkedEntryResponse{Linked: true, Transaction: entry}, nil
}

func (s *reconciliationService) SetReviewFlags(ctx context.Context, userID, bankTransactionID string, req dto.UpdateBankTransactionRequest) (*domain.BankTransaction, error) {
	patch := domain.ReviewFlagsPatch{
		Processed:   req.Processed,
		Notified:    req.Notified,
		Dismissed:   req.Dismissed,
		DismissNote: req.DismissNote,
	}
	// An empty patch is not an error: answer with the unchanged record, so a
	// missing id still comes back as not found.
	if patch.IsEmpty() {
		return s.bankTxRepo.FindBankTransactionByID(ctx, userID, bankTransactionID)
	}
	return s.bankTxRepo.UpdateReviewFlags(ctx, userID, bankTransactionID, patch)
}

func (s *reconciliationService) ListWithReviewStatus(ctx context.Context, userID string, req dto.ListBankTransactionsRequest) (*dto.ListBankTransactionsResponse, error) {
	filters, err := listFiltersFromRequest(req)
	if err != nil {
		return nil, err
	}
	page := query.NormalizePagination(req.Limit, req.Offset)

	transactions, total, err := s.bankTxRepo.ListBankTransactions(ctx, userID, *filters, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank transactions: %w", err)
	}
	linkedIDs, err := s.entryRepo.LinkedBankTransactionIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load linked transaction ids: %w", err)
	}
	linked := make(map[string]struct{}, len(linkedIDs))
	for _, id := range linkedIDs {
		linked[id] = struct{}{}
	}

	annotated := make([]dto.BankTransactionWithStatus, len(transactions))
	for i, tx := range transactions {
		_, isLinked := linked[tx.BankTransactionID]
		annotated[i] = dto.BankTransactionWithStatus{
			BankTransaction: tx,
			ReviewStatus:    tx.ReviewStatusFor(isLinked),
		}
	}

	return &dto.ListBankTransactionsResponse{
		Transactions:         annotated,
		LinkedTransactionIDs: linkedIDs,
		Pagination:           query.NewPageResponse(total, page),
	}, nil
}

func (s *reconciliationService) GetBankTransaction(ctx context.Context, userID, bankTransactionID string) (*domain.BankTransaction, error) {
	return s.bankTxRepo.FindBankTransactionByID(ctx, userID, bankTransactionID)
}

func (s *reconciliationService) DeleteBankTransaction(ctx context.Context, userID, bankTransactionID string) error {
	return s.bankTxRepo.DeleteBankTransaction(ctx, userID, bankTransactionID)
}

func (s *reconciliationService) Stats(ctx context.Context, userID string, req dto.BankTransactionStatsRequest) (*domain.BankTransactionStats, error) {
	from, err := utils.ParseOptionalDateParam(req.From)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	to, err := utils.ParseOptionalDateParam(req.To)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	filters := domain.BankTransactionFilters{
		AccountID: req.AccountID,
		BankID:    req.BankID,
		From:      from,
		To:        to,
	}
	return s.bankTxRepo.BankTransactionStats(ctx, userID, filters)
}

func listFiltersFromRequest(req dto.ListBankTransactionsRequest) (*domain.BankTransactionFilters, error) {
	from, err := utils.ParseOptionalDateParam(req.From)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	to, err := utils.ParseOptionalDateParam(req.To)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return &domain.BankTransactionFilters{
		AccountID:    req.AccountID,
		BankID:       req.BankID,
		Type:         req.Type,
		Processed:    req.Processed,
		From:         from,
		To:           to,
		Search:       req.Search,
		ReviewStatus: domain.ReviewStatus(req.ReviewStatus),
	}, nil
}
