package services_test

import (
	"context"
	"time"

	"github.com/finledger/finledger/internal/core/domain"
	"github.com/finledger/finledger/internal/query"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock BankTransactionRepository ---
type MockBankTransactionRepository struct {
	mock.Mock
}

func (m *MockBankTransactionRepository) FindBankTransactionByID(ctx context.Context, userID, bankTransactionID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, userID, bankTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) ListBankTransactions(ctx context.Context, userID string, filters domain.BankTransactionFilters, page query.Pagination) ([]domain.BankTransaction, int64, error) {
	args := m.Called(ctx, userID, filters, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.BankTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockBankTransactionRepository) BankTransactionStats(ctx context.Context, userID string, filters domain.BankTransactionFilters) (*domain.BankTransactionStats, error) {
	args := m.Called(ctx, userID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransactionStats), args.Error(1)
}

func (m *MockBankTransactionRepository) UpsertBankTransaction(ctx context.Context, tx domain.BankTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockBankTransactionRepository) UpdateReviewFlags(ctx context.Context, userID, bankTransactionID string, patch domain.ReviewFlagsPatch) (*domain.BankTransaction, error) {
	args := m.Called(ctx, userID, bankTransactionID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) DeleteBankTransaction(ctx context.Context, userID, bankTransactionID string) error {
	args := m.Called(ctx, userID, bankTransactionID)
	return args.Error(0)
}

// --- Mock LedgerEntryRepository ---
type MockLedgerEntryRepository struct {
	mock.Mock
}

func (m *MockLedgerEntryRepository) FindEntryByID(ctx context.Context, userID, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) FindEntryByBankTransactionID(ctx context.Context, userID, bankTransactionID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, bankTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) SearchEntries(ctx context.Context, filters query.EntryFilters, userID string, sort query.Sort, page query.Pagination) ([]domain.LedgerEntry, int64, error) {
	args := m.Called(ctx, filters, userID, sort, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerEntryRepository) SumEntryAmounts(ctx context.Context, filters query.EntryFilters, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, filters, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerEntryRepository) LinkedBankTransactionIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLedgerEntryRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerEntryRepository) SaveLinkedEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerEntryRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerEntryRepository) DeleteEntry(ctx context.Context, userID, entryID string) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}

// --- Mock SummaryRepository ---
type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) CategoryTotals(ctx context.Context, userID string, entryType domain.EntryType, from, to time.Time, currency string) ([]domain.CategorySummary, error) {
	args := m.Called(ctx, userID, entryType, from, to, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategorySummary), args.Error(1)
}

func (m *MockSummaryRepository) LatestEntries(ctx context.Context, userID string, from, to time.Time, currency string, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, from, to, currency, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// --- Mock ReferenceResolver ---
type MockReferenceResolver struct {
	mock.Mock
}

func (m *MockReferenceResolver) ResolveCategory(ctx context.Context, userID, key string) (*domain.Category, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockReferenceResolver) ResolveCounterparty(ctx context.Context, userID, key string) (*domain.Counterparty, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counterparty), args.Error(1)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByKey(ctx context.Context, userID, key string) (*domain.Category, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, userID, key string) error {
	args := m.Called(ctx, userID, key)
	return args.Error(0)
}

// --- Mock CounterpartyRepository ---
type MockCounterpartyRepository struct {
	mock.Mock
}

func (m *MockCounterpartyRepository) FindCounterpartyByKey(ctx context.Context, userID, key string) (*domain.Counterparty, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyRepository) ListCounterparties(ctx context.Context, userID string) ([]domain.Counterparty, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyRepository) SaveCounterparty(ctx context.Context, counterparty domain.Counterparty) error {
	args := m.Called(ctx, counterparty)
	return args.Error(0)
}

func (m *MockCounterpartyRepository) DeleteCounterparty(ctx context.Context, userID, key string) error {
	args := m.Called(ctx, userID, key)
	return args.Error(0)
}

// anyContext matches any context, including ones derived from the caller's.
func anyContext() interface{} {
	return mock.MatchedBy(func(context.Context) bool { return true })
}
