package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finledger/finledger/internal/apperrors"
	"github.com/finledger/finledger/internal/core/domain"
	portssvc "github.com/finledger/finledger/internal/core/ports/services"
	"github.com/finledger/finledger/internal/core/services"
	"github.com/finledger/finledger/internal/dto"
	"github.com/finledger/finledger/internal/query"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var testSearchSpec = query.ResourceSpec{
	ResponseKey:       "expenses",
	CounterpartyField: "payee",
	SortFields:        []string{"date", "amount", "title", "createdAt"},
	DefaultSortBy:     "date",
}

type LedgerServiceTestSuite struct {
	suite.Suite
	mockEntryRepo *MockLedgerEntryRepository
	mockResolver  *MockReferenceResolver
	service       portssvc.LedgerSvc
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockLedgerEntryRepository)
	suite.mockResolver = new(MockReferenceResolver)
	suite.service = services.NewLedgerService(suite.mockEntryRepo, suite.mockResolver)
}

func (suite *LedgerServiceTestSuite) TestSearchEntries_ResolvesReferenceKeys() {
	ctx := context.Background()
	category := &domain.Category{CategoryID: "cat-1", Key: "food"}
	counterparty := &domain.Counterparty{CounterpartyID: "cp-1", Key: "mercadona"}

	suite.mockResolver.On("ResolveCategory", ctx, "user-1", "food").Return(category, nil).Once()
	suite.mockResolver.On("ResolveCounterparty", ctx, "user-1", "mercadona").Return(counterparty, nil).Once()
	suite.mockEntryRepo.On("SearchEntries", ctx, mock.MatchedBy(func(f query.EntryFilters) bool {
		return f.CategoryID == "cat-1" && f.CounterpartyID == "cp-1" && f.Type == "expense"
	}), "user-1", mock.AnythingOfType("query.Sort"), query.Pagination{Limit: 50, Offset: 0}).
		Return([]domain.LedgerEntry{{EntryID: "entry-1"}}, int64(1), nil).Once()

	result, err := suite.service.SearchEntries(ctx, "user-1", dto.SearchEntriesRequest{
		Type:            "expense",
		Category:        "food",
		CounterpartyKey: "mercadona",
	}, testSearchSpec)

	suite.Require().NoError(err)
	suite.Len(result.Results, 1)
	suite.Equal(int64(1), result.Pagination.Total)
	suite.Nil(result.TotalAmount)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockResolver.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestSearchEntries_UnknownCounterpartyKey() {
	ctx := context.Background()
	suite.mockResolver.On("ResolveCounterparty", ctx, "user-1", "nobody").
		Return(nil, apperrors.NewValidationFailedError("unknown counterparty 'nobody'")).Once()

	result, err := suite.service.SearchEntries(ctx, "user-1", dto.SearchEntriesRequest{
		CounterpartyKey: "nobody",
	}, testSearchSpec)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SearchEntries")
}

func (suite *LedgerServiceTestSuite) TestSearchEntries_IncludeTotalReusesFilters() {
	ctx := context.Background()
	total := decimal.RequireFromString("127.35")
	var searchFilters, sumFilters query.EntryFilters

	suite.mockEntryRepo.On("SearchEntries", ctx, mock.MatchedBy(func(f query.EntryFilters) bool {
		searchFilters = f
		return true
	}), "user-1", mock.AnythingOfType("query.Sort"), mock.AnythingOfType("query.Pagination")).
		Return([]domain.LedgerEntry{}, int64(0), nil).Once()
	suite.mockEntryRepo.On("SumEntryAmounts", ctx, mock.MatchedBy(func(f query.EntryFilters) bool {
		sumFilters = f
		return true
	}), "user-1").Return(total, nil).Once()

	result, err := suite.service.SearchEntries(ctx, "user-1", dto.SearchEntriesRequest{
		Type:         "expense",
		Currency:     "EUR",
		IncludeTotal: true,
	}, testSearchSpec)

	suite.Require().NoError(err)
	suite.Require().NotNil(result.TotalAmount)
	suite.True(result.TotalAmount.Equal(total))
	suite.Equal(searchFilters, sumFilters)
}

func (suite *LedgerServiceTestSuite) TestSearchEntries_HasMoreFromReturnedCount() {
	ctx := context.Background()
	spec := testSearchSpec
	spec.HasMoreFromReturned = true

	suite.mockEntryRepo.On("SearchEntries", ctx, mock.AnythingOfType("query.EntryFilters"), "user-1",
		mock.AnythingOfType("query.Sort"), query.Pagination{Limit: 10, Offset: 0}).
		Return(make([]domain.LedgerEntry, 10), int64(25), nil).Once()

	result, err := suite.service.SearchEntries(ctx, "user-1", dto.SearchEntriesRequest{Limit: 10}, spec)

	suite.Require().NoError(err)
	suite.True(result.Pagination.HasMore)
	suite.Equal(int64(25), result.Pagination.Total)
}

func (suite *LedgerServiceTestSuite) TestSearchEntries_BadDate() {
	ctx := context.Background()

	result, err := suite.service.SearchEntries(ctx, "user-1", dto.SearchEntriesRequest{
		DateFrom: "31/12/2024",
	}, testSearchSpec)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_NegativeAmountRejected() {
	ctx := context.Background()

	entry, err := suite.service.CreateEntry(ctx, "user-1", dto.CreateLedgerEntryRequest{
		Type:     domain.EntryTypeExpense,
		Title:    "refund gone wrong",
		Amount:   decimal.RequireFromString("-5.00"),
		Currency: "EUR",
		Category: "food",
		Date:     time.Now(),
	})

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry")
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_DefaultsPeriodicity() {
	ctx := context.Background()
	category := &domain.Category{CategoryID: "cat-1", Key: "food"}

	suite.mockResolver.On("ResolveCategory", ctx, "user-1", "food").Return(category, nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Periodicity == domain.NotRecurring && e.CategoryID == "cat-1" && e.EntryID != ""
	})).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, "user-1", dto.CreateLedgerEntryRequest{
		Type:     domain.EntryTypeExpense,
		Title:    "Groceries",
		Amount:   decimal.RequireFromString("23.10"),
		Currency: "EUR",
		Category: "food",
		Date:     time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	})

	suite.Require().NoError(err)
	suite.Equal(domain.NotRecurring, entry.Periodicity)
	suite.Equal(category, entry.Category)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestUpdateEntry_EmptyCounterpartyClearsReference() {
	ctx := context.Background()
	existing := &domain.LedgerEntry{
		EntryID:        "entry-1",
		UserID:         "user-1",
		Type:           domain.EntryTypeExpense,
		Title:          "Groceries",
		Amount:         decimal.RequireFromString("23.10"),
		CounterpartyID: "cp-1",
	}
	refetched := &domain.LedgerEntry{EntryID: "entry-1", Title: "Groceries"}
	empty := ""

	suite.mockEntryRepo.On("FindEntryByID", ctx, "user-1", "entry-1").Return(existing, nil).Once()
	suite.mockEntryRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.CounterpartyID == ""
	})).Return(nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, "user-1", "entry-1").Return(refetched, nil).Once()

	entry, err := suite.service.UpdateEntry(ctx, "user-1", "entry-1", dto.UpdateLedgerEntryRequest{
		Counterparty: &empty,
	})

	suite.Require().NoError(err)
	suite.Equal(refetched, entry)
	suite.mockResolver.AssertNotCalled(suite.T(), "ResolveCounterparty")
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestUpdateEntry_NotFound() {
	ctx := context.Background()
	suite.mockEntryRepo.On("FindEntryByID", ctx, "user-1", "entry-missing").Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.UpdateEntry(ctx, "user-1", "entry-missing", dto.UpdateLedgerEntryRequest{})

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
