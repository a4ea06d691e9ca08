package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finledger/finledger/internal/apperrors"
	"github.com/finledger/finledger/internal/core/domain"
	portssvc "github.com/finledger/finledger/internal/core/ports/services"
	"github.com/finledger/finledger/internal/dto"
	"github.com/finledger/finledger/internal/handlers"
	"github.com/finledger/finledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) CreateFromBankTransaction(ctx context.Context, userID, bankTransactionID string, req dto.CreateFromBankTransactionRequest) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, bankTransactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockReconciliationService) GetLinkedEntry(ctx context.Context, userID, bankTransactionID string) (*dto.LinkedEntryResponse, error) {
	args := m.Called(ctx, userID, bankTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LinkedEntryResponse), args.Error(1)
}

func (m *MockReconciliationService) SetReviewFlags(ctx context.Context, userID, bankTransactionID string, req dto.UpdateBankTransactionRequest) (*domain.BankTransaction, error) {
	args := m.Called(ctx, userID, bankTransactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockReconciliationService) ListWithReviewStatus(ctx context.Context, userID string, req dto.ListBankTransactionsRequest) (*dto.ListBankTransactionsResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListBankTransactionsResponse), args.Error(1)
}

func (m *MockReconciliationService) GetBankTransaction(ctx context.Context, userID, bankTransactionID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, userID, bankTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockReconciliationService) DeleteBankTransaction(ctx context.Context, userID, bankTransactionID string) error {
	args := m.Called(ctx, userID, bankTransactionID)
	return args.Error(0)
}

func (m *MockReconciliationService) Stats(ctx context.Context, userID string, req dto.BankTransactionStatsRequest) (*domain.BankTransactionStats, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransactionStats), args.Error(1)
}

var _ portssvc.ReconciliationSvc = (*MockReconciliationService)(nil)

// --- Test Suite ---
type BankTransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockReconciliationService
	jwtSecret   string
}

func (suite *BankTransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "finledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *BankTransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockReconciliationService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterBankTransactionRoutes(v1, suite.mockService)
}

func (suite *BankTransactionHandlerTestSuite) authedRequest(method, url string, body []byte, userID string) *http.Request {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Accept", "application/json")
	return req
}

// --- Test Cases ---

func (suite *BankTransactionHandlerTestSuite) TestCreateTransaction_Success() {
	userID := "user-1"
	entry := &domain.LedgerEntry{
		EntryID:           "entry-1",
		Type:              domain.EntryTypeExpense,
		Title:             "Cafe",
		Amount:            decimal.RequireFromString("42.50"),
		Currency:          "EUR",
		BankTransactionID: "bt-1",
	}

	suite.mockService.On("CreateFromBankTransaction",
		mock.Anything,
		userID,
		"bt-1",
		mock.MatchedBy(func(req dto.CreateFromBankTransactionRequest) bool {
			return req.Category == "food" && req.Counterparty == "cafe-central"
		}),
	).Return(entry, nil).Once()

	body := []byte(`{"category": "food", "counterparty": "cafe-central"}`)
	req := suite.authedRequest(http.MethodPost, "/api/v1/bank-transactions/bt-1/create-transaction", body, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody domain.LedgerEntry
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err)
	suite.Equal("entry-1", responseBody.EntryID)
	suite.Equal("bt-1", responseBody.BankTransactionID)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BankTransactionHandlerTestSuite) TestCreateTransaction_AlreadyLinkedConflict() {
	userID := "user-1"
	dup := &apperrors.DuplicateLinkError{BankTransactionID: "bt-1", ExistingEntryID: "entry-9"}

	suite.mockService.On("CreateFromBankTransaction", mock.Anything, userID, "bt-1", mock.Anything).
		Return(nil, dup).Once()

	body := []byte(`{"category": "food"}`)
	req := suite.authedRequest(http.MethodPost, "/api/v1/bank-transactions/bt-1/create-transaction", body, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)

	var responseBody map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err)
	suite.Equal("entry-9", responseBody["existingTransactionId"])
	suite.NotEmpty(responseBody["error"])
}

func (suite *BankTransactionHandlerTestSuite) TestCreateTransaction_MissingCategory() {
	userID := "user-1"

	body := []byte(`{"title": "no category here"}`)
	req := suite.authedRequest(http.MethodPost, "/api/v1/bank-transactions/bt-1/create-transaction", body, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateFromBankTransaction")
}

func (suite *BankTransactionHandlerTestSuite) TestGetLinkedTransaction_NotLinked() {
	userID := "user-1"
	suite.mockService.On("GetLinkedEntry", mock.Anything, userID, "bt-1").
		Return(&dto.LinkedEntryResponse{Linked: false}, nil).Once()

	req := suite.authedRequest(http.MethodGet, "/api/v1/bank-transactions/bt-1/linked", nil, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.LinkedEntryResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err)
	suite.False(responseBody.Linked)
	suite.Nil(responseBody.Transaction)
}

func (suite *BankTransactionHandlerTestSuite) TestGetLinkedTransaction_UnknownBankTransaction() {
	userID := "user-1"
	suite.mockService.On("GetLinkedEntry", mock.Anything, userID, "bt-missing").
		Return(nil, apperrors.ErrNotFound).Once()

	req := suite.authedRequest(http.MethodGet, "/api/v1/bank-transactions/bt-missing/linked", nil, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *BankTransactionHandlerTestSuite) TestListBankTransactions_ForwardsFilters() {
	userID := "user-1"
	expected := &dto.ListBankTransactionsResponse{
		Transactions:         []dto.BankTransactionWithStatus{},
		LinkedTransactionIDs: []string{},
	}

	suite.mockService.On("ListWithReviewStatus", mock.Anything, userID, mock.MatchedBy(func(req dto.ListBankTransactionsRequest) bool {
		return req.ReviewStatus == "unreviewed" && req.Limit == 10
	})).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/bank-transactions?reviewStatus=%s&limit=%d", "unreviewed", 10)
	req := suite.authedRequest(http.MethodGet, url, nil, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BankTransactionHandlerTestSuite) TestListBankTransactions_InvalidReviewStatus() {
	userID := "user-1"

	req := suite.authedRequest(http.MethodGet, "/api/v1/bank-transactions?reviewStatus=archived", nil, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListWithReviewStatus")
}

func (suite *BankTransactionHandlerTestSuite) TestUpdateReviewFlags_NoToken() {
	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/bank-transactions/bt-1", bytes.NewReader([]byte(`{"dismissed": true}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "SetReviewFlags")
}

// --- Run Test Suite ---
func TestBankTransactionHandler(t *testing.T) {
	suite.Run(t, new(BankTransactionHandlerTestSuite))
}
