package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finledger/finledger/internal/core/ports/services"
	"github.com/finledger/finledger/internal/dto"
	"github.com/finledger/finledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bankTransactionHandler handles HTTP requests for bank transactions and
// their reconciliation into ledger entries.
type bankTransactionHandler struct {
	reconciliationService portssvc.ReconciliationSvc
}

func newBankTransactionHandler(rs portssvc.ReconciliationSvc) *bankTransactionHandler {
	return &bankTransactionHandler{
		reconciliationService: rs,
	}
}

// RegisterBankTransactionRoutes registers routes related to bank transactions.
func RegisterBankTransactionRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvc) {
	h := newBankTransactionHandler(reconciliationService)

	bankTransactions := rg.Group("/bank-transactions")
	{
		bankTransactions.GET("", h.listBankTransactions)
		bankTransactions.GET("/stats", h.getStats)
		bankTransactions.GET("/:id", h.getBankTransaction)
		bankTransactions.PATCH("/:id", h.updateReviewFlags)
		bankTransactions.DELETE("/:id", h.deleteBankTransaction)
		bankTransactions.GET("/:id/linked", h.getLinkedTransaction)
		bankTransactions.POST("/:id/create-transaction", h.createTransaction)
	}
}

// listBankTransactions godoc
// @Summary List bank transactions
// @Description Returns one filtered page of the caller's bank transactions, each annotated with its derived review status
// @Tags bank-transactions
// @Produce json
// @Param accountId query string false "Filter by account"
// @Param bankId query string false "Filter by bank"
// @Param type query string false "DEBIT or CREDIT"
// @Param processed query bool false "Filter by processed flag"
// @Param from query string false "Start of occurred-at range (RFC3339 or YYYY-MM-DD)"
// @Param to query string false "End of occurred-at range"
// @Param search query string false "Free text over description and merchant name"
// @Param reviewStatus query string false "dismissed, linked or unreviewed"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListBankTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid filters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /bank-transactions [get]
func (h *bankTransactionHandler) listBankTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListBankTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind bank transaction list query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.reconciliationService.ListWithReviewStatus(c.Request.Context(), userID, req)
	if err != nil {
		logger.Error("Failed to list bank transactions", slog.String("error", err.Error()))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getStats godoc
// @Summary Bank transaction statistics
// @Description Aggregates totals and counts over the caller's bank transactions
// @Tags bank-transactions
// @Produce json
// @Param accountId query string false "Filter by account"
// @Param bankId query string false "Filter by bank"
// @Param from query string false "Start of occurred-at range"
// @Param to query string false "End of occurred-at range"
// @Success 200 {object} domain.BankTransactionStats
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /bank-transactions/stats [get]
func (h *bankTransactionHandler) getStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.BankTransactionStatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	stats, err := h.reconciliationService.Stats(c.Request.Context(), userID, req)
	if err != nil {
		logger.Error("Failed to compute bank transaction stats", slog.String("error", err.Error()))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// getBankTransaction godoc
// @Summary Get a bank transaction
// @Tags bank-transactions
// @Produce json
// @Param id path string true "Bank transaction ID"
// @Success 200 {object} domain.BankTransaction
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /bank-transactions/{id} [get]
func (h *bankTransactionHandler) getBankTransaction(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tx, err := h.reconciliationService.GetBankTransaction(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// updateReviewFlags godoc
// @Summary Update review flags
// @Description Partially updates processed/notified/dismissed/dismissNote; absent fields are untouched and an empty patch answers with the unchanged record
// @Tags bank-transactions
// @Accept json
// @Produce json
// @Param id path string true "Bank transaction ID"
// @Param flags body dto.UpdateBankTransactionRequest true "Flags to change"
// @Success 200 {object} domain.BankTransaction
// @Failure 400 {object} map[string]string "Malformed patch"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /bank-transactions/{id} [patch]
func (h *bankTransactionHandler) updateReviewFlags(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateBankTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind review flags patch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tx, err := h.reconciliationService.SetReviewFlags(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// deleteBankTransaction godoc
// @Summary Delete a bank transaction
// @Description Removes the bank transaction; a linked ledger entry is left untouched
// @Tags bank-transactions
// @Param id path string true "Bank transaction ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /bank-transactions/{id} [delete]
func (h *bankTransactionHandler) deleteBankTransaction(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.reconciliationService.DeleteBankTransaction(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// getLinkedTransaction godoc
// @Summary Get the linked ledger entry
// @Description Reports whether the bank transaction has been reconciled; not linked is a normal answer, not an error
// @Tags bank-transactions
// @Produce json
// @Param id path string true "Bank transaction ID"
// @Success 200 {object} dto.LinkedEntryResponse
// @Failure 404 {object} map[string]string "No such bank transaction"
// @Security BearerAuth
// @Router /bank-transactions/{id}/linked [get]
func (h *bankTransactionHandler) getLinkedTransaction(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.reconciliationService.GetLinkedEntry(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// createTransaction godoc
// @Summary Reconcile a bank transaction into a ledger entry
// @Description Derives a ledger entry from the bank transaction and establishes the permanent link. Linking clears a prior dismissal.
// @Tags bank-transactions
// @Accept json
// @Produce json
// @Param id path string true "Bank transaction ID"
// @Param entry body dto.CreateFromBankTransactionRequest true "Reconciliation details"
// @Success 201 {object} domain.LedgerEntry
// @Failure 400 {object} map[string]string "Missing category or unknown reference"
// @Failure 404 {object} map[string]string "No such bank transaction"
// @Failure 409 {object} map[string]string "Already linked; response carries existingTransactionId"
// @Security BearerAuth
// @Router /bank-transactions/{id}/create-transaction [post]
func (h *bankTransactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateFromBankTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind create-transaction request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.reconciliationService.CreateFromBankTransaction(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Bank transaction reconciled",
		slog.String("bank_transaction_id", c.Param("id")),
		slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, entry)
}
