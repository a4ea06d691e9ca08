package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finledger/finledger/internal/core/ports/services"
	"github.com/finledger/finledger/internal/dto"
	"github.com/finledger/finledger/internal/middleware"
	"github.com/finledger/finledger/internal/query"
	"github.com/gin-gonic/gin"
)

// unifiedSpec configures the composer for the unified transactions resource.
// It is the only surface using the returned-count pagination variant.
var unifiedSpec = query.ResourceSpec{
	ResponseKey:         "transactions",
	CounterpartyField:   "counterparty",
	SortFields:          []string{"date", "amount", "title", "createdAt"},
	DefaultSortBy:       "date",
	HasMoreFromReturned: true,
}

// transactionHandler handles the unified ledger entry resource: search over
// both types plus manual CRUD.
type transactionHandler struct {
	ledgerService portssvc.LedgerSvc
}

func newTransactionHandler(ls portssvc.LedgerSvc) *transactionHandler {
	return &transactionHandler{
		ledgerService: ls,
	}
}

// registerTransactionRoutes registers the unified ledger entry routes.
func registerTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvc) {
	h := newTransactionHandler(ledgerService)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("/search", searchEntries(ledgerService, unifiedSpec, ""))
		transactions.POST("", h.createTransaction)
		transactions.GET("/:id", h.getTransaction)
		transactions.PUT("/:id", h.updateTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
	}
}

// searchEntries builds the shared search handler. The resource spec names the
// counterparty query parameter and the response key; forcedType pins typed
// resources to their entry type.
func searchEntries(ledgerService portssvc.LedgerSvc, spec query.ResourceSpec, forcedType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		userID, ok := middleware.GetUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req dto.SearchEntriesRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			logger.Warn("Failed to bind search query", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
			return
		}
		// The counterparty parameter is named per resource ("payee",
		// "source", "counterparty"), so it is read by the spec's field name
		// instead of a binding tag.
		req.CounterpartyKey = c.Query(spec.CounterpartyField)
		if forcedType != "" {
			req.Type = forcedType
		}

		result, err := ledgerService.SearchEntries(c.Request.Context(), userID, req, spec)
		if err != nil {
			logger.Error("Failed to search ledger entries", slog.String("error", err.Error()))
			respondServiceError(c, err)
			return
		}

		resp := gin.H{
			spec.ResponseKey: result.Results,
			"pagination":     result.Pagination,
			"filters":        echoFilters(req, spec),
			"sort":           result.Sort,
		}
		if result.TotalAmount != nil {
			resp["totalAmount"] = result.TotalAmount
		}
		c.JSON(http.StatusOK, resp)
	}
}

// echoFilters mirrors the recognized filters back to the caller under the
// names they were supplied with.
func echoFilters(req dto.SearchEntriesRequest, spec query.ResourceSpec) gin.H {
	filters := gin.H{}
	add := func(key, value string) {
		if value != "" {
			filters[key] = value
		}
	}
	add("type", req.Type)
	add("title", req.Title)
	add("description", req.Description)
	add("search", req.Search)
	add("dateFrom", req.DateFrom)
	add("dateTo", req.DateTo)
	add("currency", req.Currency)
	add("category", req.Category)
	add(spec.CounterpartyField, req.CounterpartyKey)
	add("periodicity", req.Periodicity)
	if req.AmountMin != nil {
		filters["amountMin"] = *req.AmountMin
	}
	if req.AmountMax != nil {
		filters["amountMax"] = *req.AmountMax
	}
	if len(req.Tags) > 0 {
		filters["tags"] = req.Tags
	}
	return filters
}

// createTransaction godoc
// @Summary Create a manual ledger entry
// @Description Creates a ledger entry with no bank transaction link. Category and counterparty are human keys resolved in the caller's scope.
// @Tags transactions
// @Accept json
// @Produce json
// @Param entry body dto.CreateLedgerEntryRequest true "Entry details"
// @Success 201 {object} domain.LedgerEntry
// @Failure 400 {object} map[string]string "Invalid input or unknown reference"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind create entry request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// getTransaction godoc
// @Summary Get a ledger entry
// @Tags transactions
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} domain.LedgerEntry
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.GetEntry(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// updateTransaction godoc
// @Summary Update a ledger entry
// @Description Partially updates the entry; absent fields are untouched, counterparty set to "" clears the reference
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param entry body dto.UpdateLedgerEntryRequest true "Fields to change"
// @Success 200 {object} domain.LedgerEntry
// @Failure 400 {object} map[string]string "Invalid input or unknown reference"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind update entry request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.ledgerService.UpdateEntry(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// deleteTransaction godoc
// @Summary Delete a ledger entry
// @Description Removes the entry. A linked bank transaction keeps its review flags; dismissal is not restored.
// @Tags transactions
// @Param id path string true "Entry ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.ledgerService.DeleteEntry(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
