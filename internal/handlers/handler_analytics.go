package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finledger/finledger/internal/core/ports/services"
	"github.com/finledger/finledger/internal/dto"
	"github.com/finledger/finledger/internal/middleware"
	"github.com/finledger/finledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// analyticsHandler handles aggregation requests over the ledger.
type analyticsHandler struct {
	summaryService portssvc.SummarySvc
}

func newAnalyticsHandler(ss portssvc.SummarySvc) *analyticsHandler {
	return &analyticsHandler{
		summaryService: ss,
	}
}

// registerAnalyticsRoutes registers the analytics routes.
func registerAnalyticsRoutes(rg *gin.RouterGroup, summaryService portssvc.SummarySvc) {
	h := newAnalyticsHandler(summaryService)

	analytics := rg.Group("/analytics")
	{
		analytics.GET("/period-summary", h.getPeriodSummary)
	}
}

// getPeriodSummary godoc
// @Summary Period summary
// @Description Aggregates the period into per-category totals for each direction, overall totals, balance and the latest entries
// @Tags analytics
// @Produce json
// @Param dateFrom query string true "Inclusive start date (RFC3339 or YYYY-MM-DD)"
// @Param dateTo query string true "Inclusive end date"
// @Param currency query string false "Restrict to one currency"
// @Param latestCount query int false "How many latest entries to include (default 5, max 100)"
// @Success 200 {object} domain.PeriodSummary
// @Failure 400 {object} map[string]string "Missing or malformed dates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /analytics/period-summary [get]
func (h *analyticsHandler) getPeriodSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.PeriodSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind period summary query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "dateFrom and dateTo are required: " + err.Error()})
		return
	}

	from, err := utils.ParseDateParam(req.DateFrom)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := utils.ParseDateParam(req.DateTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.summaryService.PeriodSummary(c.Request.Context(), userID, from, to, req.Currency, req.LatestCount)
	if err != nil {
		logger.Error("Failed to compute period summary", slog.String("error", err.Error()))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
