package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finledger/finledger/internal/apperrors"
	portssvc "github.com/finledger/finledger/internal/core/ports/services"
	"github.com/finledger/finledger/internal/dto"
	"github.com/finledger/finledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// counterpartyHandler handles HTTP requests related to counterparties.
type counterpartyHandler struct {
	referenceService portssvc.ReferenceSvc
}

func newCounterpartyHandler(rs portssvc.ReferenceSvc) *counterpartyHandler {
	return &counterpartyHandler{
		referenceService: rs,
	}
}

// registerCounterpartyRoutes registers routes related to counterparties.
func registerCounterpartyRoutes(rg *gin.RouterGroup, referenceService portssvc.ReferenceSvc) {
	h := newCounterpartyHandler(referenceService)

	counterparties := rg.Group("/counterparties")
	{
		counterparties.GET("", h.listCounterparties)
		counterparties.POST("", h.createCounterparty)
		counterparties.GET("/:key", h.getCounterparty)
		counterparties.DELETE("/:key", h.deleteCounterparty)
	}
}

// listCounterparties godoc
// @Summary List counterparties
// @Tags counterparties
// @Produce json
// @Success 200 {array} domain.Counterparty
// @Security BearerAuth
// @Router /counterparties [get]
func (h *counterpartyHandler) listCounterparties(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	counterparties, err := h.referenceService.ListCounterparties(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, counterparties)
}

// createCounterparty godoc
// @Summary Create a counterparty
// @Tags counterparties
// @Accept json
// @Produce json
// @Param counterparty body dto.CreateCounterpartyRequest true "Counterparty details"
// @Success 201 {object} domain.Counterparty
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Key already exists"
// @Security BearerAuth
// @Router /counterparties [post]
func (h *counterpartyHandler) createCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind create counterparty request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	counterparty, err := h.referenceService.CreateCounterparty(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, counterparty)
}

// getCounterparty godoc
// @Summary Get a counterparty by key
// @Tags counterparties
// @Produce json
// @Param key path string true "Counterparty key"
// @Success 200 {object} domain.Counterparty
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /counterparties/{key} [get]
func (h *counterpartyHandler) getCounterparty(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	counterparty, err := h.referenceService.ResolveCounterparty(c.Request.Context(), userID, c.Param("key"))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Counterparty not found"})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, counterparty)
}

// deleteCounterparty godoc
// @Summary Delete a counterparty
// @Tags counterparties
// @Param key path string true "Counterparty key"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 409 {object} map[string]string "Still referenced by ledger entries"
// @Security BearerAuth
// @Router /counterparties/{key} [delete]
func (h *counterpartyHandler) deleteCounterparty(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.referenceService.DeleteCounterparty(c.Request.Context(), userID, c.Param("key")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
