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

// categoryHandler handles HTTP requests related to categories.
type categoryHandler struct {
	referenceService portssvc.ReferenceSvc
}

func newCategoryHandler(rs portssvc.ReferenceSvc) *categoryHandler {
	return &categoryHandler{
		referenceService: rs,
	}
}

// registerCategoryRoutes registers routes related to categories.
func registerCategoryRoutes(rg *gin.RouterGroup, referenceService portssvc.ReferenceSvc) {
	h := newCategoryHandler(referenceService)

	categories := rg.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.POST("", h.createCategory)
		categories.GET("/:key", h.getCategory)
		categories.DELETE("/:key", h.deleteCategory)
	}
}

// listCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} domain.Category
// @Security BearerAuth
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	categories, err := h.referenceService.ListCategories(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// createCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} domain.Category
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Key already exists"
// @Security BearerAuth
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind create category request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	category, err := h.referenceService.CreateCategory(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// getCategory godoc
// @Summary Get a category by key
// @Tags categories
// @Produce json
// @Param key path string true "Category key"
// @Success 200 {object} domain.Category
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /categories/{key} [get]
func (h *categoryHandler) getCategory(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	category, err := h.referenceService.ResolveCategory(c.Request.Context(), userID, c.Param("key"))
	if err != nil {
		// The resolver reports an unknown key as a validation failure; on a
		// direct lookup that is a missing resource.
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// deleteCategory godoc
// @Summary Delete a category
// @Tags categories
// @Param key path string true "Category key"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 409 {object} map[string]string "Still referenced by ledger entries"
// @Security BearerAuth
// @Router /categories/{key} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.referenceService.DeleteCategory(c.Request.Context(), userID, c.Param("key")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
