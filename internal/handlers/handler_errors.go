package handlers

import (
	"errors"
	"net/http"

	"github.com/finledger/finledger/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondServiceError translates service-layer errors into HTTP responses.
// The duplicate-link case carries the winning entry id so clients can
// navigate to it instead of retrying.
func respondServiceError(c *gin.Context, err error) {
	var dup *apperrors.DuplicateLinkError
	if errors.As(err, &dup) {
		c.JSON(http.StatusConflict, gin.H{
			"error":                 "Bank transaction is already linked to a ledger entry",
			"existingTransactionId": dup.ExistingEntryID,
		})
		return
	}

	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500:
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
