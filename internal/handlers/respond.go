package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wargaku/rtrw_portal_app/internal/apperrors"
	"github.com/wargaku/rtrw_portal_app/internal/middleware"
)

// respondError maps the error taxonomy to HTTP responses. The body carries
// the specific reason: races between two administrators on the same queue are
// expected, and "this request was already decided" is far more useful to the
// second one than a generic failure.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidState), errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrMissingReason), errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrFieldMapping):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Unhandled service error", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// callerCanAccess reports whether the caller is the given account or holds
// the admin role.
func callerCanAccess(c *gin.Context, accountID string) bool {
	if role, ok := middleware.GetRoleFromContext(c); ok && role == middleware.RoleAdmin {
		return true
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	return ok && userID == accountID
}
