package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"matchday-backend-go/internal/core"
	"matchday-backend-go/internal/middleware"
	"matchday-backend-go/internal/models"
)

// respondError translates a service error into an HTTP status and JSON body.
// All handlers funnel errors through here so the taxonomy-to-status mapping
// lives in one place. Unrecognized errors become a generic 500; the detail is
// logged server-side only.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	if ve, ok := core.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: ve.Fields})
		return
	}

	switch {
	case errors.Is(err, core.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrUserNotFound),
		errors.Is(err, core.ErrTournamentNotFound),
		errors.Is(err, core.ErrMatchNotFound),
		errors.Is(err, core.ErrSelectionNotFound),
		errors.Is(err, core.ErrPaymentNotFound),
		errors.Is(err, core.ErrSummaryNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrInvalidState), errors.Is(err, core.ErrVoteClosed):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrDuplicateUser):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("unhandled service error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// callerIdentity pulls the decoded identity placed by the auth middleware. A
// missing identity on a protected route means the middleware was bypassed, so
// the zero Identity is returned and authorization will fail closed.
func callerIdentity(c *gin.Context) models.Identity {
	value, exists := c.Get(middleware.IdentityContextKey)
	if !exists {
		return models.Identity{}
	}
	identity, ok := value.(models.Identity)
	if !ok {
		return models.Identity{}
	}
	return identity
}
