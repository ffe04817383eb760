package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"matchday-backend-go/internal/core"
	"matchday-backend-go/internal/models"
)

// UserHandler serves user profile and admin endpoints.
type UserHandler struct {
	userService core.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userService core.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: logger}
}

// Me handles GET /users/me.
func (h *UserHandler) Me(c *gin.Context) {
	identity := callerIdentity(c)
	user, err := h.userService.GetByEmail(c.Request.Context(), identity, identity.Email)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// List handles GET /users with an optional ?status= filter. Admin only.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context(), callerIdentity(c), models.UserStatus(c.Query("status")))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Approve handles PUT /users/:email/approve. Admin only.
func (h *UserHandler) Approve(c *gin.Context) {
	user, err := h.userService.Approve(c.Request.Context(), callerIdentity(c), c.Param("email"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Suspend handles PUT /users/:email/suspend. Admin only.
func (h *UserHandler) Suspend(c *gin.Context) {
	user, err := h.userService.Suspend(c.Request.Context(), callerIdentity(c), c.Param("email"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// SetRoles handles PUT /users/:email/roles. Admin only.
func (h *UserHandler) SetRoles(c *gin.Context) {
	var req models.SetRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}

	user, err := h.userService.SetRoles(c.Request.Context(), callerIdentity(c), c.Param("email"), req.Roles)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
