package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"matchday-backend-go/internal/core"
	"matchday-backend-go/internal/models"
)

// MatchHandler serves match CRUD and status endpoints.
type MatchHandler struct {
	matchService core.MatchService
	logger       *zap.Logger
}

// NewMatchHandler creates a MatchHandler.
func NewMatchHandler(matchService core.MatchService, logger *zap.Logger) *MatchHandler {
	return &MatchHandler{matchService: matchService, logger: logger}
}

// Create handles POST /matches. Admin or Manager.
func (h *MatchHandler) Create(c *gin.Context) {
	var req models.SaveMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}

	match, err := h.matchService.Create(c.Request.Context(), callerIdentity(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, match)
}

// Update handles PUT /matches/:id. Admin or Manager.
func (h *MatchHandler) Update(c *gin.Context) {
	var req models.SaveMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}

	match, err := h.matchService.Update(c.Request.Context(), callerIdentity(c), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

// Get handles GET /matches/:id.
func (h *MatchHandler) Get(c *gin.Context) {
	match, err := h.matchService.GetByID(c.Request.Context(), callerIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

// List handles GET /matches.
func (h *MatchHandler) List(c *gin.Context) {
	matches, err := h.matchService.List(c.Request.Context(), callerIdentity(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

// SetStatus handles PUT /matches/:id/status. Admin or Manager.
func (h *MatchHandler) SetStatus(c *gin.Context) {
	var req models.SetMatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}

	match, err := h.matchService.SetStatus(c.Request.Context(), callerIdentity(c), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, match)
}
