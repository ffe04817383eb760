package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"matchday-backend-go/internal/core"
	"matchday-backend-go/internal/models"
)

// TournamentHandler serves tournament CRUD endpoints.
type TournamentHandler struct {
	tournamentService core.TournamentService
	logger            *zap.Logger
}

// NewTournamentHandler creates a TournamentHandler.
func NewTournamentHandler(tournamentService core.TournamentService, logger *zap.Logger) *TournamentHandler {
	return &TournamentHandler{tournamentService: tournamentService, logger: logger}
}

// Create handles POST /tournaments. Admin only.
func (h *TournamentHandler) Create(c *gin.Context) {
	var req models.CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}

	t, err := h.tournamentService.Create(c.Request.Context(), callerIdentity(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// Get handles GET /tournaments/:id.
func (h *TournamentHandler) Get(c *gin.Context) {
	t, err := h.tournamentService.GetByID(c.Request.Context(), callerIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// List handles GET /tournaments.
func (h *TournamentHandler) List(c *gin.Context) {
	tournaments, err := h.tournamentService.List(c.Request.Context(), callerIdentity(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tournaments)
}

// Update handles PUT /tournaments/:id. Admin only.
func (h *TournamentHandler) Update(c *gin.Context) {
	var req models.CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}

	t, err := h.tournamentService.Update(c.Request.Context(), callerIdentity(c), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
