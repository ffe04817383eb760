package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"matchday-backend-go/internal/core"
	"matchday-backend-go/internal/models"
)

// VoteHandler serves availability voting endpoints.
type VoteHandler struct {
	voteService core.VoteService
	logger      *zap.Logger
}

// NewVoteHandler creates a VoteHandler.
func NewVoteHandler(voteService core.VoteService, logger *zap.Logger) *VoteHandler {
	return &VoteHandler{voteService: voteService, logger: logger}
}

// Cast handles PUT /matches/:id/votes. The caller votes for themselves only;
// the target email comes from the verified token, never the payload.
func (h *VoteHandler) Cast(c *gin.Context) {
	var req models.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}

	if err := h.voteService.Cast(c.Request.Context(), callerIdentity(c), c.Param("id"), req.Status); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "vote recorded"})
}

// Board handles GET /matches/:id/votes.
func (h *VoteHandler) Board(c *gin.Context) {
	entries, tally, err := h.voteService.Board(c.Request.Context(), callerIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, VoteBoardResponse{Entries: entries, Tally: tally})
}
