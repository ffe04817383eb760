package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"matchday-backend-go/internal/core"
	"matchday-backend-go/internal/models"
)

// SelectionHandler serves team selection endpoints.
type SelectionHandler struct {
	selectionService core.SelectionService
	logger           *zap.Logger
}

// NewSelectionHandler creates a SelectionHandler.
func NewSelectionHandler(selectionService core.SelectionService, logger *zap.Logger) *SelectionHandler {
	return &SelectionHandler{selectionService: selectionService, logger: logger}
}

// Save handles PUT /matches/:id/selection. Selector only.
func (h *SelectionHandler) Save(c *gin.Context) {
	var req models.SaveSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}

	selection, err := h.selectionService.Save(c.Request.Context(), callerIdentity(c), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, selection)
}

// Publish handles POST /matches/:id/selection/publish. Selector only.
func (h *SelectionHandler) Publish(c *gin.Context) {
	if err := h.selectionService.Publish(c.Request.Context(), callerIdentity(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "team announced"})
}

// Recall handles POST /matches/:id/selection/recall. Selector only.
func (h *SelectionHandler) Recall(c *gin.Context) {
	if err := h.selectionService.Recall(c.Request.Context(), callerIdentity(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "team selection recalled"})
}

// View handles GET /matches/:id/selection.
func (h *SelectionHandler) View(c *gin.Context) {
	selection, err := h.selectionService.View(c.Request.Context(), callerIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, selection)
}

// Candidates handles GET /matches/:id/selection/candidates. Selector only.
func (h *SelectionHandler) Candidates(c *gin.Context) {
	candidates, err := h.selectionService.Candidates(c.Request.Context(), callerIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}
