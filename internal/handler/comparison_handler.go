package handler

import (
	"net/http"

	"focusflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ComparisonHandler struct {
	comparisons *service.ComparisonService
}

func NewComparisonHandler(comparisons *service.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{comparisons: comparisons}
}

// ComparisonRequest names the winner and loser of a forced choice
type ComparisonRequest struct {
	WinnerID string `json:"winner_id" binding:"required,uuid"`
	LoserID  string `json:"loser_id" binding:"required,uuid"`
}

// Create records a pairwise comparison and adjusts both scores
// @Summary  Compare two todos
// @Tags     Comparisons
// @Accept   json
// @Produce  json
// @Param    request body ComparisonRequest true "Comparison outcome"
// @Success  201 {object} model.Comparison
// @Security BearerAuth
// @Router   /comparisons [post]
func (h *ComparisonHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	winnerID, err := uuid.Parse(req.WinnerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid winner ID format"})
		return
	}
	loserID, err := uuid.Parse(req.LoserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid loser ID format"})
		return
	}

	cmp, err := h.comparisons.Compare(c.Request.Context(), userID, winnerID, loserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cmp)
}

// List returns the caller's comparison history, newest first
// @Summary  List comparisons
// @Tags     Comparisons
// @Produce  json
// @Success  200 {array} model.Comparison
// @Security BearerAuth
// @Router   /comparisons [get]
func (h *ComparisonHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	history, err := h.comparisons.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
