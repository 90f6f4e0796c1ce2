package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/moniapp/metrics-api/services"
)

type ScoreHandler struct {
	Store services.Store
}

// GetScore reads the cached score record for a user. The cache is written
// by the analyzer after every run; a user who never ran an analysis has no
// row yet.
// GET /api/v1/users/:id/score
func (h *ScoreHandler) GetScore(c *gin.Context) {
	userID := c.Param("id")
	if _, err := uuid.Parse(userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	record, err := h.Store.Score(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch score"})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No score calculated yet"})
		return
	}

	c.JSON(http.StatusOK, record)
}
