package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/moniapp/metrics-api/models"
	"github.com/moniapp/metrics-api/services"
	"github.com/moniapp/metrics-api/utils"
)

type AnalysisHandler struct {
	Analyzer *services.AnalyzerService
}

func NewAnalysisHandler(analyzer *services.AnalyzerService) *AnalysisHandler {
	return &AnalysisHandler{Analyzer: analyzer}
}

// Analyze runs the metrics pipeline for one user and period.
// POST /api/v1/analysis
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// user_id is a UUID column; reject malformed ids before hitting the store.
	if _, err := uuid.Parse(req.UserID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	// Lightweight path: lifetime aggregates and goal count only.
	if req.Type == "suggestions" {
		response, err := h.Analyzer.Suggest(c.Request.Context(), req.UserID)
		if err != nil {
			utils.SafeError("[Analysis] suggestions failed for %s: %v", utils.MaskID(req.UserID), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate suggestions"})
			return
		}
		c.JSON(http.StatusOK, response)
		return
	}

	response, err := h.Analyzer.Analyze(c.Request.Context(), req)
	if err != nil {
		// A snapshot read failure is the only fatal path: nothing can be
		// computed without the ledger.
		utils.SafeError("[Analysis] analysis failed for %s: %v", utils.MaskID(req.UserID), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze finances: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}
