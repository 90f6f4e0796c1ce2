package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/moniapp/metrics-api/handlers"
	"github.com/moniapp/metrics-api/services"
)

// SetupAnalysisRoutes wires the metrics pipeline endpoints.
func SetupAnalysisRoutes(rg *gin.RouterGroup, db *sql.DB) {
	store := services.NewPostgresStore(db)
	analyzer := services.NewAnalyzerService(store, services.NewClaudeAIService())

	analysisHandler := handlers.NewAnalysisHandler(analyzer)
	scoreHandler := &handlers.ScoreHandler{Store: store}

	rg.POST("/analysis", analysisHandler.Analyze)
	rg.GET("/users/:id/score", scoreHandler.GetScore)
}
