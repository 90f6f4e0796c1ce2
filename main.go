package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/moniapp/metrics-api/config"
	"github.com/moniapp/metrics-api/middleware"
	"github.com/moniapp/metrics-api/routes"
	"github.com/moniapp/metrics-api/services"
	"github.com/moniapp/metrics-api/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := config.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	log.Println("✅ Database connected successfully")

	if err := config.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	go scheduleScorePruning(db)

	router := gin.Default()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	corsConfig := cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		utils.LogAPIRequest(c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	})

	router.Use(middleware.RateLimiter())

	v1 := router.Group("/api/v1")
	{
		routes.SetupAnalysisRoutes(v1, db)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	utils.LogStartup("metrics-api", "1.0.0", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// Score-cache rows untouched for this long are dropped; the cache is
// rebuilt on the next analysis run, so pruning is always safe.
const scoreRetention = 180 * 24 * time.Hour

func scheduleScorePruning(db *sql.DB) {
	store := services.NewPostgresStore(db)
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	pruneStaleScores(store)
	for range ticker.C {
		pruneStaleScores(store)
	}
}

func pruneStaleScores(store *services.PostgresStore) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	rows, err := store.PruneStaleScores(ctx, scoreRetention)
	if err != nil {
		log.Printf("❌ Score cache cleanup failed: %v", err)
		return
	}
	if rows > 0 {
		log.Printf("🧹 Pruned %d stale score cache rows", rows)
	}
}
