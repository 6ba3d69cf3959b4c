package api

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/revlence/transcribe-api/api/health"
	"github.com/revlence/transcribe-api/api/transcriptions"
	"github.com/revlence/transcribe-api/api/types"
	"github.com/revlence/transcribe-api/api/version"
	_ "github.com/revlence/transcribe-api/docs/swagger"
	"github.com/revlence/transcribe-api/internal/services/transcription"
	"github.com/revlence/transcribe-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Initialize the transcription service if a database is available and
	// the caller did not inject one
	if deps.TranscriptionService == nil && deps.DB != nil && deps.DB.DB != nil && deps.ObjectStore != nil {
		repo := transcription.NewRepository(deps.DB.DB)
		deps.TranscriptionService = transcription.NewService(repo, deps.ObjectStore)
	}

	// API v1 routes; transcription is CPU heavy so uploads get a tight
	// per-client rate limit on top of the body size bound
	v1 := engine.Group("/api/v1")
	if deps.MaxUploadBytes > 0 {
		v1.Use(UploadSizeLimit(deps.MaxUploadBytes))
	}
	if cfg.RateLimiting.Enabled {
		rps := cfg.RateLimiting.RequestsPerSecond
		if rps <= 0 {
			rps = 2
		}
		burst := cfg.RateLimiting.Burst
		if burst <= 0 {
			burst = 5
		}
		v1.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rps, burst))
	}
	transcriptions.RegisterRoutes(v1, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
