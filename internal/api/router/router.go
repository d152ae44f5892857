package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/unisave/unisave/internal/api/handlers"
	"github.com/unisave/unisave/internal/api/middleware"
	"github.com/unisave/unisave/internal/config"
	"github.com/unisave/unisave/internal/utils"
)

type Router struct {
	engine *gin.Engine
	config *config.Config
}

func NewRouter(cfg *config.Config, parseHandler *handlers.ParseHandler, streamHandler *handlers.StreamHandler, batchHandler *handlers.BatchHandler, healthHandler *handlers.HealthHandler) *Router {
	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Add middleware
	engine.Use(gin.Recovery())
	engine.Use(middleware.CorrelationIDMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Health endpoints (no rate limiting)
	engine.GET("/api/health", healthHandler.Health)
	engine.GET("/api/health/detailed", healthHandler.Detailed)

	// Swagger documentation
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API endpoints with rate limiting
	api := engine.Group("/api")
	api.Use(middleware.RateLimitMiddleware(&cfg.API))
	{
		api.POST("/parse", parseHandler.Parse)
		api.GET("/stream/url/:streamId", streamHandler.StreamURL)
		api.GET("/stream/:streamId", streamHandler.Stream)
		api.POST("/batch", batchHandler.Batch)
	}

	// Unmatched routes return the standard error envelope
	engine.NoRoute(func(c *gin.Context) {
		appErr := utils.NewNotFoundError()
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
			"request_id": c.GetString("request_id"),
			"timestamp":  time.Now().Format(time.RFC3339),
		})
	})

	return &Router{
		engine: engine,
		config: cfg,
	}
}

func (r *Router) Start() error {
	addr := r.config.Server.Host + ":" + r.config.Server.Port
	return r.engine.Run(addr)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
