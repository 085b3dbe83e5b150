package api

import (
	"tool-directory/pkg/api/handlers"
	"tool-directory/pkg/api/middleware"
	"tool-directory/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires the directory API routes.
func NewRouter(toolService *services.ToolService, apiKey string, log *zap.SugaredLogger) *gin.Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))

	// Health check
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	v1 := router.Group("/api/v1")
	{
		tools := v1.Group("/tools")
		tools.Use(middleware.RequireAPIKey(apiKey))
		{
			tools.GET("", handlers.ListTools(toolService))
			tools.POST("", handlers.CreateTool(toolService))
		}
	}

	return router
}
