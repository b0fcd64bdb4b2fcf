package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadforge/contact-cache/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authenticator *middleware.Authenticator, metricsHandler http.Handler) {
	// Health check and metrics endpoints (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// API v1 routes, all authenticated
	v1 := router.Group("/api/v1", middleware.Auth(authenticator))
	{
		// Contact enrichment
		v1.POST("/contacts/enrich", handler.EnrichContact)
		v1.POST("/contacts/enrich/batch", handler.EnrichBatch)
		v1.POST("/contacts/resolve", handler.ResolveContact)

		// Cache entries
		v1.GET("/cache/entries/:id", handler.GetCacheEntry)
		v1.POST("/cache/entries/:id/refresh", handler.RefreshCacheEntry)

		// Per-user usage
		v1.GET("/users/:user_id/history", handler.ListUserHistory)

		// Cache effectiveness
		v1.GET("/metrics/daily", handler.GetDailyMetrics)

		// Import jobs
		v1.POST("/imports", handler.TriggerImport)
		v1.GET("/workflows/:workflow_id/runs/:run_id", handler.GetWorkflowStatus)
	}
}
