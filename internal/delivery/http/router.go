package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/configstore"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/delivery/http/middleware"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/repository"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/usecase"
)

// RouterDeps bundles everything the router wires together.
type RouterDeps struct {
	EnqueueUC    *usecase.EnqueueSyncUsecase
	Store        configstore.Store
	History      repository.SyncHistory
	Logger       *zap.Logger
	MaxBodyBytes int64
}

// NewRouter creates and configures the Gin router with all routes and middleware.
func NewRouter(deps *RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.BodySizeLimit(deps.MaxBodyBytes))

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		healthHandler := NewHealthHandler(deps.Logger)
		v1.GET("/health", healthHandler.Health)

		// Repository event ingress
		webhookHandler := NewWebhookHandler(deps.EnqueueUC, deps.Logger)
		v1.POST("/webhooks/:tenant", webhookHandler.Receive)

		// Per-repository settings and sync history
		settingsHandler := NewSettingsHandler(deps.Store, deps.Logger)
		historyHandler := NewHistoryHandler(deps.History, deps.Logger)
		repos := v1.Group("/repos/:tenant/:repository")
		{
			repos.PUT("/settings", settingsHandler.Save)
			repos.GET("/settings", settingsHandler.Get)
			repos.GET("/syncs", historyHandler.List)
		}
	}

	return router
}
