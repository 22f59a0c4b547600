package handler

import (
	"axiom-gateway/internal/adapter/http/middleware"
	"axiom-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	SettlementSvc  ports.SettlementService
	HealthCheckers []ports.HealthChecker
	FrontendURL    string
	MaxUploadBytes int64
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	maxUpload := deps.MaxUploadBytes
	if maxUpload == 0 {
		maxUpload = 10 << 20
	}

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS(deps.FrontendURL))
	r.Use(middleware.MaxBodySize(maxUpload))
	r.Use(middleware.Metrics())

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Gateway execution endpoints
	gatewayHandler := NewGatewayHandler(deps.SettlementSvc, deps.Logger)
	gateway := r.Group("/gateway")
	{
		gateway.GET("/:serviceId/invoice", gatewayHandler.Invoice)
		gateway.POST("/:serviceId/execute", gatewayHandler.Execute)
	}

	return r
}
