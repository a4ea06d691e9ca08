package handlers

import (
	"github.com/finledger/finledger/cmd/docs"
	portssvc "github.com/finledger/finledger/internal/core/ports/services"
	"github.com/finledger/finledger/internal/middleware"
	"github.com/finledger/finledger/internal/platform/metrics"
	"github.com/finledger/finledger/pkg/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	m *metrics.Metrics,
	rateLimiter *limiter.Limiter,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	if m != nil {
		r.GET("/metrics", m.Handler())
	}

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, m, rateLimiter)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	m *metrics.Metrics,
	rateLimiter *limiter.Limiter,
) {
	groupMiddleware := []gin.HandlerFunc{middleware.AuthMiddleware(cfg.JWTSecret)}
	if rateLimiter != nil {
		groupMiddleware = append(groupMiddleware, middleware.RateLimit(rateLimiter))
	}
	if m != nil {
		groupMiddleware = append(groupMiddleware, m.GinMiddleware())
	}
	v1 := r.Group("/api/v1", groupMiddleware...)

	// Delegate route registration to specific handlers, passing required services
	RegisterBankTransactionRoutes(v1, services.Reconciliation)
	registerTransactionRoutes(v1, services.Ledger)
	registerExpenseRoutes(v1, services.Ledger)
	registerIncomeRoutes(v1, services.Ledger)
	registerAnalyticsRoutes(v1, services.Summary)
	registerCategoryRoutes(v1, services.Reference)
	registerCounterpartyRoutes(v1, services.Reference)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
