// Package router sets up the HTTP routing for the application.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/farm-manager/backend/internal/integration/entrypoint/controller"
	"github.com/farm-manager/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine            *gin.Engine
	healthController  *controller.HealthController
	financeController *controller.FinanceController
	authMiddleware    *middleware.AuthMiddleware
	rateLimiter       *middleware.RateLimiter
	allowedOrigins    []string
}

// NewRouter creates a new router instance with all dependencies.
// financeController and authMiddleware may be nil when the database is unavailable;
// the finance routes are then not registered.
func NewRouter(
	healthController *controller.HealthController,
	financeController *controller.FinanceController,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	allowedOrigins []string,
) *Router {
	return &Router{
		healthController:  healthController,
		financeController: financeController,
		authMiddleware:    authMiddleware,
		rateLimiter:       rateLimiter,
		allowedOrigins:    allowedOrigins,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()
	r.engine.Use(cors.New(r.corsConfig()))

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(r.allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = r.allowedOrigins
	cfg.AllowCredentials = true
	return cfg
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		// Finance dashboard routes (require authentication)
		if r.financeController != nil && r.authMiddleware != nil {
			finance := v1.Group("/finance")
			finance.Use(r.authMiddleware.Authenticate())
			if r.rateLimiter != nil {
				finance.Use(r.rateLimiter.Middleware())
			}
			{
				finance.GET("/series", r.financeController.GetSeries)
				finance.GET("/trend", r.financeController.GetTrend)
				finance.GET("/compare", r.financeController.GetComparison)
				finance.GET("/working-capital", r.financeController.GetWorkingCapital)
				finance.GET("/expense-breakdown", r.financeController.GetExpenseBreakdown)
				finance.GET("/sub-types", r.financeController.ListSubTypes)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
