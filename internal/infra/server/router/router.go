// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// maxMultipartMemory bounds the part of an upload gin keeps in memory.
const maxMultipartMemory = 16 << 20

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	transactionController *controller.TransactionController
	importController      *controller.ImportController
	analyticsController   *controller.AnalyticsController
	uploadRateLimiter     *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	transactionController *controller.TransactionController,
	importController *controller.ImportController,
	analyticsController *controller.AnalyticsController,
	uploadRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		transactionController: transactionController,
		importController:      importController,
		analyticsController:   analyticsController,
		uploadRateLimiter:     uploadRateLimiter,
		authMiddleware:        authMiddleware,
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
	r.engine.MaxMultipartMemory = maxMultipartMemory

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())
	{
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", r.transactionController.Create)
			transactions.POST("/bulk", r.transactionController.CreateMany)
			transactions.GET("/:id", r.transactionController.Get)
			transactions.DELETE("/:id", r.transactionController.Delete)

			// Upload routes are throttled per owner
			transactions.POST("/import-pdf", r.uploadRateLimiter.Middleware(), r.importController.ImportDocument)
			transactions.POST("/receipt", r.uploadRateLimiter.Middleware(), r.importController.ImportReceipt)
		}

		v1.GET("/analytics", r.analyticsController.Get)
	}
}
