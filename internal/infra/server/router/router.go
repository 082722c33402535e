// Package router sets up the HTTP routing for the application.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/expense-claims/backend/internal/integration/entrypoint/controller"
	"github.com/expense-claims/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	authController      *controller.AuthController
	expenseController   *controller.ExpenseController
	categoryController  *controller.CategoryController
	dashboardController *controller.DashboardController
	settingsController  *controller.SettingsController
	switchRateLimiter   *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	expenseController *controller.ExpenseController,
	categoryController *controller.CategoryController,
	dashboardController *controller.DashboardController,
	settingsController *controller.SettingsController,
	switchRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		authController:      authController,
		expenseController:   expenseController,
		categoryController:  categoryController,
		dashboardController: dashboardController,
		settingsController:  settingsController,
		switchRateLimiter:   switchRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

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
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/switch-user", r.switchRateLimiter.Middleware(), r.authController.SwitchUser)
		}

		users := v1.Group("/users")
		users.Use(r.authMiddleware.Authenticate())
		{
			users.GET("", r.authController.ListUsers)
		}

		expenses := v1.Group("/expenses")
		expenses.Use(r.authMiddleware.Authenticate())
		{
			expenses.GET("", r.expenseController.List)
			expenses.POST("", r.expenseController.Create)
			expenses.POST("/validate", r.expenseController.Validate)
			expenses.GET("/:id", r.expenseController.Get)
			expenses.PUT("/:id", r.expenseController.Update)
			expenses.DELETE("/:id", r.expenseController.Delete)
			expenses.POST("/:id/submit", r.expenseController.Submit)
			expenses.POST("/:id/approve", r.expenseController.Approve)
			expenses.POST("/:id/reject", r.expenseController.Reject)
			expenses.POST("/:id/pay", r.expenseController.MarkPaid)
		}

		categories := v1.Group("/categories")
		categories.Use(r.authMiddleware.Authenticate())
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", r.categoryController.Create)
			categories.PUT("/:id", r.categoryController.Update)
		}

		dashboard := v1.Group("/dashboard")
		dashboard.Use(r.authMiddleware.Authenticate())
		{
			dashboard.GET("", r.dashboardController.Get)
		}

		settings := v1.Group("/settings")
		settings.Use(r.authMiddleware.Authenticate())
		{
			settings.GET("", r.settingsController.Get)
			settings.PUT("", r.settingsController.Update)
		}

		auditLogs := v1.Group("/audit-logs")
		auditLogs.Use(r.authMiddleware.Authenticate())
		{
			auditLogs.GET("", r.settingsController.ListAuditLogs)
		}
	}
}
