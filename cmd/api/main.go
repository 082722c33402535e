// Package main is the entry point for the Expense Claims API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/expense-claims/backend/config"
	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/application/usecase/audit"
	"github.com/expense-claims/backend/internal/application/usecase/auth"
	"github.com/expense-claims/backend/internal/application/usecase/category"
	"github.com/expense-claims/backend/internal/application/usecase/dashboard"
	"github.com/expense-claims/backend/internal/application/usecase/expense"
	"github.com/expense-claims/backend/internal/application/usecase/settings"
	"github.com/expense-claims/backend/internal/infra/db"
	"github.com/expense-claims/backend/internal/infra/server/router"
	"github.com/expense-claims/backend/internal/integration/adapters"
	"github.com/expense-claims/backend/internal/integration/entrypoint/controller"
	"github.com/expense-claims/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-claims/backend/internal/integration/persistence"
	"github.com/expense-claims/backend/internal/integration/persistence/memory"
	"github.com/expense-claims/backend/internal/integration/persistence/model"
	"github.com/expense-claims/backend/internal/integration/persistence/seed"
)

// stores bundles the repository set behind either backend.
type stores struct {
	expenses   adapter.ExpenseRepository
	categories adapter.CategoryRepository
	users      adapter.UserRepository
	auditLogs  adapter.AuditLogRepository
}

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting Expense Claims API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	ctx := context.Background()

	var (
		st                 stores
		storeHealthChecker func() bool
	)

	if cfg.Database.URL != "" {
		database, err := db.NewPostgresConnection(&cfg.Database)
		if err != nil {
			slog.Error("Database connection failed", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()

		if err := database.AutoMigrate(
			&model.UserModel{},
			&model.CategoryModel{},
			&model.ExpenseModel{},
			&model.AuditLogModel{},
		); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		st = stores{
			expenses:   persistence.NewExpenseRepository(database.DB()),
			categories: persistence.NewCategoryRepository(database.DB()),
			users:      persistence.NewUserRepository(database.DB()),
			auditLogs:  persistence.NewAuditLogRepository(database.DB()),
		}
		storeHealthChecker = database.HealthCheck

		var userCount int64
		if err := database.DB().WithContext(ctx).Model(&model.UserModel{}).Count(&userCount).Error; err != nil {
			slog.Error("Failed to inspect users table", "error", err)
			os.Exit(1)
		}
		if userCount == 0 {
			users := seed.Users()
			for _, u := range users {
				if err := database.DB().WithContext(ctx).Create(model.UserFromEntity(u)).Error; err != nil {
					slog.Error("Failed to seed users", "error", err)
					os.Exit(1)
				}
			}
			if err := seed.Categories(ctx, st.categories); err != nil {
				slog.Error("Failed to seed categories", "error", err)
				os.Exit(1)
			}
			if cfg.Expense.SeedDemoData {
				if err := seed.Expenses(ctx, st.expenses, st.categories, users); err != nil {
					slog.Error("Failed to seed demo expenses", "error", err)
					os.Exit(1)
				}
				slog.Info("Demo data seeded", "users", len(users))
			}
		}
	} else {
		slog.Info("No database configured, running on in-memory stores")

		users := seed.Users()
		st = stores{
			expenses:   memory.NewExpenseRepository(),
			categories: memory.NewCategoryRepository(),
			users:      memory.NewUserRepository(users...),
			auditLogs:  memory.NewAuditLogRepository(),
		}

		if err := seed.Categories(ctx, st.categories); err != nil {
			slog.Error("Failed to seed categories", "error", err)
			os.Exit(1)
		}
		if cfg.Expense.SeedDemoData {
			if err := seed.Expenses(ctx, st.expenses, st.categories, users); err != nil {
				slog.Error("Failed to seed demo expenses", "error", err)
				os.Exit(1)
			}
			slog.Info("Demo data seeded", "users", len(users))
		}
	}

	// Adapters
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	settingsService := adapters.NewSettingsService(&cfg.Expense)

	// Expense use cases
	validateUseCase := expense.NewValidateExpenseUseCase(st.expenses, st.categories, settingsService)
	createUseCase := expense.NewCreateExpenseUseCase(st.expenses, st.auditLogs, validateUseCase)
	updateUseCase := expense.NewUpdateExpenseUseCase(st.expenses, st.auditLogs, validateUseCase)
	deleteUseCase := expense.NewDeleteExpenseUseCase(st.expenses, st.auditLogs)
	submitUseCase := expense.NewSubmitExpenseUseCase(st.expenses, st.auditLogs, settingsService)
	approveUseCase := expense.NewApproveExpenseUseCase(st.expenses, st.auditLogs)
	rejectUseCase := expense.NewRejectExpenseUseCase(st.expenses, st.auditLogs)
	markPaidUseCase := expense.NewMarkPaidUseCase(st.expenses, st.auditLogs)
	listUseCase := expense.NewListExpensesUseCase(st.expenses, st.categories, st.users)
	getUseCase := expense.NewGetExpenseUseCase(st.expenses, st.categories, st.users, st.auditLogs)

	// Supporting use cases
	switchUserUseCase := auth.NewSwitchUserUseCase(st.users, tokenService)
	listUsersUseCase := auth.NewListUsersUseCase(st.users)
	listCategoriesUseCase := category.NewListCategoriesUseCase(st.categories)
	createCategoryUseCase := category.NewCreateCategoryUseCase(st.categories)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(st.categories)
	getDashboardUseCase := dashboard.NewGetDashboardUseCase(st.expenses, st.categories, st.users)
	getSettingsUseCase := settings.NewGetSettingsUseCase(settingsService)
	updateSettingsUseCase := settings.NewUpdateSettingsUseCase(settingsService)
	listAuditLogsUseCase := audit.NewListAuditLogsUseCase(st.auditLogs)

	// Controllers and middleware
	healthController := controller.NewHealthController(storeHealthChecker)
	authController := controller.NewAuthController(switchUserUseCase, listUsersUseCase)
	expenseController := controller.NewExpenseController(
		listUseCase,
		getUseCase,
		createUseCase,
		updateUseCase,
		deleteUseCase,
		submitUseCase,
		approveUseCase,
		rejectUseCase,
		markPaidUseCase,
		validateUseCase,
		&cfg.Expense,
	)
	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
	)
	dashboardController := controller.NewDashboardController(getDashboardUseCase)
	settingsController := controller.NewSettingsController(
		getSettingsUseCase,
		updateSettingsUseCase,
		listAuditLogsUseCase,
	)
	switchRateLimiter := middleware.NewRateLimiter()
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		expenseController,
		categoryController,
		dashboardController,
		settingsController,
		switchRateLimiter,
		authMiddleware,
	)
	engine := r.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
