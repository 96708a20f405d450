// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/analytics"
	"github.com/expense-tracker/backend/internal/application/usecase/ingestion"
	"github.com/expense-tracker/backend/internal/application/usecase/transaction"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/server/router"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/cache"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

// Dependencies are the external resources the application is built on.
type Dependencies struct {
	Database  *db.Database
	Redis     *redis.Client
	Extractor adapter.TextExtractor
	// EmailSender is optional; import notifications are disabled without it.
	EmailSender adapter.EmailSender
	// Clock is used for receipt date fallbacks. Defaults to time.Now.
	Clock func() time.Time
}

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	Router       *router.Router
	TokenService adapter.TokenService
	RateLimiter  *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, deps Dependencies) (*Injector, error) {
	gormDB := deps.Database.DB()

	// Create repositories and caches
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	analyticsCache := cache.NewAnalyticsCache(deps.Redis, cfg.Analytics.CacheTTL)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	var notifier adapter.ImportNotifier
	if deps.EmailSender != nil && cfg.Email.ImportNotifications {
		renderer, err := templates.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to load email templates: %w", err)
		}
		notifier = email.NewImportNotifier(deps.EmailSender, renderer)
	}

	// Create ingestion use cases
	importDocumentUseCase := ingestion.NewImportDocumentUseCase(
		deps.Extractor,
		transactionRepo,
		analyticsCache,
		notifier,
		cfg.Upload.MaxBytes,
	)
	importImageUseCase := ingestion.NewImportImageUseCase(
		deps.Extractor,
		transactionRepo,
		analyticsCache,
		cfg.Upload.MaxBytes,
		deps.Clock,
	)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(
		transactionRepo,
		cfg.Pagination.DefaultLimit,
		cfg.Pagination.MaxLimit,
	)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, analyticsCache)
	createManyTransactionsUseCase := transaction.NewCreateManyTransactionsUseCase(transactionRepo, analyticsCache)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, analyticsCache)

	// Create analytics use cases
	getAnalyticsUseCase := analytics.NewGetAnalyticsUseCase(transactionRepo, analyticsCache, cfg.Analytics.BatchSize)

	// Create controllers
	healthController := controller.NewHealthController(
		deps.Database.Ping,
		db.PingRedis(deps.Redis),
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		createManyTransactionsUseCase,
		getTransactionUseCase,
		deleteTransactionUseCase,
	)

	importController := controller.NewImportController(
		importDocumentUseCase,
		importImageUseCase,
		cfg.Upload.MaxBytes,
	)

	analyticsController := controller.NewAnalyticsController(getAnalyticsUseCase)

	// Create middleware
	uploadRateLimiter := middleware.NewRateLimiter(cfg.Upload.RateLimit, cfg.Upload.RateWindow)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		transactionController,
		importController,
		analyticsController,
		uploadRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:       cfg,
		Router:       r,
		TokenService: tokenService,
		RateLimiter:  uploadRateLimiter,
	}, nil
}
