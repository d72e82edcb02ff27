// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farm-manager/backend/config"
	"github.com/farm-manager/backend/internal/application/adapter"
	"github.com/farm-manager/backend/internal/application/usecase/dashboard"
	"github.com/farm-manager/backend/internal/domain/valueobject"
	"github.com/farm-manager/backend/internal/infra/db"
	"github.com/farm-manager/backend/internal/infra/server/router"
	"github.com/farm-manager/backend/internal/integration/adapters"
	"github.com/farm-manager/backend/internal/integration/cache"
	"github.com/farm-manager/backend/internal/integration/entrypoint/controller"
	"github.com/farm-manager/backend/internal/integration/entrypoint/middleware"
	"github.com/farm-manager/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *db.Database
	Redis       *redis.Client
	RateLimiter *middleware.RateLimiter
	Router      *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, which disables series caching. clock may be nil,
// in which case the system clock is used.
func NewInjector(cfg *config.Config, database *db.Database, redisClient *redis.Client, clock adapter.Clock) *Injector {
	if clock == nil {
		clock = adapters.NewSystemClock()
	}

	// Create repositories
	saleRepo := persistence.NewSaleRepository(database.DB())
	expenseRepo := persistence.NewExpenseRepository(database.DB())
	profileRepo := persistence.NewFarmProfileRepository(database.DB())

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	var seriesCache adapter.SeriesCache
	if redisClient != nil {
		seriesCache = cache.NewSeriesCache(redisClient)
	}

	settings := newSettings(cfg, redisClient != nil)

	// Create finance use cases
	seriesUseCase := dashboard.NewGetDailySeriesUseCase(saleRepo, expenseRepo, profileRepo, seriesCache, clock, settings)
	trendUseCase := dashboard.NewGetTrendUseCase(seriesUseCase)
	comparisonUseCase := dashboard.NewGetComparisonUseCase(seriesUseCase)
	workingCapitalUseCase := dashboard.NewGetWorkingCapitalUseCase(seriesUseCase)
	expenseBreakdownUseCase := dashboard.NewGetExpenseBreakdownUseCase(saleRepo, expenseRepo, profileRepo, clock, settings)
	listSubTypesUseCase := dashboard.NewListSubTypesUseCase(saleRepo, expenseRepo, profileRepo)

	// Create controllers
	healthController := controller.NewHealthController(database.HealthCheck, cacheHealthChecker(seriesCache))

	financeController := controller.NewFinanceController(
		seriesUseCase,
		trendUseCase,
		comparisonUseCase,
		workingCapitalUseCase,
		expenseBreakdownUseCase,
		listSubTypesUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	maxRequests := cfg.RateLimit.Requests
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		maxRequests = 1000
	}
	rateLimiter := middleware.NewRateLimiter(maxRequests, cfg.RateLimit.Window)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(healthController, financeController, authMiddleware, rateLimiter, cfg.CORS.AllowedOrigins)

	return &Injector{
		Config:      cfg,
		DB:          database,
		Redis:       redisClient,
		RateLimiter: rateLimiter,
		Router:      r,
	}
}

func newSettings(cfg *config.Config, cacheAvailable bool) dashboard.Settings {
	settings := dashboard.Settings{
		WindowDays: cfg.Finance.WindowDays,
		PageSize:   cfg.Finance.PageSize,
		Normalize: dashboard.NormalizeOptions{
			Location:                cfg.Finance.Location,
			Taxonomy:                valueobject.DefaultCategoryTaxonomy(),
			FallbackPrices:          cfg.Finance.FallbackPrices,
			UnclassifiedAsOperating: cfg.Finance.UnclassifiedAsOperating,
			Logger:                  slog.Default(),
		},
	}
	if cfg.Finance.CacheEnabled && cacheAvailable {
		settings.CacheTTL = cfg.Finance.CacheTTL
	}
	return settings
}

func cacheHealthChecker(seriesCache adapter.SeriesCache) func() bool {
	if seriesCache == nil {
		return nil
	}
	return func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return seriesCache.Ping(ctx) == nil
	}
}
