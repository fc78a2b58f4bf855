package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/mealplan/backend/config"
	"github.com/pageza/mealplan/backend/internal/api"
	"github.com/pageza/mealplan/backend/internal/database"
	"github.com/pageza/mealplan/backend/internal/logger"
	"github.com/pageza/mealplan/backend/internal/middleware"
	"github.com/pageza/mealplan/backend/internal/router"
	"github.com/pageza/mealplan/backend/internal/server"
	"github.com/pageza/mealplan/backend/internal/service"
)

func main() {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting meal plan API", "environment", config.GetEnvironment(), "addr", cfg.Addr())
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.EdamamAppID == "" || cfg.EdamamAppKey == "" {
		logger.Warn("Edamam credentials are not set, plan requests will fail upstream")
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	if err := database.RunMigrations(db); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("redis unavailable, running without cache and rate limiting", "error", err)
	} else {
		defer redisClient.Close()
	}

	fetchLogs := service.NewFetchLogService(db)
	provider, searcher := upstreams(cfg, fetchLogs, redisClient)

	plans := service.NewPlanService(provider, service.PlanOptions{
		DefaultDiet:    cfg.DefaultDiet,
		DefaultPolicy:  service.Policy(cfg.PlanPolicy),
		MaxPerCategory: cfg.PlanMaxPerCategory,
		Concurrency:    cfg.PlanConcurrency,
	})
	search := service.NewSearchService(searcher, cfg.PlanConcurrency)

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewPlanRateLimiter(redisClient, cfg.RateLimitPerMinute)
	}

	handler := router.SetupRouter(router.Handlers{
		Health:  api.NewHealthHandler(db, redisClient),
		Diets:   api.NewDietsHandler(cfg.DefaultDiet, service.Policy(cfg.PlanPolicy)),
		Plans:   api.NewPlanHandler(plans),
		Recipes: api.NewRecipeHandler(search),
		Fetches: api.NewFetchHandler(fetchLogs),
	}, cfg.CORSAllowedOrigins, limiter)

	srv := server.New(cfg, handler)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", "error", err)
		}
	case sig := <-quit:
		logger.Info("received signal", "signal", sig.String())
	}

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("server stopped")
}

// upstreams builds the recipe provider and searcher. Cache hits are served
// before the recording layer, so the fetch log only holds real upstream calls.
func upstreams(cfg *config.Config, fetchLogs *service.FetchLogService, redisClient *redis.Client) (service.RecipeProvider, service.RecipeSearcher) {
	var provider service.RecipeProvider = service.NewRecordingProvider(
		service.NewEdamamClient(service.EdamamOptions{
			AppID:             cfg.EdamamAppID,
			AppKey:            cfg.EdamamAppKey,
			BaseURL:           cfg.EdamamBaseURL,
			Timeout:           cfg.UpstreamTimeout,
			RequestsPerMinute: cfg.EdamamRequestsPerMinute,
			MaxRetries:        cfg.UpstreamMaxRetries,
		}),
		fetchLogs,
	)

	var searcher service.RecipeSearcher = service.NewRecordingSearcher(
		service.NewRapidAPIClient(service.RapidAPIOptions{
			Key:        cfg.RapidAPIKey,
			Host:       cfg.RapidAPIHost,
			BaseURL:    cfg.RapidAPIBaseURL,
			Timeout:    cfg.UpstreamTimeout,
			MaxRetries: cfg.UpstreamMaxRetries,
		}),
		fetchLogs,
	)

	if redisClient != nil {
		cache := service.NewRedisCandidateCache(redisClient, cfg.CacheTTL)
		provider = service.NewCachedProvider(provider, cache)
		searcher = service.NewCachedSearcher(searcher, cache)
	}
	return provider, searcher
}
