package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/fintrack/fintrack-backend/docs"
	"github.com/fintrack/fintrack-backend/internal/amqp"
	"github.com/fintrack/fintrack-backend/internal/config"
	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/fintrack/fintrack-backend/internal/handler"
	"github.com/fintrack/fintrack-backend/internal/middleware"
	"github.com/fintrack/fintrack-backend/internal/repository/postgres"
	"github.com/fintrack/fintrack-backend/internal/repository/storage"
	"github.com/fintrack/fintrack-backend/internal/service"
	"github.com/fintrack/fintrack-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title FinTrack API
// @version 1.0
// @description Personal finance tracker: transactions, analytics, savings goals and monthly budgets.
// @BasePath /
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()
	log.Info().Msg("Connected to database")

	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(pool); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		log.Info().Msg("Database migrations applied")
	}

	// Repositories
	transactionRepo := postgres.NewTransactionRepository(pool)
	goalRepo := postgres.NewGoalRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	// Export storage is optional
	var objectStorage domain.ObjectStorage
	if cfg.S3.Enabled() {
		store, err := storage.NewS3ObjectStore(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize export storage")
		}
		objectStorage = store
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Export storage enabled")
	} else {
		log.Info().Msg("Export storage not configured, exports disabled")
	}

	// Live events fan out to websocket clients and, when configured, RabbitMQ
	hub := websocket.NewHub()
	publishers := websocket.MultiPublisher{hub}

	var relay *amqp.Publisher
	if cfg.AMQP.Enabled() {
		relay, err = amqp.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to event relay")
		}
		publishers = append(publishers, relay)
		log.Info().Str("exchange", cfg.AMQP.Exchange).Msg("Event relay enabled")
	}

	// Services
	transactionService := service.NewTransactionService(transactionRepo)
	transactionService.SetEventPublisher(publishers)
	goalService := service.NewGoalService(goalRepo)
	goalService.SetEventPublisher(publishers)
	budgetService := service.NewBudgetService(budgetRepo)
	budgetService.SetEventPublisher(publishers)
	categoryService := service.NewCategoryService(categoryRepo)
	analyticsService := service.NewAnalyticsService(analyticsRepo)
	exportService := service.NewExportService(transactionRepo, objectStorage)

	handlers := handler.Handlers{
		Transactions: handler.NewTransactionHandler(transactionService),
		Analytics:    handler.NewAnalyticsHandler(analyticsService),
		Goals:        handler.NewGoalHandler(goalService),
		Budgets:      handler.NewBudgetHandler(budgetService),
		Categories:   handler.NewCategoryHandler(categoryService),
		Exports:      handler.NewExportHandler(exportService),
		WebSocket:    handler.NewWebSocketHandler(hub, cfg.CORSOrigins),
	}

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimit.Requests, cfg.RateLimit.Window)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestID())

	// Disallowed origins get no CORS headers
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Security headers (helmet-like), CSP left off
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "0",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		HSTSMaxAge:         15552000,
		ReferrerPolicy:     "no-referrer",
	}))

	e.Use(echomiddleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RateLimitMiddleware(rateLimiter))

	handler.RegisterRoutes(e, handlers, []handler.Server{
		{URL: "http://localhost:" + cfg.Port, Description: "Local Development"},
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	hub.CloseAll()
	rateLimiter.Stop()
	if relay != nil {
		if err := relay.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close event relay")
		}
	}

	log.Info().Msg("Server exited")
}
