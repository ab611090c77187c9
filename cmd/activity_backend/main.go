package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/activity_tracker/internal/adapters/events"
	"github.com/SscSPs/activity_tracker/internal/adapters/exchangerates"
	"github.com/SscSPs/activity_tracker/internal/adapters/export"
	portsrepo "github.com/SscSPs/activity_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
	"github.com/SscSPs/activity_tracker/internal/core/services"
	"github.com/SscSPs/activity_tracker/internal/handlers"
	"github.com/SscSPs/activity_tracker/internal/middleware"
	"github.com/SscSPs/activity_tracker/internal/platform/config"
	"github.com/SscSPs/activity_tracker/internal/platform/holidays"
	"github.com/SscSPs/activity_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/activity_tracker/internal/repositories/memory"
	"github.com/SscSPs/activity_tracker/internal/utils"
	"github.com/SscSPs/activity_tracker/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Activity Tracker API
// @version 1.0
// @description Monthly activity reports, lifecycle and yearly revenue analytics for freelancers.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepos()

	converter := services.NewCurrencyConverter(rateSource(cfg, repos), services.ConverterConfig{
		RefreshInterval: cfg.FXRefreshInterval,
		RetryInterval:   cfg.FXRetryInterval,
		MaxStaleness:    cfg.FXMaxStaleness,
	}, logger)
	if err := converter.Start(ctx); err != nil {
		// Conversions fail until a later refresh succeeds; everything else keeps working.
		logger.Warn("Initial exchange rate fetch failed", slog.String("error", err.Error()))
	}
	defer converter.Stop()

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	publisher, closePublisher := setupPublisher(cfg, posthogClient, logger)
	defer closePublisher()

	svcContainer := services.NewServiceContainer(cfg, repos, services.Infrastructure{
		Converter: converter,
		Oracle:    holidays.NewOracle(),
		Renderer:  export.NewXLSXRenderer(),
		Publisher: publisher,
	})

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	r.Use(cors.New(corsConfig))

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(rateLimiter))
	r.Use(middleware.PosthogMiddleware(posthogClient))

	handlers.RegisterRoutes(r, cfg, svcContainer)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// setupRepositories connects to PostgreSQL and applies migrations when PGSQL_URL is set,
// otherwise it falls back to the in-memory store.
func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Info("Using in-memory storage")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck, logger)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}

	logger.Info("Running database migrations...")
	if err := pgsql.RunMigrations(cfg.DatabaseURL); err != nil {
		database.ClosePgxPool(dbPool, logger)
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database migrations applied")

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool, logger) }, nil
}

func rateSource(cfg *config.Config, repos portsrepo.RepositoryProvider) portssvc.RateSource {
	switch cfg.FXSource {
	case config.FXSourceHTTP:
		return exchangerates.NewHTTPSource(cfg.FXHTTPURL, nil)
	case config.FXSourceStatic:
		return exchangerates.NewStaticSource(exchangerates.DefaultStaticRates())
	default:
		return exchangerates.NewRepositorySource(repos.ExchangeRateRepo)
	}
}

// setupPublisher fans report events out to posthog and, when configured, AMQP.
// An unreachable broker is logged and skipped.
func setupPublisher(cfg *config.Config, posthogClient *utils.PosthogClientWrapper, logger *slog.Logger) (portssvc.EventPublisher, func()) {
	publishers := events.MultiPublisher{events.NewPosthogPublisher(posthogClient)}
	closeFn := func() {}

	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
		if err != nil {
			logger.Error("Failed to connect to AMQP broker, report events will not be published to it", slog.String("error", err.Error()))
		} else {
			logger.Info("AMQP publisher ready", slog.String("exchange", cfg.AMQPExchange))
			publishers = append(publishers, amqpPublisher)
			closeFn = func() {
				if err := amqpPublisher.Close(); err != nil {
					logger.Error("Error closing AMQP publisher", slog.String("error", err.Error()))
				}
			}
		}
	}
	return publishers, closeFn
}
