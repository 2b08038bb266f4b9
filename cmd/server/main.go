package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio-builder/adapters/http"
	"github.com/khoahotran/portfolio-builder/adapters/media_storage"
	"github.com/khoahotran/portfolio-builder/adapters/persistence"
	"github.com/khoahotran/portfolio-builder/internal/application/service"
	portfolioUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio-builder/internal/config"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
	"github.com/khoahotran/portfolio-builder/pkg/tracing"
)

func main() {
	fmt.Println("Start Portfolio Builder API Server...")

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if tracing.Enabled(cfg) {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "portfolio-api")
		if err != nil {
			appLogger.Warn("Tracing disabled", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
		}
	}

	// Repositories
	var durable portfolio.Repository
	if cfg.DurableConfigured() {
		dbPool, err := persistence.NewPostgresPool(ctx, cfg)
		if err != nil {
			appLogger.Fatal("Cannot create Postgres pool", err)
		}
		defer dbPool.Close()

		err = persistence.ConnectAndProvision(ctx, dbPool, appLogger)
		switch {
		case err == nil:
		case errors.Is(err, persistence.ErrDatabaseUnreachable):
			appLogger.Warn("Database not reachable at startup, schema will be provisioned on first successful request", zap.Error(err))
		default:
			appLogger.Fatal("Cannot provision database schema", err)
		}
		durable = persistence.NewPostgresPortfolioRepo(dbPool, appLogger)
	} else {
		appLogger.Warn("DATABASE_URL not set, using in-memory storage only")
	}
	memory := persistence.NewMemoryPortfolioRepo()
	store := persistence.NewFallbackStore(durable, memory, appLogger)

	// Services
	var uploader service.Uploader
	if cfg.CloudinaryConfigured() {
		uploader, err = media_storage.NewCloudinaryAdapter(cfg, appLogger)
		if err != nil {
			appLogger.Warn("Cloudinary disabled, resumes are stored inline", zap.Error(err))
			uploader = nil
		}
	}

	publisher := service.NewNopPublisher()
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	}

	// Use Cases
	submitPortfolioUseCase := portfolioUC.NewSubmitPortfolioUseCase(store, uploader, publisher, appLogger)
	getPortfolioUseCase := portfolioUC.NewGetPortfolioUseCase(store, appLogger)

	// HTTP Handlers
	portfolioHandler := httpAdapter.NewPortfolioHandler(submitPortfolioUseCase, getPortfolioUseCase, appLogger)
	healthHandler := httpAdapter.NewHealthHandler(store, cfg.App.Env, appLogger)

	router := httpAdapter.NewRouter(portfolioHandler, healthHandler, appLogger, cfg.IsProduction())

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}
