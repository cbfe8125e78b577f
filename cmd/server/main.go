package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	advanceapp "github.com/dixmit/sale-workflow/internal/application/advance"
	"github.com/dixmit/sale-workflow/internal/domain/currency"
	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/dixmit/sale-workflow/internal/infrastructure/cache"
	"github.com/dixmit/sale-workflow/internal/infrastructure/config"
	"github.com/dixmit/sale-workflow/internal/infrastructure/event"
	"github.com/dixmit/sale-workflow/internal/infrastructure/logger"
	"github.com/dixmit/sale-workflow/internal/infrastructure/persistence"
	"github.com/dixmit/sale-workflow/internal/infrastructure/telemetry"
	"github.com/dixmit/sale-workflow/internal/interfaces/http/handler"
	"github.com/dixmit/sale-workflow/internal/interfaces/http/middleware"
	"github.com/dixmit/sale-workflow/internal/interfaces/http/router"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Sale Workflow API
//	@version		1.0
//	@description	Advance payments on sales orders
//	@BasePath		/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Bootstrap logger for telemetry setup; replaced once the OTLP log
	// provider exists.
	bootLog, err := newLogger(cfg, nil)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	providers, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		Insecure:          cfg.Telemetry.Insecure,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		MetricsEnabled:    cfg.Telemetry.MetricsEnabled,
		MetricsInterval:   cfg.Telemetry.MetricsInterval,
		LogsEnabled:       cfg.Telemetry.LogsEnabled,
		SpanProfiles:      cfg.Profiling.Enabled && cfg.Profiling.SpanProfiles,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			bootLog.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	log := bootLog
	if lp := providers.LoggerProvider(); lp != nil {
		level, _ := logger.ParseLevel(cfg.Log.Level)
		if log, err = newLogger(cfg, logger.WithCore(telemetry.NewZapCore(cfg.Telemetry.ServiceName, lp, level))); err != nil {
			bootLog.Fatal("Failed to initialize logger", zap.Error(err))
		}
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting sale workflow",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Profiling.Enabled,
		ServerAddress:     cfg.Profiling.ServerAddress,
		ApplicationName:   cfg.Profiling.ApplicationName,
		BasicAuthUser:     cfg.Profiling.BasicAuthUser,
		BasicAuthPassword: cfg.Profiling.BasicAuthPassword,
		ProfileTypes:      cfg.Profiling.ProfileTypes,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
		DBName:     cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected")

	orderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	journalRepo := persistence.NewGormJournalRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	rateRepo := persistence.NewGormExchangeRateRepository(db.DB)

	store, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cfg.Idempotency, cache.WithLogger(log)).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	metrics, err := telemetry.NewAdvancePaymentMetrics(otel.Meter(telemetry.MeterName))
	if err != nil {
		log.Fatal("Failed to create metrics", zap.Error(err))
	}

	eventBus := event.NewInMemoryEventBus(log)
	postedHandler := event.NewIdempotentHandler(
		advanceapp.NewPaymentPostedHandler(metrics, log),
		store,
		shared.IdempotencyConfig{Enabled: cfg.Idempotency.Enabled, TTL: cfg.Idempotency.TTL},
		log,
	)
	eventBus.Subscribe(postedHandler)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()
	log.Info("Event handlers registered", zap.Strings("payment_posted_events", postedHandler.EventTypes()))

	opts := []advanceapp.Option{
		advanceapp.WithEventPublisher(eventBus),
		advanceapp.WithMetrics(metrics),
		advanceapp.WithConfig(advanceapp.Config{
			ExcludedMethodCodes: cfg.Advance.ExcludedMethodCodes,
			CompareDigits:       cfg.Advance.CompareDigits,
			IdempotencyTTL:      cfg.Idempotency.TTL,
		}),
	}
	if cfg.Idempotency.Enabled {
		opts = append(opts, advanceapp.WithIdempotencyStore(store))
	}
	advanceService := advanceapp.NewService(
		orderRepo, journalRepo, companyRepo, partnerRepo, paymentRepo,
		currency.NewConverter(rateRepo), db, opts...,
	)

	middleware.SetupValidator()
	engine := router.NewEngine(cfg, log, router.Handlers{
		System: handler.NewSystemHandler(cfg.App.Name, version, map[string]handler.Pinger{
			"database": db,
		}),
		AdvancePayment: handler.NewAdvancePaymentHandler(advanceService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	log.Info("Server exited gracefully")
}

func newLogger(cfg *config.Config, opt logger.Option) (*zap.Logger, error) {
	var opts []logger.Option
	if opt != nil {
		opts = append(opts, opt)
	}
	return logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}, opts...)
}
