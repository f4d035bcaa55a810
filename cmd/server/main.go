package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	catalogapp "github.com/erp/inventory/internal/application/catalog"
	inventoryapp "github.com/erp/inventory/internal/application/inventory"
	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/erp/inventory/internal/infrastructure/cache"
	"github.com/erp/inventory/internal/infrastructure/config"
	"github.com/erp/inventory/internal/infrastructure/event"
	"github.com/erp/inventory/internal/infrastructure/export"
	"github.com/erp/inventory/internal/infrastructure/logger"
	"github.com/erp/inventory/internal/infrastructure/persistence"
	"github.com/erp/inventory/internal/infrastructure/printing"
	"github.com/erp/inventory/internal/infrastructure/telemetry"
	"github.com/erp/inventory/internal/interfaces/http/handler"
	"github.com/erp/inventory/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//	@title			Inventory API
//	@version		1.0
//	@description	Warehouse stock mutation engine: receipts, deliveries, internal transfers and adjustments

//	@host		localhost:8080
//	@BasePath	/api/v1

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()

	// Bootstrap logger used until the OTLP log bridge is ready
	bootLog, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize log exporter", zap.Error(err))
	}

	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}, telemetry.NewZapOTELCore(cfg.Telemetry.ServiceName, loggerProvider, level))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting inventory service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.PyroscopeAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider.Meter("inventory.db"), log)
	if err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	quantRepo := persistence.NewGormStockQuantRepository(db.DB)
	moveRepo := persistence.NewGormStockMoveRepository(db.DB)

	kpiCache, closeCache, err := cache.NewKPICacheFactory(cfg.Cache, cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	).Create(ctx)
	if err != nil {
		log.Fatal("Failed to initialize dashboard cache", zap.Error(err))
	}

	stockMetrics, err := telemetry.NewStockMetrics(telemetry.StockMetricsConfig{
		Meter:             meterProvider.Meter("inventory.stock"),
		Logger:            log,
		LowStock:          productRepo,
		LowStockThreshold: cfg.Dashboard.LowStockThreshold,
	})
	if err != nil {
		log.Fatal("Failed to initialize stock metrics", zap.Error(err))
	}

	eventBus := event.NewInMemoryEventBus(log)

	// Application services
	dashboardService := inventoryapp.NewDashboardService(productRepo, moveRepo, kpiCache, inventoryapp.DashboardConfig{
		LowStockThreshold: cfg.Dashboard.LowStockThreshold,
		RecentLimit:       cfg.Dashboard.RecentActivityLimit,
		CacheTTL:          cfg.Cache.KPITTL,
	}, log)
	eventBus.Subscribe(inventoryapp.NewDashboardCacheHandler(dashboardService, log))

	operationService := inventoryapp.NewOperationService(
		persistence.NewGormTransactionScope(db.DB),
		inventory.NewOperationValidator(productRepo, locationRepo),
		moveRepo,
		inventoryapp.WithEventPublisher(eventBus),
		inventoryapp.WithSlipRenderer(printing.NewSlipRenderer(cfg.App.Name)),
		inventoryapp.WithOperationMetrics(stockMetrics),
		inventoryapp.WithLogger(log),
	)
	stockService := inventoryapp.NewStockService(quantRepo, productRepo, export.NewStockWorkbook())
	productService := catalogapp.NewProductService(productRepo, eventBus, cfg.Dashboard.LowStockThreshold, log)
	warehouseService := inventoryapp.NewWarehouseService(warehouseRepo)
	locationService := inventoryapp.NewLocationService(locationRepo, warehouseRepo)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to access connection pool", zap.Error(err))
	}
	scrape, err := telemetry.NewScrapeRegistry(telemetry.ScrapeConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Version:     version,
		DB:          sqlDB,
		DBName:      cfg.Database.DBName,
	})
	if err != nil {
		log.Fatal("Failed to initialize Prometheus registry", zap.Error(err))
	}

	engine := router.NewEngine(router.EngineConfig{
		Logger:         log,
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: tracerProvider.IsEnabled(),
		MeterProvider:  meterProvider,
		CORSOrigins:    cfg.Server.CORSAllowOrigins,
		TrustedProxies: cfg.Server.TrustedProxies,
		MaxBodySize:    cfg.Server.MaxBodySize,
	}, router.Handlers{
		Health:     handler.NewHealthHandler(db, version),
		Operation:  handler.NewOperationHandler(operationService),
		Stock:      handler.NewStockHandler(stockService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		Product:    handler.NewProductHandler(productService),
		Warehouse:  handler.NewWarehouseHandler(warehouseService),
		Location:   handler.NewLocationHandler(locationService),
		Prometheus: scrape,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Warn("Event bus stop failed", zap.Error(err))
	}
	if err := closeCache(); err != nil {
		log.Warn("Dashboard cache close failed", zap.Error(err))
	}
	if err := stockMetrics.Stop(); err != nil {
		log.Warn("Stock metrics stop failed", zap.Error(err))
	}
	if err := dbMetrics.Stop(); err != nil {
		log.Warn("Database metrics stop failed", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Profiler stop failed", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Meter provider shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		bootLog.Warn("Logger provider shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
