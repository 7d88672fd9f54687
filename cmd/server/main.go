package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	catalogapp "github.com/pieshop/admin/internal/application/catalog"
	partnerapp "github.com/pieshop/admin/internal/application/partner"
	tradeapp "github.com/pieshop/admin/internal/application/trade"
	"github.com/pieshop/admin/internal/infrastructure/auth"
	"github.com/pieshop/admin/internal/infrastructure/config"
	"github.com/pieshop/admin/internal/infrastructure/logger"
	"github.com/pieshop/admin/internal/infrastructure/migration"
	"github.com/pieshop/admin/internal/infrastructure/persistence"
	"github.com/pieshop/admin/internal/infrastructure/seed"
	"github.com/pieshop/admin/internal/infrastructure/telemetry"
	"github.com/pieshop/admin/internal/interfaces/http/handler"
	"github.com/pieshop/admin/internal/interfaces/http/middleware"
	"github.com/pieshop/admin/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const serviceVersion = "1.0.0"

//go:generate swag init -g main.go -d ./,../../internal/interfaces/http/handler,../../internal/interfaces/http/dto -o ../../docs

//	@title			Pie Shop Admin API
//	@version		1.0
//	@description	Admin console for a pie shop: products, customers, orders, order line items and reviews.
//	@description	Writes take form-encoded bodies and answer with a 302 redirect to the entity list.

//	@contact.name	Pie Shop Support
//	@contact.email	support@pieshop.example

//	@host		localhost:5000
//	@BasePath	/

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.NewConfig(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.App.Env))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting pie shop admin",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("driver", cfg.Database.Driver),
	)

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    serviceVersion,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    serviceVersion,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithParameterizedQueries(!cfg.Telemetry.DBLogFullSQL))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("dialect", db.Dialect))

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        db.Dialect,
	}, log)
	if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := migrateSchema(ctx, &cfg.Database, db, log); err != nil {
			log.Fatal("Failed to migrate schema", zap.Error(err))
		}
	}

	hasher, err := auth.NewPasswordHasher(cfg.Security)
	if err != nil {
		log.Fatal("Failed to configure password hashing", zap.Error(err))
	}

	if cfg.Seed.OnStartup {
		seeder := seed.NewSeeder(persistence.NewStore(db), hasher, log)
		if err := seeder.Run(ctx); err != nil {
			log.Fatal("Failed to seed sample data", zap.Error(err))
		}
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	lineItemRepo := persistence.NewGormOrderLineItemRepository(db)
	reviewRepo := persistence.NewGormReviewRepository(db)

	// Services
	productService := catalogapp.NewProductService(productRepo)
	reviewService := catalogapp.NewReviewService(reviewRepo, productRepo, customerRepo)
	customerService := partnerapp.NewCustomerService(customerRepo, hasher)
	orderService := tradeapp.NewOrderService(orderRepo, customerRepo)
	lineItemService := tradeapp.NewLineItemService(lineItemRepo, orderRepo, productRepo)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine, err := router.NewEngine(router.EngineConfig{
		HTTP: cfg.HTTP,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		Metrics: middleware.HTTPMetricsConfig{
			MeterProvider: mp,
			Enabled:       cfg.Telemetry.Enabled,
		},
		Swagger: cfg.Swagger.Enabled,
		Logger:  log,
	}, router.Handlers{
		Product:  handler.NewProductHandler(productService),
		Customer: handler.NewCustomerHandler(customerService),
		Order:    handler.NewOrderHandler(orderService),
		LineItem: handler.NewOrderLineItemHandler(lineItemService),
		Review:   handler.NewReviewHandler(reviewService),
		System:   handler.NewSystemHandler(db),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

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

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// migrateSchema brings the schema up to date. SQLite is migrated from the
// GORM models; Postgres runs the versioned migrations on a dedicated
// connection, since closing the migrator closes its connection.
func migrateSchema(ctx context.Context, cfg *config.DatabaseConfig, db *persistence.Database, log *zap.Logger) error {
	if cfg.IsSQLite() {
		return db.AutoMigrate(ctx)
	}

	migrationDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return err
	}

	m, err := migration.New(migrationDB, cfg.MigrationsPath, log)
	if err != nil {
		_ = migrationDB.Close()
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Error closing migrator", zap.Error(err))
		}
	}()

	start := time.Now()
	if err := m.Up(); err != nil {
		return err
	}
	log.Info("Schema migrated", zap.Duration("took", time.Since(start)))
	return nil
}
