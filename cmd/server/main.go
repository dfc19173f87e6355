package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	appbilling "github.com/inmogest/backend/internal/application/billing"
	appfiscal "github.com/inmogest/backend/internal/application/fiscal"
	appidentity "github.com/inmogest/backend/internal/application/identity"
	apppartner "github.com/inmogest/backend/internal/application/partner"
	appproperty "github.com/inmogest/backend/internal/application/property"
	"github.com/inmogest/backend/internal/domain/fiscal"
	"github.com/inmogest/backend/internal/infrastructure/auth"
	"github.com/inmogest/backend/internal/infrastructure/cache"
	"github.com/inmogest/backend/internal/infrastructure/config"
	"github.com/inmogest/backend/internal/infrastructure/logger"
	"github.com/inmogest/backend/internal/infrastructure/persistence"
	"github.com/inmogest/backend/internal/infrastructure/telemetry"
	"github.com/inmogest/backend/internal/interfaces/http/handler"
	"github.com/inmogest/backend/internal/interfaces/http/middleware"
	"github.com/inmogest/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer log.Sync() //nolint:errcheck

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		return fmt.Errorf("init tracer provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("tracer provider shutdown", zap.Error(err))
		}
	}()

	// Database
	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	database, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer database.Close() //nolint:errcheck

	if err := telemetry.RegisterDBTracing(database.DB, telemetry.DBTracingConfig{
		Enabled: cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:  cfg.Database.DBName,
	}, log); err != nil {
		return fmt.Errorf("register db tracing: %w", err)
	}

	// Repositories
	clientRepo := persistence.NewGormClientRepository(database.DB)
	ownerRepo := persistence.NewGormOwnerRepository(database.DB)
	supplierRepo := persistence.NewGormSupplierRepository(database.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(database.DB)
	estateRepo := persistence.NewGormEstateRepository(database.DB)
	receivedRepo := persistence.NewGormReceivedInvoiceRepository(database.DB)
	issuedRepo := persistence.NewGormIssuedInvoiceRepository(database.DB, cfg.Fiscal.InvoiceNumberPrefix)
	expenseRepo := persistence.NewGormInternalExpenseRepository(database.DB)
	userRepo := persistence.NewGormUserRepository(database.DB)

	// Fiscal reporting
	fiscalSource := persistence.NewGormFiscalSource(receivedRepo, issuedRepo, expenseRepo, estateRepo)
	bookService := fiscal.NewBookService(fiscalSource, fiscalSource)

	bookCache, err := cache.NewBookCacheFactory(cfg.Redis, cfg.Fiscal.BookCacheTTL,
		cache.WithLogger(log)).Create()
	if err != nil {
		return fmt.Errorf("create book cache: %w", err)
	}

	parsedShares, err := cfg.Fiscal.ParsedShares()
	if err != nil {
		return fmt.Errorf("parse default ownership table: %w", err)
	}
	defaultShares := make([]fiscal.OwnershipShare, len(parsedShares))
	for i, s := range parsedShares {
		defaultShares[i] = fiscal.OwnershipShare{
			OwnerID:    s.OwnerID,
			OwnerName:  s.OwnerName,
			Percentage: s.Percentage,
		}
	}

	reportService := appfiscal.NewReportService(bookService, bookCache, defaultShares, log)

	// Application services. Every mutating billing and property service
	// invalidates the cached books through the report service.
	clientService := apppartner.NewClientService(clientRepo)
	ownerService := apppartner.NewOwnerService(ownerRepo)
	supplierService := apppartner.NewSupplierService(supplierRepo)
	employeeService := apppartner.NewEmployeeService(employeeRepo)
	estateService := appproperty.NewEstateService(estateRepo, reportService)
	receivedService := appbilling.NewReceivedInvoiceService(receivedRepo, supplierRepo, estateRepo, reportService)
	issuedService := appbilling.NewIssuedInvoiceService(issuedRepo, clientRepo, estateRepo, reportService)
	expenseService := appbilling.NewExpenseService(expenseRepo, estateRepo, reportService)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := appidentity.NewAuthService(userRepo, jwtService, appidentity.DefaultAuthServiceConfig(), log)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		return fmt.Errorf("setup validator: %w", err)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return fmt.Errorf("set trusted proxies: %w", err)
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(
			middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)))
	}
	engine.Use(
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		middleware.SpanErrorMarker(),
		middleware.JWT(middleware.JWTConfig{
			Service: jwtService,
			SkipPaths: []string{
				"/api/v1/auth/login",
				"/api/v1/system/health",
				"/api/v1/system/info",
			},
		}),
	)

	router.New(engine).Register(
		handler.NewSystemHandler(database.DB, version),
		handler.NewAuthHandler(authService, log),
		handler.NewClientHandler(clientService, log),
		handler.NewOwnerHandler(ownerService, log),
		handler.NewSupplierHandler(supplierService, log),
		handler.NewEmployeeHandler(employeeService, log),
		handler.NewEstateHandler(estateService, log),
		handler.NewReceivedInvoiceHandler(receivedService, log),
		handler.NewIssuedInvoiceHandler(issuedService, log),
		handler.NewExpenseHandler(expenseService, log),
		handler.NewFiscalHandler(reportService, log),
	).Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening",
			zap.String("addr", server.Addr),
			zap.String("env", cfg.App.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
