package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/packsource/backend/internal/application/catalog"
	identityapp "github.com/packsource/backend/internal/application/identity"
	orderingapp "github.com/packsource/backend/internal/application/ordering"
	reportapp "github.com/packsource/backend/internal/application/report"
	uploadapp "github.com/packsource/backend/internal/application/upload"
	"github.com/packsource/backend/internal/infrastructure/auth"
	"github.com/packsource/backend/internal/infrastructure/config"
	"github.com/packsource/backend/internal/infrastructure/logger"
	"github.com/packsource/backend/internal/infrastructure/persistence"
	"github.com/packsource/backend/internal/infrastructure/storage"
	"github.com/packsource/backend/internal/interfaces/http/handler"
	"github.com/packsource/backend/internal/interfaces/http/middleware"
	"github.com/packsource/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.Output = cfg.Log.Output
	appLogger, err := logger.New(logCfg)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = logger.Sync(appLogger) }()

	appLogger.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLogger := logger.NewGormLogger(appLogger, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLogger)
	if err != nil {
		appLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database", zap.Error(err))
		}
	}()

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	changeRequestRepo := persistence.NewGormChangeRequestRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, appLogger)
	userService := identityapp.NewUserService(userRepo, appLogger)
	productService := catalogapp.NewProductService(productRepo, appLogger)
	changeRequestService := catalogapp.NewChangeRequestService(changeRequestRepo, productRepo, appLogger)
	orderService := orderingapp.NewOrderService(orderRepo, productRepo, appLogger)
	reportService := reportapp.NewReportService(orderRepo, productRepo, userRepo, appLogger)

	objectStorage, err := buildObjectStorage(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("failed to initialize object storage", zap.Error(err))
	}
	uploadService := uploadapp.NewUploadService(objectStorage, cfg.HTTP.MaxUploadSize, appLogger)

	// Handlers
	systemHandler := handler.NewSystemHandler(db)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	changeRequestHandler := handler.NewChangeRequestHandler(changeRequestService)
	orderHandler := handler.NewOrderHandler(orderService)
	reportHandler := handler.NewReportHandler(reportService)
	uploadHandler := handler.NewUploadHandler(uploadService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		appLogger.Fatal("failed to set trusted proxies", zap.Error(err))
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

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(appLogger))
	engine.Use(logger.GinMiddleware(appLogger))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxUploadSize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	// Liveness probe outside the versioned API group.
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = appLogger

	r := router.NewRouter(engine,
		router.WithMiddleware(middleware.JWTAuthMiddlewareWithConfig(jwtConfig)),
	)
	r.Register(systemHandler).
		Register(authHandler).
		Register(userHandler).
		Register(productHandler).
		Register(changeRequestHandler).
		Register(orderHandler).
		Register(reportHandler).
		Register(uploadHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("forced shutdown", zap.Error(err))
	}
	appLogger.Info("server stopped")
}

// buildObjectStorage selects S3-compatible storage when configured and
// falls back to inline data URLs for local development.
func buildObjectStorage(cfg *config.Config, appLogger *zap.Logger) (storage.ObjectStorage, error) {
	if !cfg.Storage.Enabled() {
		appLogger.Warn("object storage not configured, uploads are stored as data URLs")
		return storage.NewDataURLStorage(), nil
	}

	s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s3Storage.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	appLogger.Info("object storage ready", zap.String("bucket", cfg.Storage.Bucket))
	return s3Storage, nil
}
