package main // Entry point package

import (
	"context"   // Shutdown deadline and consumer cancellation
	"errors"    // Matching http.ErrServerClosed
	"log"       // Fallback logging before zap is ready
	"net/http"  // Server closed sentinel
	"os"        // Signal channel
	"os/signal" // Graceful shutdown on SIGINT/SIGTERM
	"syscall"   // SIGTERM
	"time"      // Shutdown timeout

	"github.com/labstack/echo/v4"                   // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // Echo built-in middleware
	"go.uber.org/zap"                               // Structured logging

	"github.com/iliyamo/cinema-maintenance/internal/config"     // Internal config loader
	"github.com/iliyamo/cinema-maintenance/internal/database"   // MySQL pool and schema
	"github.com/iliyamo/cinema-maintenance/internal/handler"    // HTTP handlers
	"github.com/iliyamo/cinema-maintenance/internal/logger"     // zap construction
	"github.com/iliyamo/cinema-maintenance/internal/middleware" // Cache, rate limit, request log
	"github.com/iliyamo/cinema-maintenance/internal/queue"      // Facility events
	"github.com/iliyamo/cinema-maintenance/internal/repository" // Entity store
	"github.com/iliyamo/cinema-maintenance/internal/router"     // Internal router setup
	"github.com/iliyamo/cinema-maintenance/internal/service"    // Event publisher interface
)

func main() {
	cfg := config.Load() // Load environment config

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat, "cinema-maintenance")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Open(database.Options{
		User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
	})
	if err != nil {
		zl.Fatal("database connect", zap.Error(err))
	}
	defer db.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Migrate(migrateCtx, db)
	cancelMigrate()
	if err != nil {
		zl.Fatal("database migrate", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var events service.EventPublisher = queue.Discard{}
	if cfg.EventsEnabled {
		events = queue.NewPublisher(cfg.RabbitURL)
		go func() {
			if err := queue.StartAuditConsumer(ctx, cfg.RabbitURL, zl); err != nil && !errors.Is(err, context.Canceled) {
				zl.Error("audit consumer stopped", zap.Error(err))
			}
		}()
	}

	rdb := config.NewRedisClient(zl) // nil when redis is unreachable
	if rdb != nil {
		defer rdb.Close()
	}

	store := repository.NewStore(db)
	h := handler.New(store, events, zl)
	auth, err := handler.NewAuthHandler(cfg)
	if err != nil {
		zl.Fatal("hash admin password", zap.Error(err))
	}

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLog(zl))

	router.RegisterRoutes(e, db) // Register application routes
	v1 := e.Group("/v1", middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, zl))
	router.RegisterAuth(v1, auth)
	router.RegisterRead(v1, h)
	router.RegisterReports(v1, h, middleware.NewRedisCache(config.LoadCacheConfig(), rdb, zl))
	router.RegisterAdmin(v1, h, cfg.JWTSecret)

	addr := ":" + cfg.Port // Address string with port
	go func() {
		zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.Bool("events", cfg.EventsEnabled))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) { // Start HTTP server
			zl.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
	zl.Info("stopped")
}
