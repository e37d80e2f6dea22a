package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/agriempower/backend/internal/config"
	"github.com/agriempower/backend/internal/content"
	"github.com/agriempower/backend/internal/delivery/http"
	"github.com/agriempower/backend/internal/fertility"
	"github.com/agriempower/backend/internal/repository/postgres"
	"github.com/agriempower/backend/internal/scheduler"
	"github.com/agriempower/backend/internal/service"
	"github.com/agriempower/backend/internal/synth"
)

func main() {
	// Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	// Repositories
	var auditRepo service.AuditRepository
	pool := connectDatabase(cfg, zl)
	if pool != nil {
		defer pool.Close()
		auditRepo = postgres.NewPostgresRepository(pool)
	} else {
		auditRepo = postgres.NewMockRepository()
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := service.NewMetrics(reg)

	dir, err := content.Load()
	if err != nil {
		zl.Fatal("failed to load directory content", zap.Error(err))
	}

	// Services. Every request draws from its own unseeded generator.
	newGenerator := func() *synth.Generator { return synth.NewUnseeded() }

	forest := fertility.DefaultOptions()
	forest.Trees = cfg.ForestTrees
	forest.Seed = cfg.ModelSeed

	advisorySvc := service.NewAdvisoryService(service.AdvisoryConfig{
		TrainingSamples: cfg.TrainingSamples,
		Forest:          forest,
		CacheModel:      cfg.ModelRefreshInterval > 0,
	}, newGenerator, auditRepo, metrics, zl.Named("advisory"))
	monitoringSvc := service.NewMonitoringService(cfg.CropSeriesDays, cfg.MaxImagePixels, newGenerator, auditRepo, metrics, zl.Named("monitoring"))
	directorySvc := service.NewDirectoryService(dir, zl.Named("directory"))

	sched := scheduler.New(advisorySvc, cfg.ModelRefreshInterval, zl.Named("scheduler"))
	if err := sched.Start(); err != nil {
		zl.Fatal("failed to start scheduler", zap.Error(err))
	}

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "AgriEmpower API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    cfg.MaxUploadBytes + 64<<10,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, http.Dependencies{
		Advisory:       advisorySvc,
		Monitoring:     monitoringSvc,
		Directory:      directorySvc,
		Repo:           auditRepo,
		Gatherer:       reg,
		MaxUploadBytes: int64(cfg.MaxUploadBytes),
	})

	// Graceful shutdown
	go func() {
		zl.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")
	sched.Stop()
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zl.Warn("server forced to shutdown", zap.Error(err))
	}
	advisorySvc.WaitBackground()
	monitoringSvc.WaitBackground()
	zl.Info("server exited gracefully")
}

// connectDatabase opens the audit database, or returns nil to run with the in-memory repository
func connectDatabase(cfg *config.AppConfig, zl *zap.Logger) *pgxpool.Pool {
	if cfg.DatabaseURL == "" {
		zl.Info("no DATABASE_URL set, audit logs kept in memory")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err == nil {
		err = postgres.NewPostgresRepository(pool).EnsureSchema(ctx)
	}
	if err != nil {
		zl.Warn("could not connect to database, audit logs kept in memory", zap.Error(err))
		if pool != nil {
			pool.Close()
		}
		return nil
	}

	zl.Info("connected to PostgreSQL")
	return pool
}
