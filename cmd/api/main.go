package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mohammadpnp/appraisal-import/internal/bootstrap"
	"github.com/mohammadpnp/appraisal-import/internal/config"
	"github.com/mohammadpnp/appraisal-import/internal/infrastructure/db"
	"github.com/mohammadpnp/appraisal-import/internal/infrastructure/progress"
	"github.com/mohammadpnp/appraisal-import/internal/logging"
)

const (
	shutdownTimeout = 10 * time.Second
	drainTimeout    = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("failed to build logger: %v", err)
	}

	gdb, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to create pgx pool: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), gdb); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	store, err := progress.NewRedisStore(cfg.RedisURL, cfg.ProgressTTL)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer store.Close()

	runCtx, stopRuns := context.WithCancel(context.Background())
	defer stopRuns()

	server := bootstrap.NewHTTPServer(runCtx, bootstrap.Dependencies{
		Config:   cfg,
		Log:      log,
		DB:       gdb,
		Pool:     pool,
		Progress: store,
	})
	if server.Enrichment != nil {
		server.Enrichment.Start(runCtx)
	}

	go func() {
		if err := server.Echo.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Echo.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}

	// Runs in flight get a grace period before they are cancelled.
	drained := make(chan struct{})
	go func() {
		server.Tracker.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(drainTimeout):
		log.Warn("cancelling unfinished runs")
		stopRuns()
		<-drained
	}

	if server.Enrichment != nil {
		server.Enrichment.Stop()
	}
	log.Info("shutdown complete")
}
