package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/citypass-labs/ticketd/internal/adapter"
	"github.com/citypass-labs/ticketd/internal/config"
	"github.com/citypass-labs/ticketd/internal/logger"
	"github.com/citypass-labs/ticketd/internal/store"
	"github.com/citypass-labs/ticketd/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize clock adapter
	clock := adapter.NewClock()

	// Initialize link expiry sweeper
	linkSweeperConfig := &sweeper.LinkExpirySweeperConfig{
		BatchSize:      cfg.LinkExpirySweeper.BatchSize,
		WorkerPoolSize: cfg.LinkExpirySweeper.Worker.WorkerPoolSize,
	}
	linkSweeper := sweeper.NewLinkExpirySweeper(linkSweeperConfig, dataStore, clock)

	logger.InfoCtx(ctx, "Initialized link expiry sweeper (continuous mode)",
		zap.Int("batch_size", cfg.LinkExpirySweeper.BatchSize),
		zap.Int("worker_pool_size", cfg.LinkExpirySweeper.Worker.WorkerPoolSize),
	)

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := linkSweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the sweeper
	cancel()

	// Give the sweeper time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := linkSweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
}
