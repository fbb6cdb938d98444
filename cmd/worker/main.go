package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/citypass-labs/ticketd/internal/adapter"
	"github.com/citypass-labs/ticketd/internal/bridge"
	"github.com/citypass-labs/ticketd/internal/claims"
	"github.com/citypass-labs/ticketd/internal/config"
	"github.com/citypass-labs/ticketd/internal/logger"
	"github.com/citypass-labs/ticketd/internal/metadata"
	"github.com/citypass-labs/ticketd/internal/minter"
	"github.com/citypass-labs/ticketd/internal/purchase"
	temporal "github.com/citypass-labs/ticketd/internal/providers/temporal"
	"github.com/citypass-labs/ticketd/internal/store"
	"github.com/citypass-labs/ticketd/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadWorkerCoreConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "purchase-worker",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting purchase worker")

	// Connect to database. TranslateError surfaces unique-constraint
	// violations as gorm.ErrDuplicatedKey, which the claim path relies on.
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(cfg.MintEngine.Timeout)

	// Initialize mint engine client and services
	mintEngine := minter.NewEngineClient(cfg.MintEngine.BaseURL, cfg.MintEngine.APIKey, httpClient)
	metadataBuilder := metadata.NewBuilder()
	claimsService := claims.NewService(dataStore, mintEngine, metadataBuilder)
	purchaseService := purchase.NewService(dataStore, claimsService, mintEngine)

	// Initialize executor for activities
	executor := workflows.NewExecutor(purchaseService)

	// Connect to Temporal with logger integration
	temporalLogger := temporal.NewZapLoggerAdapter(logger.Default())
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    temporalLogger,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

	// Create Temporal worker
	temporalWorker := worker.New(
		temporalClient,
		cfg.Temporal.PurchaseTaskQueue,
		worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Temporal.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Temporal.WorkerActivitiesPerSecond,
			MaxConcurrentActivityTaskPollers:   cfg.Temporal.MaxConcurrentActivityTaskPollers,
			Interceptors:                       []interceptor.WorkerInterceptor{temporal.NewSentryActivityInterceptor()},
		})
	logger.InfoCtx(ctx, "Created Temporal worker", zap.String("task_queue", cfg.Temporal.PurchaseTaskQueue))

	// Create worker core instance
	workerCore := workflows.NewWorkerCore(executor)

	// Register workflows
	temporalWorker.RegisterWorkflow(workerCore.ProcessPurchaseOrder)

	// Register activities
	temporalWorker.RegisterActivity(executor.ResolveOrderWallet)
	temporalWorker.RegisterActivity(executor.FulfillOrderLine)

	// Start worker
	if err := temporalWorker.Start(); err != nil {
		logger.FatalCtx(ctx, "Failed to start worker", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Worker started and listening for tasks")

	// Start the order bridge: NATS order events -> purchase workflows
	orderBridge, err := bridge.NewBridge(bridge.Config{
		URL:               cfg.NATS.URL,
		StreamName:        cfg.NATS.StreamName,
		ConsumerName:      cfg.NATS.ConsumerName,
		MaxReconnects:     cfg.NATS.MaxReconnects,
		ReconnectWait:     cfg.NATS.ReconnectWait,
		ConnectionName:    cfg.NATS.ConnectionName,
		AckWaitTimeout:    cfg.NATS.AckWait,
		MaxDeliver:        cfg.NATS.MaxDeliver,
		TemporalTaskQueue: cfg.Temporal.PurchaseTaskQueue,
	}, adapter.NewNatsJetStream(), temporalClient, jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create order bridge", zap.Error(err))
	}
	defer orderBridge.Close()

	errCh := make(chan error, 1)
	go func() {
		if err := orderBridge.Run(ctx); err != nil {
			errCh <- err
		}
	}()
	logger.InfoCtx(ctx, "Order bridge started", zap.String("stream", cfg.NATS.StreamName))

	// Wait for interrupt signal or bridge error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "bridge"))
	}

	cancel()

	logger.Info("Shutting down worker...")
	temporalWorker.Stop()
	logger.Info("Worker stopped")
}
