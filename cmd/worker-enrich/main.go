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

	"github.com/leadforge/contact-cache/internal/adapter"
	"github.com/leadforge/contact-cache/internal/bootstrap"
	"github.com/leadforge/contact-cache/internal/config"
	"github.com/leadforge/contact-cache/internal/logger"
	temporal "github.com/leadforge/contact-cache/internal/providers/temporal"
	"github.com/leadforge/contact-cache/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadWorkerEnrichConfig(*configFile, *envPath)
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
			"service": "worker-enrich",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Worker Enrich")

	// Wire the enrichment stack
	enrichment, err := bootstrap.NewEnrichment(ctx, bootstrap.Config{
		Database:         cfg.Database,
		NATS:             cfg.NATS,
		Redis:            cfg.Redis,
		RateLimit:        cfg.RateLimit,
		Providers:        cfg.Providers,
		Pricing:          cfg.Pricing,
		BatchConcurrency: cfg.Worker.WorkerPoolSize,
	}, nil)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize enrichment", zap.Error(err))
	}
	defer enrichment.Close()

	// Initialize executor for activities
	executor := workflows.NewExecutor(enrichment.Enricher, adapter.NewActivity())

	// Connect to Temporal with logger integration
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()

	logger.InfoCtx(ctx, "Connected to Temporal",
		zap.String("host_port", cfg.Temporal.HostPort),
		zap.String("namespace", cfg.Temporal.Namespace),
	)

	// Create Temporal worker with the Sentry interceptor
	temporalWorker := worker.New(temporalClient,
		cfg.Temporal.EnrichTaskQueue,
		worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Temporal.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Temporal.WorkerActivitiesPerSecond,
			MaxConcurrentActivityTaskPollers:   cfg.Temporal.MaxConcurrentActivityTaskPollers,
			Interceptors: []interceptor.WorkerInterceptor{
				temporal.NewSentryActivityInterceptor(),
			},
		})

	workerEnrich := workflows.NewWorkerEnrich(executor, workflows.WorkerEnrichConfig{
		ChunkSize:         cfg.ChunkSize,
		MaxParallelChunks: cfg.MaxParallelChunks,
	})

	// Register workflows
	temporalWorker.RegisterWorkflow(workerEnrich.EnrichImportJob)
	logger.InfoCtx(ctx, "Registered workflows")

	// Register activities
	temporalWorker.RegisterActivity(executor.EnrichContacts)
	logger.InfoCtx(ctx, "Registered activities")

	err = temporalWorker.Start()
	if err != nil {
		logger.FatalCtx(ctx, "Failed to start Temporal worker", zap.Error(err))
	}

	logger.InfoCtx(ctx, "Worker Enrich started successfully",
		zap.String("task_queue", cfg.Temporal.EnrichTaskQueue),
		zap.Int("chunk_size", cfg.ChunkSize),
	)

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.InfoCtx(ctx, "Shutting down Worker Enrich...")

	temporalWorker.Stop()

	logger.InfoCtx(ctx, "Worker Enrich stopped")
}
