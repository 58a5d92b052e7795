package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/config"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/confluence"
	amqpdelivery "github.com/Manoranjanmaharana1/SherlockSync/internal/delivery/amqp"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/generator"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/httpretry"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/notify"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/pool"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/repository/postgres"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("Starting SherlockSync Worker")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.Generator.Endpoint == "" {
		logger.Fatal("GENERATOR_ENDPOINT is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to PostgreSQL (sync history)
	dbPool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()
	if err := dbPool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping PostgreSQL", zap.Error(err))
	}
	logger.Info("Connected to PostgreSQL")

	// Initialize pipeline collaborators
	history := postgres.NewSyncHistory(dbPool)
	retry := httpretry.New("generator", nil, httpretry.Policy{
		MaxAttempts:       cfg.Generator.MaxAttempts,
		Delay:             cfg.Generator.RetryDelay,
		RetryableStatuses: cfg.Generator.RetryableStatusCodes,
	}, logger)
	gen := generator.NewClient(generator.Config{
		Endpoint: cfg.Generator.Endpoint,
		APIKey:   cfg.Generator.APIKey,
	}, retry, logger)
	pages := confluence.NewClient(nil, logger)
	reporter := usecase.NewReporter(notify.NewSender(nil, logger), logger)

	processUC := usecase.NewProcessSyncUsecase(gen, pages, reporter, history, logger)

	// Create buffered job channel
	jobsChan := make(chan *domain.JobMessage, cfg.Worker.PoolSize*2)

	// Initialize AMQP consumer
	consumer, err := amqpdelivery.NewConsumer(cfg.RabbitMQ.URL, jobsChan, logger)
	if err != nil {
		logger.Fatal("Failed to initialize AMQP consumer", zap.Error(err))
	}
	defer consumer.Close()
	logger.Info("Connected to RabbitMQ")

	// Start worker pool
	workerPool := pool.NewWorkerPool(cfg.Worker.PoolSize, jobsChan, processUC, logger)
	workerPool.Start(ctx)

	// Start AMQP consumer in a goroutine
	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error("AMQP consumer error", zap.Error(err))
			cancel()
		}
	}()

	// Start Prometheus metrics server
	go func() {
		metricsAddr := fmt.Sprintf(":%d", cfg.Worker.MetricsPort)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info("Metrics server listening", zap.String("addr", metricsAddr))
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			logger.Error("Metrics server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	cancel()

	// Wait for workers to finish in-flight jobs
	workerPool.Stop()

	logger.Info("Worker stopped")
}
