package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/p2pdex/bookside/config"
	redisbackend "github.com/p2pdex/bookside/pkg/backend/redis"
	"github.com/p2pdex/bookside/pkg/book"
	"github.com/p2pdex/bookside/pkg/db/queue"
	"github.com/p2pdex/bookside/pkg/logging"
	"github.com/p2pdex/bookside/pkg/messaging/kafka"
	"github.com/p2pdex/bookside/pkg/otel"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup logging
	logging.Setup(logging.Config{
		Level:  cfg.Server.LogLevel,
		Pretty: cfg.Server.LogFormat == "pretty",
	})
	logger := zlog.Logger

	ctx, cancel := context.WithCancel(logger.WithContext(context.Background()))
	defer cancel()

	// Initialize OpenTelemetry
	cleanup, err := otel.Init(otel.Config{
		ServiceVersion:   "1.0.0",
		Endpoint:         cfg.Otel.Endpoint,
		CollectorEnabled: cfg.Otel.CollectorEnabled,
	})
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer cleanup()

	// Kafka sender for book events
	sender, err := queue.NewQueueMessageSender()
	if err != nil {
		logger.Warn().Err(err).Msg("Kafka unavailable, events will not be published")
		sender = nil
	} else {
		defer sender.Close()
	}

	// Optional consumer for developer purposes: pretty prints the events
	// flowing through the queue.
	if consumer, err := kafka.SetupConsumer(ctx, logger); err == nil && consumer != nil {
		defer consumer.Close()
	}

	// Snapshot archive
	archive := redisbackend.NewSnapshotStore(redisbackend.GetRedisClient(), "bookside", nil)

	var manager *book.Manager
	if sender != nil {
		manager = book.NewManager(sender, archive)
	} else {
		manager = book.NewManager(nil, archive)
	}

	if _, err := manager.CreateBook("default"); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create default book")
	}
	logger.Info().Str("name", "default").Msg("Created book")

	// Start the expiry sweeper
	sweeper := book.NewSweeper(book.LoadSweeperConfig(), manager.Books)
	go sweeper.Run(ctx)

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")
	cancel()

	// Archive final snapshots before exit
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := manager.ArchiveAll(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Failed to archive snapshots on shutdown")
	}

	logger.Info().Msg("Shutdown complete")
}
