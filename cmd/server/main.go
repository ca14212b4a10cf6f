package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/SharkFourSix/momo/internal/config"
	"github.com/SharkFourSix/momo/internal/eventbus"
	"github.com/SharkFourSix/momo/internal/extraction"
	"github.com/SharkFourSix/momo/internal/extractors"
	"github.com/SharkFourSix/momo/internal/handler"
	"github.com/SharkFourSix/momo/internal/server"
	"github.com/SharkFourSix/momo/internal/service"
	"github.com/SharkFourSix/momo/internal/storage"
	"github.com/SharkFourSix/momo/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Logging.Level)
	defer log.Sync()

	ctx := context.Background()
	log.Info(ctx, "Starting application")

	registry := extraction.NewRegistry(log).
		RegisterFactory(extractors.ProviderMpamba, extractors.NewMpambaExtractor)
	log.Info(ctx, "Extraction registry initialized")

	repo := storage.NewMemoryStore()
	log.Info(ctx, "Repository initialized")

	eventBusCfg := &eventbus.Config{
		ChannelBuffer: cfg.EventBus.ChannelBufferSize,
		MaxRetries:    cfg.Worker.MaxRetries,
	}
	bus := eventbus.New(log, eventBusCfg)
	log.Info(ctx, "Event bus initialized")

	extractionConsumer := eventbus.NewExtractionConsumer(
		registry,
		repo,
		log,
		cfg.Worker.PoolSize,
	)
	log.Info(ctx, "Extraction consumer initialized",
		"worker_count", cfg.Worker.PoolSize,
	)

	err := bus.Subscribe(eventbus.EventTypeExtraction, extractionConsumer)
	if err != nil {
		log.Fatal(ctx, "Failed to subscribe consumer",
			"error", err,
		)
	}

	err = bus.Start(ctx)
	if err != nil {
		log.Fatal(ctx, "Failed to start event bus",
			"error", err,
		)
	}

	extractionService := service.NewExtractionService(registry, repo, bus, log)
	log.Info(ctx, "Services initialized")

	extractHandler := handler.NewExtractHandler(extractionService, log)
	healthHandler := handler.NewHealthHandler()
	log.Info(ctx, "Handlers initialized")

	srv := server.New(cfg, log, extractHandler, healthHandler)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal(ctx, "Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	log.Info(ctx, "Application started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "HTTP server shutdown error",
			"error", err,
		)
	}

	if err := bus.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "Event bus shutdown error",
			"error", err,
		)
	}

	log.Info(ctx, "Application stopped gracefully")
}
