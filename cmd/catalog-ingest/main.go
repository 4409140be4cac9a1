package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/igordesouzasouza/catalog-ingest/internal/config"
	"github.com/igordesouzasouza/catalog-ingest/internal/http"
	"github.com/igordesouzasouza/catalog-ingest/internal/log"
	"github.com/igordesouzasouza/catalog-ingest/internal/service"
	"github.com/igordesouzasouza/catalog-ingest/internal/storage/catalog"
	"github.com/igordesouzasouza/catalog-ingest/internal/storage/media"
	"github.com/igordesouzasouza/catalog-ingest/internal/telemetry"
	"github.com/igordesouzasouza/catalog-ingest/pkg/cmdutil"
	"github.com/igordesouzasouza/catalog-ingest/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running catalog-ingest: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log     config.Log
		HTTP    config.HTTP
		Otel    config.Otel
		Catalog config.Catalog
		Media   config.Media
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	uploader, err := media.NewCloudinaryUploader(cfg.Media)
	if err != nil {
		return fmt.Errorf("error creating media uploader: %w", err)
	}

	catalogWriter, err := catalog.NewStripeWriter(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("error creating catalog writer: %w", err)
	}

	productService := service.NewProductService(
		logger,
		validator.NewDefaultValidator(),
		uploader,
		catalogWriter,
		cfg.Catalog.Currency,
	)

	interruptChan := cmdutil.InterruptChan()

	svc := http.New(cfg.HTTP, logger, productService)
	cleanup, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}

	logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

	<-interruptChan

	logger.InfoContext(ctx, "http service is shutting down")
	if err := cleanup(ctx); err != nil {
		logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
	}

	logger.InfoContext(ctx, "http service is stopped")

	return nil
}
