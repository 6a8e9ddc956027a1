package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cocodile/internal/accesscode"
	"cocodile/internal/cart"
	"cocodile/internal/config"
	"cocodile/internal/database"
	"cocodile/internal/handler"
	"cocodile/internal/metrics"
	"cocodile/internal/repository"
	"cocodile/internal/router"
	"cocodile/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting cocodile retailer API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	invoiceRepo := repository.NewInvoiceRepository(pool, logger)
	wholesalerRepo := repository.NewWholesalerRepository(pool, logger)
	cartStore := repository.NewCartRepository(pool, logger)

	// Initialize access-code registry loader with S3 and local fallback
	fileLoader := accesscode.NewFileLoader(logger)
	var s3Loader accesscode.Loader

	if cfg.S3.Enabled {
		loader, err := accesscode.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = loader
		}
	} else {
		logger.Info().Msg("using local file system for access-code registry (S3 disabled)")
	}

	registryLoader := accesscode.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)

	// Initialize access-code validator
	validatorConfig := &accesscode.ValidatorConfig{
		FilePaths:     cfg.AccessCodes.FilePaths,
		MinMatchCount: cfg.AccessCodes.MinMatchCount,
	}
	validator, err := accesscode.NewValidator(ctx, validatorConfig, registryLoader, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize access-code validator: %w", err)
	}
	defer validator.Close()

	// Initialize metrics
	cartMetrics := metrics.NewCartMetrics()

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, invoiceRepo, logger)
	invoiceService := service.NewInvoiceService(invoiceRepo, logger)
	wholesalerService := service.NewWholesalerService(wholesalerRepo, validator, logger)

	estimator := cart.NewLeadTimeEstimator(cfg.Stock.RestockLeadDays, cfg.Stock.ShipmentLagDays)
	cartService := cart.NewService(
		cart.ServiceConfig{
			Pricing: cart.Pricing{
				VATRate:               cfg.Pricing.VATRate,
				FreeShippingThreshold: cfg.Pricing.FreeShippingThreshold,
				ShippingFee:           cfg.Pricing.ShippingFee,
			},
			ConfirmationDelay: cfg.Checkout.ConfirmationDelay,
		},
		cartStore,
		productService,
		orderService,
		estimator,
		cartMetrics,
		logger,
	)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, logger)
	wholesalerHandler := handler.NewWholesalerHandler(wholesalerService, logger)

	// Initialize router
	mux := router.New(productHandler, cartHandler, orderHandler, invoiceHandler, wholesalerHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
