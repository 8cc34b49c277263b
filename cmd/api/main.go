package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barcode-scanner/internal/config"
	"barcode-scanner/internal/decoder"
	"barcode-scanner/internal/handler"
	"barcode-scanner/internal/resolver"
	"barcode-scanner/internal/router"
	"barcode-scanner/internal/scanner"
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
	logger.Info().Msg("starting barcode-scanner API server")

	// Decode capability and per-frame decode engine
	engine := decoder.NewEngine(decoder.NewZxingDecoder(), logger)

	// Catalog fallback chain: food catalog first, generic UPC catalog second
	client := &http.Client{Timeout: cfg.Resolver.Timeout()}
	chain := resolver.NewChain([]resolver.Source{
		resolver.NewOpenFoodFacts(cfg.Resolver.OpenFoodFactsURL, client),
		resolver.NewUPCItemDB(cfg.Resolver.UPCItemDBURL, client),
	}, cfg.Resolver.Timeout(), logger)

	// Session registry plus the default session for the single-camera flow
	registry := scanner.NewRegistry(engine, chain, cfg.Scanner.Cooldown(), logger)
	defaultSession := registry.Create()

	// Initialize HTTP handlers
	scanHandler := handler.NewScanHandler(registry, defaultSession, logger)
	sessionHandler := handler.NewSessionHandler(registry, defaultSession, logger)

	// Initialize router
	mux := router.New(scanHandler, sessionHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server. The write timeout has to cover the worst-case
	// lookup, which is every catalog in the chain timing out in sequence.
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
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

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
