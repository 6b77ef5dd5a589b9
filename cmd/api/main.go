// ABOUTME: Main entry point for the Blockpress API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blockpress-api/api"
	"blockpress-api/api/handlers"
	logruslogger "blockpress-api/infrastructure/logger/logrus"
	"blockpress-api/pkg/bootstrap"
	"blockpress-api/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger, err := logruslogger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	logger.Info("Starting Blockpress API", map[string]interface{}{
		"port":        cfg.Server.Port,
		"cache_type":  cfg.Cache.Type,
		"max_depth":   cfg.Pipeline.MaxDepth,
		"concurrency": cfg.Pipeline.FetchConcurrency,
	})

	components := bootstrap.Build(cfg, logger)
	defer components.Close()

	// Create API with middleware
	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:     logger,
		RateLimit:  cfg.RateLimit.Requests,
		RateWindow: cfg.RateLimit.Window,
	})

	// Create and register handlers
	handlers.NewDocumentHandler(components.Documents).RegisterRoutes(humaAPI)
	handlers.NewCollectionHandler(components.Collections, cfg.Collections.FormsID).RegisterRoutes(humaAPI)
	handlers.NewMetadataHandler(components.Metadata).RegisterRoutes(humaAPI)

	checks := map[string]handlers.Pinger{}
	if components.Redis != nil {
		checks["cache"] = components.Redis
	}
	handlers.NewHealthHandler(api.Version, checks).RegisterRoutes(humaAPI)

	// Create HTTP server. Deep documents take several rate-limited round
	// trips, so the write timeout leaves room for them.
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	logger.Info("Server stopped", nil)
}
