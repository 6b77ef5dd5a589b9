// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation, CORS, request logging and rate limiting

package api

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"blockpress-api/api/middleware"
	"blockpress-api/core/interfaces"
)

const (
	// Title is the API title published in the OpenAPI document
	Title = "Blockpress API"
	// Version is the API version published in the OpenAPI document
	Version = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger     interfaces.Logger
	RateLimit  int           // requests per window
	RateWindow time.Duration // rate limit window
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	return NewAPIWithMiddleware(APIConfig{})
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS must run first so preflight requests are never rate limited
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After", "X-RateLimit-Limit"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	config := huma.DefaultConfig(Title, Version)
	config.Info.Description = "Normalized documents, collection listings and form schemas from a block-based document store"

	// The OpenAPI spec is served at /openapi.json and the docs UI at /docs
	api := humachi.New(router, config)

	return api, router
}
