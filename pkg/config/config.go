// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, source API, pipeline, cache and logging

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Source contains the external document API configuration
	Source SourceConfig

	// Pipeline contains fetch and normalization settings
	Pipeline PipelineConfig

	// Collections names the collections served by the listing endpoints
	Collections CollectionsConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Log contains logger configuration
	Log LogConfig

	// RateLimit contains inbound rate limiting configuration
	RateLimit RateLimitConfig

	// Enrichment toggles listing enrichment
	Enrichment EnrichmentConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string
}

// SourceConfig holds the document API connection settings
type SourceConfig struct {
	BaseURL           string
	Token             string
	APIVersion        string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
}

// PipelineConfig holds block tree fetch and normalization settings
type PipelineConfig struct {
	MaxDepth         int
	FetchConcurrency int
	PageSize         int
	ViewerRoute      string
	// DocumentTTL is how long normalized documents are cached; zero disables caching
	DocumentTTL time.Duration
}

// CollectionsConfig holds the default collection ids
type CollectionsConfig struct {
	ContentID string
	EventsID  string
	FormsID   string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string
	// File enables rotating file output when set
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// RateLimitConfig holds per-client inbound rate limiting
type RateLimitConfig struct {
	// Requests allowed per client within Window; zero disables limiting
	Requests int
	Window   time.Duration
}

// EnrichmentConfig holds listing enrichment toggles
type EnrichmentConfig struct {
	Listings     bool
	LinkPreviews bool
	CoverColors  bool
}

// LoadFromEnv loads configuration from environment variables. Variables
// from ENV_FILE (default .env) are applied first without overriding the
// environment; a missing file is ignored.
func LoadFromEnv() (*Config, error) {
	envFile := getEnvOrDefault("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8000"),
		},
		Source: SourceConfig{
			BaseURL:           getEnvOrDefault("SOURCE_BASE_URL", "https://api.notion.com"),
			Token:             getEnvOrDefault("SOURCE_TOKEN", ""),
			APIVersion:        getEnvOrDefault("SOURCE_API_VERSION", "2022-06-28"),
			Timeout:           time.Duration(getEnvAsIntOrDefault("SOURCE_TIMEOUT_SECONDS", 30)) * time.Second,
			RequestsPerSecond: getEnvAsFloatOrDefault("SOURCE_REQUESTS_PER_SECOND", 3),
			Burst:             getEnvAsIntOrDefault("SOURCE_BURST", 3),
			MaxRetries:        getEnvAsIntOrDefault("SOURCE_MAX_RETRIES", 2),
		},
		Pipeline: PipelineConfig{
			MaxDepth:         getEnvAsIntOrDefault("MAX_DEPTH", 16),
			FetchConcurrency: getEnvAsIntOrDefault("FETCH_CONCURRENCY", 4),
			PageSize:         getEnvAsIntOrDefault("PAGE_SIZE", 100),
			ViewerRoute:      getEnvOrDefault("VIEWER_ROUTE", "/viewer"),
			DocumentTTL:      time.Duration(getEnvAsIntOrDefault("DOCUMENT_TTL_SECONDS", 300)) * time.Second,
		},
		Collections: CollectionsConfig{
			ContentID: getEnvOrDefault("CONTENT_COLLECTION_ID", ""),
			EventsID:  getEnvOrDefault("EVENTS_COLLECTION_ID", ""),
			FormsID:   getEnvOrDefault("FORMS_COLLECTION_ID", ""),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 3600),
			},
		},
		Log: LogConfig{
			Level:      strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
			Format:     strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json")),
			File:       getEnvOrDefault("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsIntOrDefault("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvAsIntOrDefault("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvAsIntOrDefault("LOG_MAX_AGE_DAYS", 28),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsIntOrDefault("RATE_LIMIT", 120),
			Window:   time.Duration(getEnvAsIntOrDefault("RATE_WINDOW_SECONDS", 60)) * time.Second,
		},
		Enrichment: EnrichmentConfig{
			Listings:     getEnvAsBoolOrDefault("ENRICH_LISTINGS", true),
			LinkPreviews: getEnvAsBoolOrDefault("ENRICH_LINK_PREVIEWS", true),
			CoverColors:  getEnvAsBoolOrDefault("ENRICH_COVER_COLORS", true),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Source.BaseURL == "" {
		return errors.New("source base URL cannot be empty")
	}

	if c.Source.Timeout <= 0 {
		return errors.New("source timeout must be positive")
	}

	if c.Pipeline.MaxDepth < 1 {
		return errors.New("max depth must be at least 1")
	}

	if c.Pipeline.FetchConcurrency < 1 {
		return errors.New("fetch concurrency must be at least 1")
	}

	if c.Pipeline.PageSize < 1 || c.Pipeline.PageSize > 100 {
		return errors.New("page size must be between 1 and 100")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return errors.New("log format must be 'json' or 'text'")
	}

	if c.RateLimit.Requests > 0 && c.RateLimit.Window <= 0 {
		return errors.New("rate window must be positive when rate limiting is enabled")
	}

	return nil
}
