// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as the document API, caching, HTTP communication and logging.
//
// The infrastructure package is organized by technical concern:
//
// - blockstore: Document API client and wire decoding
// - cache/memory: In-memory cache implementation using go-cache
// - cache/redis: Redis-based cache implementation
// - http/standard: Standard library HTTP client with retries and rate limiting
// - logger/logrus: Logrus logger with optional rotating files
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache(time.Hour)
//	err := cache.Set(ctx, "key", []byte("value"), 5*time.Minute)
//	value, err := cache.Get(ctx, "key")
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address: "localhost:6379",
//	})
//
// # Document API Client
//
// The client is layered on an HTTP client that carries the auth headers
// and the outbound rate limit:
//
//	httpClient := standard.NewStandardHTTPClientWithOptions(standard.Options{
//	    Timeout:           30 * time.Second,
//	    Headers:           blockstore.Headers(token, ""),
//	    RequestsPerSecond: 3,
//	    Burst:             3,
//	})
//	source := blockstore.NewClient("", httpClient, logger)
//	page, err := source.ListChildren(ctx, pageID, "", 100)
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger, err := logrus.New(cfg.Log)
//	logger.Info("Normalized document", map[string]interface{}{
//	    "document_id": id,
//	    "blocks":      len(doc.Blocks),
//	})
package infrastructure
