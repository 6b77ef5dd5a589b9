// ABOUTME: Builds the shared service graph from configuration
// ABOUTME: Used by both the HTTP server and the MCP server entry points

// Package bootstrap wires cache, source client and services from a Config.
package bootstrap

import (
	"time"

	"blockpress-api/core/blocktree"
	"blockpress-api/core/collection"
	coreconfig "blockpress-api/core/config"
	"blockpress-api/core/document"
	"blockpress-api/core/interfaces"
	"blockpress-api/core/projector"
	"blockpress-api/core/services"
	"blockpress-api/infrastructure/blockstore"
	"blockpress-api/infrastructure/cache/memory"
	"blockpress-api/infrastructure/cache/redis"
	stdhttp "blockpress-api/infrastructure/http/standard"
	"blockpress-api/pkg/config"
)

// enrichmentTimeout bounds link preview and image requests
const enrichmentTimeout = 15 * time.Second

// Components is the wired service graph
type Components struct {
	Deps        interfaces.Dependencies
	Documents   *document.Service
	Collections *collection.Service
	Metadata    *services.MetadataService
	// Redis is set when the shared cache is in use
	Redis *redis.RedisCache
}

// Build creates the service graph. A Redis cache that cannot be reached
// falls back to the in-process cache.
func Build(cfg *config.Config, logger interfaces.Logger) *Components {
	c := &Components{}

	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = newMemoryCache(cfg)
		} else {
			cache = redisCache
			c.Redis = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	default:
		cache = newMemoryCache(cfg)
		logger.Info("Using memory cache", nil)
	}

	sourceHTTP := stdhttp.NewStandardHTTPClientWithOptions(stdhttp.Options{
		Timeout:           cfg.Source.Timeout,
		Headers:           blockstore.Headers(cfg.Source.Token, cfg.Source.APIVersion),
		RequestsPerSecond: cfg.Source.RequestsPerSecond,
		Burst:             cfg.Source.Burst,
		MaxRetries:        cfg.Source.MaxRetries,
		Logger:            logger,
	})
	source := blockstore.NewClient(cfg.Source.BaseURL, sourceHTTP, logger)

	c.Deps = interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: stdhttp.NewStandardHTTPClient(enrichmentTimeout),
		Logger:     logger,
		Source:     source,
	}

	ttl := cfg.Pipeline.DocumentTTL
	if ttl <= 0 {
		ttl = -1
	}
	c.Documents = document.NewService(c.Deps, document.Options{
		ViewerRoute: cfg.Pipeline.ViewerRoute,
		TTL:         ttl,
		Fetch: blocktree.Options{
			MaxDepth:    cfg.Pipeline.MaxDepth,
			Concurrency: cfg.Pipeline.FetchConcurrency,
			PageSize:    cfg.Pipeline.PageSize,
		},
	})

	steps := coreconfig.NewEnrichmentConfig(
		coreconfig.WithLinkPreviews(cfg.Enrichment.LinkPreviews),
		coreconfig.WithCoverColors(cfg.Enrichment.CoverColors),
	)
	c.Collections = collection.NewService(
		c.Deps,
		projector.NewSchemaCache(source, logger),
		services.NewContentEnrichmentService(c.Deps, 0),
		collection.Options{
			ContentCollectionID: cfg.Collections.ContentID,
			EventsCollectionID:  cfg.Collections.EventsID,
			EnrichListings:      cfg.Enrichment.Listings,
			Enrichment:          &steps,
		},
	)
	c.Metadata = services.NewMetadataService(c.Deps)

	return c
}

// Close releases the shared cache connection
func (c *Components) Close() error {
	if c.Redis != nil {
		return c.Redis.Close()
	}
	return nil
}

func newMemoryCache(cfg *config.Config) *memory.MemoryCache {
	return memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second)
}
