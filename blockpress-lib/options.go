// ABOUTME: Configuration options for the Blockpress library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package blockpress

import (
	"time"

	"blockpress-api/core/interfaces"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithToken sets the document API integration token
func WithToken(token string) Option {
	return func(c *Config) error {
		c.Token = token
		return nil
	}
}

// WithBaseURL points the client at a different document API endpoint
func WithBaseURL(baseURL string) Option {
	return func(c *Config) error {
		c.BaseURL = baseURL
		return nil
	}
}

// WithSource replaces the document API client entirely
func WithSource(source interfaces.BlockSource) Option {
	return func(c *Config) error {
		c.Source = source
		return nil
	}
}

// WithCache sets a custom cache implementation
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client used for enrichment and, when no
// source is given, for the document API
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithQuietMode configures the client to suppress all log output
func WithQuietMode() Option {
	return func(c *Config) error {
		c.Logger = interfaces.NopLogger{}
		return nil
	}
}

// WithViewerRoute sets the route internal links are rewritten to
func WithViewerRoute(route string) Option {
	return func(c *Config) error {
		c.ViewerRoute = route
		return nil
	}
}

// WithFetchLimits bounds block tree traversal
func WithFetchLimits(maxDepth, concurrency int) Option {
	return func(c *Config) error {
		if maxDepth < 1 || concurrency < 1 {
			return NewError(ErrorTypeConfiguration, "fetch limits must be positive").
				WithContext("max_depth", maxDepth).
				WithContext("concurrency", concurrency)
		}
		c.MaxDepth = maxDepth
		c.Concurrency = concurrency
		return nil
	}
}

// WithDocumentTTL sets how long normalized documents are cached; negative
// disables caching
func WithDocumentTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		c.DocumentTTL = ttl
		return nil
	}
}

// WithCollections sets the default content and events collections
func WithCollections(contentID, eventsID string) Option {
	return func(c *Config) error {
		c.ContentCollectionID = contentID
		c.EventsCollectionID = eventsID
		return nil
	}
}

// WithEnrichment enables or disables link preview and cover color
// enrichment of event listings
func WithEnrichment(enabled bool) Option {
	return func(c *Config) error {
		c.EnrichListings = enabled
		return nil
	}
}

// ListOption is a functional option for listing calls
type ListOption func(*listOptions)

type listOptions struct {
	statuses []string
	category string
	cursor   string
	pageSize int
}

// WithStatus restricts a listing to the given status values
func WithStatus(statuses ...string) ListOption {
	return func(o *listOptions) {
		o.statuses = append(o.statuses, statuses...)
	}
}

// WithCategory restricts a listing to one category
func WithCategory(category string) ListOption {
	return func(o *listOptions) {
		o.category = category
	}
}

// WithCursor continues a listing from a previous page
func WithCursor(cursor string) ListOption {
	return func(o *listOptions) {
		o.cursor = cursor
	}
}

// WithPageSize sets the listing page size
func WithPageSize(size int) ListOption {
	return func(o *listOptions) {
		o.pageSize = size
	}
}
