// ABOUTME: Main client for the Blockpress library providing document and collection access
// ABOUTME: Offers a clean API for using core functionality without HTTP server dependencies

package blockpress

import (
	"context"
	"time"

	"blockpress-api/core/blocktree"
	"blockpress-api/core/collection"
	"blockpress-api/core/document"
	"blockpress-api/core/domain"
	"blockpress-api/core/interfaces"
	"blockpress-api/core/projector"
	"blockpress-api/core/services"
	"blockpress-api/infrastructure/blockstore"
	"blockpress-api/infrastructure/cache/memory"
	"blockpress-api/infrastructure/http/standard"
)

// Client is the main entry point for the Blockpress library
type Client struct {
	documents   *document.Service
	collections *collection.Service
	deps        interfaces.Dependencies
	config      Config
}

// Config holds the configuration for the client
type Config struct {
	// Token authenticates against the document API
	Token string
	// BaseURL of the document API
	BaseURL string
	// Source overrides the document API client
	Source interfaces.BlockSource

	Cache      interfaces.Cache
	HTTPClient interfaces.HTTPClient
	Logger     interfaces.Logger

	ViewerRoute string
	MaxDepth    int
	Concurrency int
	DocumentTTL time.Duration

	ContentCollectionID string
	EventsCollectionID  string
	EnrichListings      bool
}

// NewClient creates a new Blockpress client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()
	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if config.Source == nil {
		if config.Token == "" {
			return nil, NewError(ErrorTypeConfiguration, "a token or a source is required")
		}
		sourceHTTP := standard.NewStandardHTTPClientWithOptions(standard.Options{
			Timeout:           30 * time.Second,
			Headers:           blockstore.Headers(config.Token, ""),
			RequestsPerSecond: 3,
			Burst:             3,
			Logger:            config.Logger,
		})
		config.Source = blockstore.NewClient(config.BaseURL, sourceHTTP, config.Logger)
	}

	deps := interfaces.Dependencies{
		Cache:      config.Cache,
		HTTPClient: config.HTTPClient,
		Logger:     config.Logger,
		Source:     config.Source,
	}

	var enricher interfaces.ContentEnrichmentService
	if config.EnrichListings {
		enricher = services.NewContentEnrichmentService(deps, 0)
	}

	return &Client{
		documents: document.NewService(deps, document.Options{
			ViewerRoute: config.ViewerRoute,
			TTL:         config.DocumentTTL,
			Fetch: blocktree.Options{
				MaxDepth:    config.MaxDepth,
				Concurrency: config.Concurrency,
			},
		}),
		collections: collection.NewService(deps, projector.NewSchemaCache(config.Source, config.Logger), enricher, collection.Options{
			ContentCollectionID: config.ContentCollectionID,
			EventsCollectionID:  config.EventsCollectionID,
			EnrichListings:      config.EnrichListings,
		}),
		deps:   deps,
		config: config,
	}, nil
}

func defaultConfig() Config {
	return Config{
		Cache:       memory.NewMemoryCache(time.Hour),
		HTTPClient:  standard.NewStandardHTTPClient(15 * time.Second),
		Logger:      interfaces.NopLogger{},
		MaxDepth:    blocktree.DefaultMaxDepth,
		Concurrency: blocktree.DefaultConcurrency,
	}
}

// GetDocument returns the normalized document for an id or URL
func (c *Client) GetDocument(ctx context.Context, ref string) (*domain.Document, error) {
	doc, err := c.documents.GetDocument(ctx, ref)
	if err != nil {
		return nil, wrapError(err)
	}
	return doc, nil
}

// ListContent returns a page of content entries. An empty collectionID
// uses the configured content collection.
func (c *Client) ListContent(ctx context.Context, collectionID string, opts ...ListOption) (*domain.ContentListing, error) {
	listing, err := c.collections.ListContent(ctx, listQuery(collectionID, opts))
	if err != nil {
		return nil, wrapError(err)
	}
	return listing, nil
}

// ListEvents returns a page of events. An empty collectionID uses the
// configured events collection.
func (c *Client) ListEvents(ctx context.Context, collectionID string, opts ...ListOption) (*domain.EventListing, error) {
	listing, err := c.collections.ListEvents(ctx, listQuery(collectionID, opts))
	if err != nil {
		return nil, wrapError(err)
	}
	return listing, nil
}

// GetFormSchema returns the ordered fields of a form-definition collection
func (c *Client) GetFormSchema(ctx context.Context, collectionID string) (*domain.FormSchema, error) {
	schema, err := c.collections.GetFormSchema(ctx, collectionID)
	if err != nil {
		return nil, wrapError(err)
	}
	return schema, nil
}

func listQuery(collectionID string, opts []ListOption) collection.ListQuery {
	var o listOptions
	for _, opt := range opts {
		opt(&o)
	}
	return collection.ListQuery{
		CollectionID: collectionID,
		Statuses:     o.statuses,
		Category:     o.category,
		Cursor:       o.cursor,
		PageSize:     o.pageSize,
	}
}
