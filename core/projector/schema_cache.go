package projector

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"blockpress-api/core/domain"
	"blockpress-api/core/ids"
	"blockpress-api/core/interfaces"
)

// loadTimeout bounds a shared schema load, which outlives the callers'
// cancellation
const loadTimeout = 30 * time.Second

// SchemaCache memoizes collection schemas by collection id. Entries are
// loaded on first use and never evicted; concurrent misses for the same
// collection share one load.
type SchemaCache struct {
	source  interfaces.BlockSource
	logger  interfaces.Logger
	entries sync.Map // compact id -> *domain.CollectionMeta
	loads   singleflight.Group
}

// NewSchemaCache creates a cache that loads schemas from source
func NewSchemaCache(source interfaces.BlockSource, logger interfaces.Logger) *SchemaCache {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &SchemaCache{source: source, logger: logger}
}

// Get returns the collection's metadata, loading it on a miss. Failed loads
// are not cached.
func (c *SchemaCache) Get(ctx context.Context, collectionID string) (*domain.CollectionMeta, error) {
	canonical, err := ids.Normalize(collectionID)
	if err != nil {
		return nil, err
	}
	key := ids.Compact(canonical)

	if meta, ok := c.entries.Load(key); ok {
		return meta.(*domain.CollectionMeta), nil
	}

	// The shared load is detached from any one caller; each caller stops
	// waiting on its own context.
	results := c.loads.DoChan(key, func() (interface{}, error) {
		if meta, ok := c.entries.Load(key); ok {
			return meta, nil
		}
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		meta, err := c.source.GetCollection(loadCtx, canonical)
		if err != nil {
			return nil, err
		}
		actual, _ := c.entries.LoadOrStore(key, meta)
		return actual, nil
	})

	var res singleflight.Result
	select {
	case res = <-results:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	v, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		c.logger.Error("Failed to load collection schema", map[string]interface{}{
			"collection_id": key,
			"error":         err.Error(),
		})
		return nil, err
	}

	c.logger.Debug("Loaded collection schema", map[string]interface{}{
		"collection_id": key,
		"shared":        shared,
	})
	return v.(*domain.CollectionMeta), nil
}

// PropertyTypes returns the collection's property name to type lookup
func (c *SchemaCache) PropertyTypes(ctx context.Context, collectionID string) (map[string]string, error) {
	meta, err := c.Get(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	types := make(map[string]string, len(meta.Properties))
	for name, schema := range meta.Properties {
		types[name] = schema.Type
	}
	return types, nil
}
