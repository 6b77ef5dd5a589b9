// ABOUTME: In-memory cache implementation backed by patrickmn/go-cache
// ABOUTME: Stores byte values with per-entry TTL and periodic janitor cleanup

package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"blockpress-api/core/interfaces"
)

const defaultCleanupInterval = 10 * time.Minute

// MemoryCache implements the Cache interface using in-memory storage
type MemoryCache struct {
	items *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache instance. A zero TTL passed
// to Set uses defaultExpiration; a non-positive defaultExpiration keeps
// such entries until deleted.
func NewMemoryCache(defaultExpiration time.Duration) *MemoryCache {
	if defaultExpiration <= 0 {
		defaultExpiration = gocache.NoExpiration
	}
	return &MemoryCache{items: gocache.New(defaultExpiration, defaultCleanupInterval)}
}

// Get retrieves a copy of a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, ok := c.items.Get(key)
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}

	value := v.([]byte)
	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

// Set stores a copy of value with the given TTL. Negative TTLs never expire.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch {
	case ttl == 0:
		ttl = gocache.DefaultExpiration
	case ttl < 0:
		ttl = gocache.NoExpiration
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	c.items.Set(key, valueCopy, ttl)
	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.items.Delete(key)
	return nil
}

// Len returns the number of entries, including expired ones not yet purged
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}

// Purge removes expired entries immediately
func (c *MemoryCache) Purge() {
	c.items.DeleteExpired()
}
