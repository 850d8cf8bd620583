package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/roamio/globetrotter/internal/globetrotter"
)

const catalogCacheKey = "globetrotter:destinations"

// CachedCatalog keeps the destination list in Redis and falls back to the
// underlying source on a miss. Concurrent misses are collapsed into a single
// source fetch via singleflight.
type CachedCatalog struct {
	client *redis.Client
	source Catalog
	ttl    time.Duration
	sf     singleflight.Group
}

func NewCachedCatalog(client *redis.Client, source Catalog, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{client: client, source: source, ttl: ttl}
}

func (c *CachedCatalog) ListDestinations(ctx context.Context) ([]globetrotter.Destination, error) {
	if destinations, ok := c.fromCache(ctx); ok {
		return destinations, nil
	}

	result, err, _ := c.sf.Do(catalogCacheKey, func() (any, error) {
		// Re-check in case another goroutine filled the cache.
		if destinations, ok := c.fromCache(ctx); ok {
			return destinations, nil
		}

		destinations, err := c.source.ListDestinations(ctx)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(destinations)
		if err != nil {
			return nil, fmt.Errorf("encoding catalog for cache: %w", err)
		}
		// Serving the fresh catalog matters more than caching it; a failed
		// SET just means the next call loads from the source again.
		c.client.Set(ctx, catalogCacheKey, data, c.ttl)

		return destinations, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]globetrotter.Destination), nil
}

// Invalidate drops the cached catalog, forcing the next read through to the
// source. Called after admin catalog edits.
func (c *CachedCatalog) Invalidate(ctx context.Context) {
	c.client.Del(ctx, catalogCacheKey)
}

func (c *CachedCatalog) fromCache(ctx context.Context) ([]globetrotter.Destination, bool) {
	data, err := c.client.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var destinations []globetrotter.Destination
	if err := json.Unmarshal(data, &destinations); err != nil {
		return nil, false
	}
	return destinations, true
}
