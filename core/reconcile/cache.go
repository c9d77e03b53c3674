package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ReconcileCache holds the indices of one processing date.
type ReconcileCache struct {
	// Landing, Staging and Warehouse are the records of each store by entity key.
	Landing   map[string]Record
	Staging   map[string]Record
	Warehouse map[string]Record

	// Built is the timestamp when this cache was built.
	Built time.Time

	// TTL is the time-to-live for this cache.
	TTL time.Duration
}

// IsExpired returns true if this cache has expired based on its TTL.
func (c *ReconcileCache) IsExpired() bool {
	if c.TTL == 0 {
		return true // No caching
	}
	return time.Since(c.Built) > c.TTL
}

// cacheStore holds all reconcile caches keyed by spec cache key.
type cacheStore struct {
	mu     sync.RWMutex
	caches map[string]*ReconcileCache
	sf     singleflight.Group
}

// globalCacheStore is the singleton cache store for all reconcile operations.
var globalCacheStore = &cacheStore{
	caches: make(map[string]*ReconcileCache),
}

// BuildCache loads the three indices of date concurrently.
// This function does NOT store the cache; use GetOrBuildCache for that.
func BuildCache(ctx context.Context, spec *Spec, date string) (*ReconcileCache, error) {
	cache := &ReconcileCache{Built: time.Now(), TTL: spec.CacheTTL}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cache.Landing, err = spec.Landing.Load(gctx, date)
		return err
	})
	g.Go(func() (err error) {
		cache.Staging, err = spec.Staging.Load(gctx, date)
		return err
	})
	g.Go(func() (err error) {
		cache.Warehouse, err = spec.Warehouse.Load(gctx, date)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return cache, nil
}

// GetOrBuildCache retrieves the cache of date for the given spec from the store,
// or builds a new one if it doesn't exist or has expired.
// Uses singleflight to prevent cache stampedes.
func GetOrBuildCache(ctx context.Context, spec *Spec, date string) (*ReconcileCache, error) {
	cacheKey := spec.CacheKey(date)

	// Fast path: check if cache exists and is fresh
	globalCacheStore.mu.RLock()
	cache, exists := globalCacheStore.caches[cacheKey]
	globalCacheStore.mu.RUnlock()

	if exists && !cache.IsExpired() {
		return cache, nil
	}

	result, err, _ := globalCacheStore.sf.Do(cacheKey, func() (any, error) {
		globalCacheStore.mu.RLock()
		cache, exists := globalCacheStore.caches[cacheKey]
		globalCacheStore.mu.RUnlock()

		if exists && !cache.IsExpired() {
			return cache, nil
		}

		newCache, err := BuildCache(ctx, spec, date)
		if err != nil {
			return nil, err
		}

		if newCache.TTL > 0 {
			globalCacheStore.mu.Lock()
			globalCacheStore.caches[cacheKey] = newCache
			globalCacheStore.mu.Unlock()
		}

		return newCache, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*ReconcileCache), nil
}

// InvalidateCache removes the cache of date for the given spec from the store.
// Repairs call it so the next reconciliation sees the new state.
func InvalidateCache(spec *Spec, date string) {
	cacheKey := spec.CacheKey(date)
	globalCacheStore.mu.Lock()
	delete(globalCacheStore.caches, cacheKey)
	globalCacheStore.mu.Unlock()
}
