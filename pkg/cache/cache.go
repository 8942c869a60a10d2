package cache

import (
	"sync"
	"time"
)

// InMemoryCache is a TTL map cache safe for concurrent use.
type InMemoryCache[K comparable, V any] struct {
	items      map[K]*cacheItem[V]
	mu         sync.RWMutex
	defaultTTL time.Duration
}

type cacheItem[V any] struct {
	value     V
	expiresAt time.Time
}

// NewInMemoryCache creates a cache with the given default TTL.
func NewInMemoryCache[K comparable, V any](defaultTTL time.Duration) *InMemoryCache[K, V] {
	return &InMemoryCache[K, V]{
		items:      make(map[K]*cacheItem[V]),
		defaultTTL: defaultTTL,
	}
}

// Get returns the cached value if present and not expired.
func (c *InMemoryCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[key]
	if !ok || time.Now().After(item.expiresAt) {
		var zero V
		return zero, false
	}
	return item.value, true
}

// Set stores a value. ttl == 0 uses the default TTL.
func (c *InMemoryCache[K, V]) Set(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl == 0 {
		ttl = c.defaultTTL
	}
	c.items[key] = &cacheItem[V]{value: value, expiresAt: time.Now().Add(ttl)}
}

// Delete removes a key.
func (c *InMemoryCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear drops everything.
func (c *InMemoryCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*cacheItem[V])
}

// PriceCache caches market prices keyed by token id. Prices stay in their
// wire form (decimal strings) so a cache hit returns exactly what the
// exchange last said.
type PriceCache struct {
	cache *InMemoryCache[string, string]
}

// NewPriceCache creates a price cache with the given TTL.
func NewPriceCache(ttl time.Duration) *PriceCache {
	return &PriceCache{cache: NewInMemoryCache[string, string](ttl)}
}

// Get returns the cached price for a token if present and not expired.
func (pc *PriceCache) Get(tokenID string) (string, bool) {
	return pc.cache.Get(tokenID)
}

// Set stores a price under the default TTL.
func (pc *PriceCache) Set(tokenID, price string) {
	pc.cache.Set(tokenID, price, 0)
}

// BalanceCache holds a single numeric balance with its capture time.
// Expired entries are only replaced by a refresh; LastKnown keeps serving the
// stale value so degraded paths can fall back to it.
type BalanceCache struct {
	mu       sync.Mutex
	value    float64
	setAt    time.Time
	ttl      time.Duration
}

// NewBalanceCache creates a balance cache with the given TTL.
func NewBalanceCache(ttl time.Duration) *BalanceCache {
	return &BalanceCache{ttl: ttl}
}

// Get returns the balance if the TTL window has not elapsed.
func (b *BalanceCache) Get() (float64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.setAt.IsZero() || time.Since(b.setAt) >= b.ttl {
		return 0, false
	}
	return b.value, true
}

// Set refreshes the value and its capture timestamp.
func (b *BalanceCache) Set(value float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = value
	b.setAt = time.Now()
}

// LastKnown returns the most recent value regardless of expiry.
func (b *BalanceCache) LastKnown() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Clear forgets the cached value.
func (b *BalanceCache) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = 0
	b.setAt = time.Time{}
}
