package utils

import (
	"sync"
	"time"
)

// CacheEntry is one stored value together with the time it was cached.
type CacheEntry[T any] struct {
	Value    T
	CachedAt time.Time
}

// KeyedCache is an in-memory cache keyed by string with a fixed time-to-live.
// Entries are never evicted: an expired entry stays readable so callers can
// fall back to the stale value when a fresh lookup fails. Staleness is
// derived from the stored timestamp at read time, not stored.
type KeyedCache[T any] struct {
	ttl     time.Duration
	entries map[string]CacheEntry[T]
	mutex   sync.RWMutex
	now     func() time.Time
}

// NewKeyedCache initializes an empty cache with the given time-to-live.
func NewKeyedCache[T any](ttl time.Duration) *KeyedCache[T] {
	return &KeyedCache[T]{
		ttl:     ttl,
		entries: map[string]CacheEntry[T]{},
		now:     time.Now,
	}
}

// WithClock overrides the cache's clock. Intended for tests of staleness
// transitions.
func (c *KeyedCache[T]) WithClock(now func() time.Time) *KeyedCache[T] {
	c.now = now
	return c
}

// Set stores or overwrites the value for a key, stamping it with the current time.
func (c *KeyedCache[T]) Set(key string, value T) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = CacheEntry[T]{Value: value, CachedAt: c.now()}
}

// Get retrieves the cached value for a key. fresh reports whether the entry
// is younger than the TTL; found reports whether any entry exists at all.
func (c *KeyedCache[T]) Get(key string) (value T, fresh bool, found bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false, false
	}
	return entry.Value, c.now().Sub(entry.CachedAt) < c.ttl, true
}

// Snapshot returns a copy of all entries for operational introspection.
func (c *KeyedCache[T]) Snapshot() map[string]CacheEntry[T] {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	snapshot := make(map[string]CacheEntry[T], len(c.entries))
	for key, entry := range c.entries {
		snapshot[key] = entry
	}
	return snapshot
}

// Fresh reports whether an entry cached at the given time is still within the TTL.
func (c *KeyedCache[T]) Fresh(cachedAt time.Time) bool {
	return c.now().Sub(cachedAt) < c.ttl
}
