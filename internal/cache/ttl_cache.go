package cache

import (
	"sync"
	"time"
)

// Cache is a minimal TTL cache.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Update(key K, ttl time.Duration, fn func(current V, ok bool) V)
	Delete(key K)
}

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

func (e cacheEntry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// TTLCache stores values in memory with per-entry TTLs. A zero TTL never
// expires.
type TTLCache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]cacheEntry[V]
	now   func() time.Time
}

func NewTTLCache[K comparable, V any]() *TTLCache[K, V] {
	return NewTTLCacheWithClock[K, V](time.Now)
}

// NewTTLCacheWithClock lets tests control expiry.
func NewTTLCacheWithClock[K comparable, V any](now func() time.Time) *TTLCache[K, V] {
	return &TTLCache[K, V]{items: make(map[K]cacheEntry[V]), now: now}
}

func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if entry.expired(c.now()) {
		c.Delete(key)
		return zero, false
	}
	return entry.value, true
}

func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.items[key] = cacheEntry[V]{value: value, expiresAt: c.expiry(ttl)}
	c.mu.Unlock()
}

// Update replaces the value under key with fn(current) while holding the
// write lock, so concurrent read-modify-write callers never lose updates.
func (c *TTLCache[K, V]) Update(key K, ttl time.Duration, fn func(current V, ok bool) V) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if ok && entry.expired(c.now()) {
		ok = false
	}
	var current V
	if ok {
		current = entry.value
	}
	c.items[key] = cacheEntry[V]{value: fn(current, ok), expiresAt: c.expiry(ttl)}
}

func (c *TTLCache[K, V]) Delete(key K) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

func (c *TTLCache[K, V]) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return c.now().Add(ttl)
}

// NoopCache always misses and ignores writes.
type NoopCache[K comparable, V any] struct{}

func (NoopCache[K, V]) Get(key K) (V, bool) {
	var zero V
	return zero, false
}

func (NoopCache[K, V]) Set(key K, value V, ttl time.Duration) {}

func (NoopCache[K, V]) Update(key K, ttl time.Duration, fn func(current V, ok bool) V) {}

func (NoopCache[K, V]) Delete(key K) {}
