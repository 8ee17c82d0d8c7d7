// Package cache provides an in-memory TTL cache with bounded size
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	insertedAt time.Time
	value      V
}

// Cache is a key-value store with per-entry freshness and a hard size cap.
// Entries older than the TTL are treated as absent and removed lazily on
// read. When an insert pushes the store past maxItems, the single
// oldest-by-insertion entry is evicted (FIFO by insertion, not LRU).
//
// The cache is a pure performance optimization: state is lost on restart
// and every operation is infallible.
type Cache[V any] struct {
	mu       sync.Mutex
	ttl      time.Duration
	maxItems int
	entries  map[string]entry[V]
	now      func() time.Time
}

const DefaultMaxItems = 1000

// New creates a cache with the given TTL and maximum entry count.
// A non-positive maxItems falls back to DefaultMaxItems.
func New[V any](ttl time.Duration, maxItems int) *Cache[V] {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &Cache[V]{
		ttl:      ttl,
		maxItems: maxItems,
		entries:  make(map[string]entry[V]),
		now:      time.Now,
	}
}

// Get returns the value for key if it exists and is still fresh.
// A lookup that finds an expired entry removes it as a side effect.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.insertedAt) > c.ttl {
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

// Set inserts or overwrites the entry for key with the current timestamp,
// then evicts the oldest entry if the store exceeds its size cap.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{insertedAt: c.now(), value: value}
	c.evictIfNeeded()
}

// evictIfNeeded removes the entry with the smallest insertion timestamp
// when the store holds more than maxItems entries. Ties are broken
// arbitrarily. Caller must hold the mutex.
func (c *Cache[V]) evictIfNeeded() {
	if len(c.entries) <= c.maxItems {
		return
	}
	var oldestKey string
	var oldestAt time.Time
	first := true
	for k, e := range c.entries {
		if first || e.insertedAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.insertedAt
			first = false
		}
	}
	delete(c.entries, oldestKey)
}

// Len returns the current number of entries, including any not yet
// lazily expired.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
