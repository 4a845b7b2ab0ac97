// Package cache provides a read-through cache for idempotent reads.
// There is no TTL: entries live until a writer invalidates them, which
// keeps reads warm for as long as the underlying data holds still.
package cache

import "sync"

type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

func New[V any]() *Cache[V] {
	return &Cache[V]{entries: make(map[string]V)}
}

// GetOrLoad returns the cached value for key, calling load on a miss
// and keeping its result. Concurrent misses may load more than once;
// the last result wins, which is fine for idempotent loads. Load
// failures are not cached.
func (c *Cache[V]) GetOrLoad(key string, load func() (V, error)) (V, error) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err := load()
	if err != nil {
		var zero V
		return zero, err
	}
	c.mu.Lock()
	c.entries[key] = v
	c.mu.Unlock()
	return v, nil
}

func (c *Cache[V]) Invalidate(keys ...string) {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	c.mu.Unlock()
}

// Flush drops every entry.
func (c *Cache[V]) Flush() {
	c.mu.Lock()
	c.entries = make(map[string]V)
	c.mu.Unlock()
}

func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
