package cache

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a small in-memory query cache keyed by resource name plus filter
// parameters. Entries expire after a TTL and can be invalidated explicitly
// after a mutation; identical in-flight fetches for the same key are
// collapsed into one call via singleflight. Last write to a key wins; no
// ordering is guaranteed between different keys.
type Cache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]entry
	sfg     singleflight.Group // Prevents duplicate concurrent fetches
}

type entry struct {
	value   any
	expires time.Time
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Key builds a cache key from a resource name and its filter parameters.
func Key(resource string, params ...string) string {
	if len(params) == 0 {
		return resource
	}
	return resource + "|" + strings.Join(params, "|")
}

// Fetch returns the cached value for key, or runs fn to produce it. Errors
// are never cached; a failed fetch leaves the key empty so the next read
// retries.
func (c *Cache) Fetch(key string, fn func() (any, error)) (any, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(e.expires) {
		return e.value, nil
	}

	v, err, _ := c.sfg.Do(key, func() (any, error) {
		// Re-check under singleflight: another caller may have just
		// populated the key.
		c.mu.RLock()
		e, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && time.Now().Before(e.expires) {
			return e.value, nil
		}

		value, err := fn()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = entry{value: value, expires: time.Now().Add(c.ttl)}
		c.mu.Unlock()
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Invalidate marks the given keys stale so the next read re-fetches.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
}

// InvalidatePrefix drops every key for a resource regardless of its filter
// parameters, e.g. all cached product list pages after a product mutation.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key == prefix || strings.HasPrefix(key, prefix+"|") {
			delete(c.entries, key)
		}
	}
}
