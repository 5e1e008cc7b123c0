package storage

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// cachedValue records both present values and confirmed absences
type cachedValue struct {
	value   string
	present bool
}

// CachedStore is a read-through LRU cache in front of a slower store.
// Writes go to the backend first and update the cache only on success.
type CachedStore struct {
	inner Store
	lru   *expirable.LRU[string, cachedValue]
}

// WithCache wraps inner with an expiring LRU of the given size and TTL
func WithCache(inner Store, size int, ttl time.Duration) *CachedStore {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedStore{
		inner: inner,
		lru:   expirable.NewLRU[string, cachedValue](size, nil, ttl),
	}
}

func (c *CachedStore) Get(ctx context.Context, key string) (string, bool, error) {
	if entry, ok := c.lru.Get(key); ok {
		return entry.value, entry.present, nil
	}
	value, ok, err := c.inner.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	c.lru.Add(key, cachedValue{value: value, present: ok})
	return value, ok, nil
}

func (c *CachedStore) Set(ctx context.Context, key, value string) error {
	if err := c.inner.Set(ctx, key, value); err != nil {
		c.lru.Remove(key)
		return err
	}
	c.lru.Add(key, cachedValue{value: value, present: true})
	return nil
}

func (c *CachedStore) Delete(ctx context.Context, key string) error {
	if err := c.inner.Delete(ctx, key); err != nil {
		c.lru.Remove(key)
		return err
	}
	c.lru.Add(key, cachedValue{present: false})
	return nil
}

// Keys always reads the backend
func (c *CachedStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	return c.inner.Keys(ctx, prefix)
}

func (c *CachedStore) Ping(ctx context.Context) error {
	return c.inner.Ping(ctx)
}

// Len reports the number of cached entries
func (c *CachedStore) Len() int {
	return c.lru.Len()
}

// Close purges the cache and closes the backend
func (c *CachedStore) Close() error {
	c.lru.Purge()
	return c.inner.Close()
}
