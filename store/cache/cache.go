// Package cache provides a small in-memory TTL cache used by the store to
// avoid hitting the database for hot objects such as users and profiles.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Config holds the settings for a Cache.
type Config struct {
	// DefaultTTL is applied by Set. Zero means entries never expire.
	DefaultTTL time.Duration
	// CleanupInterval controls how often expired entries are swept.
	// Zero disables the background sweeper; expired entries are then
	// dropped lazily on read.
	CleanupInterval time.Duration
	// MaxItems caps the number of entries. When the cap is reached, new
	// Sets evict an arbitrary entry. Zero means unlimited.
	MaxItems int
	// OnEviction, if set, is called for each evicted or expired entry.
	OnEviction func(key string, value any)
}

type item struct {
	value     any
	expiresAt time.Time // zero means no expiry
}

func (i *item) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// Cache is a concurrency-safe in-memory cache with per-entry TTL.
type Cache struct {
	config Config

	data sync.Map
	size atomic.Int64

	stopOnce sync.Once
	stop     chan struct{}
}

// New creates a Cache and starts its cleanup goroutine when a
// CleanupInterval is configured. Call Close to release it.
func New(config Config) *Cache {
	c := &Cache{
		config: config,
		stop:   make(chan struct{}),
	}
	if config.CleanupInterval > 0 {
		go c.cleanupLoop()
	}
	return c
}

// Get returns the cached value for key, if present and not expired.
func (c *Cache) Get(_ context.Context, key string) (any, bool) {
	raw, ok := c.data.Load(key)
	if !ok {
		return nil, false
	}
	it := raw.(*item)
	if it.expired(time.Now()) {
		c.remove(key, it)
		return nil, false
	}
	return it.value, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	c.SetWithTTL(ctx, key, value, c.config.DefaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL.
func (c *Cache) SetWithTTL(_ context.Context, key string, value any, ttl time.Duration) {
	if c.config.MaxItems > 0 && c.size.Load() >= int64(c.config.MaxItems) {
		if _, exists := c.data.Load(key); !exists {
			c.evictOne()
		}
	}

	it := &item{value: value}
	if ttl > 0 {
		it.expiresAt = time.Now().Add(ttl)
	}
	if _, loaded := c.data.Swap(key, it); !loaded {
		c.size.Add(1)
	}
}

// Delete removes key from the cache.
func (c *Cache) Delete(_ context.Context, key string) {
	if raw, loaded := c.data.LoadAndDelete(key); loaded {
		c.size.Add(-1)
		if c.config.OnEviction != nil {
			c.config.OnEviction(key, raw.(*item).value)
		}
	}
}

// Clear removes every entry.
func (c *Cache) Clear(ctx context.Context) {
	c.data.Range(func(key, _ any) bool {
		c.Delete(ctx, key.(string))
		return true
	})
}

// Size returns the current number of entries, including not-yet-swept
// expired ones.
func (c *Cache) Size() int64 {
	return c.size.Load()
}

// Close stops the cleanup goroutine. The cache remains usable afterwards
// but expired entries are only dropped lazily.
func (c *Cache) Close() error {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
	return nil
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.data.Range(func(key, raw any) bool {
				if it := raw.(*item); it.expired(now) {
					c.remove(key.(string), it)
				}
				return true
			})
		}
	}
}

func (c *Cache) remove(key string, it *item) {
	if _, loaded := c.data.LoadAndDelete(key); loaded {
		c.size.Add(-1)
		if c.config.OnEviction != nil {
			c.config.OnEviction(key, it.value)
		}
	}
}

func (c *Cache) evictOne() {
	c.data.Range(func(key, raw any) bool {
		c.remove(key.(string), raw.(*item))
		return false
	})
}
