// Package cache provides a small in-memory TTL cache. The dataset is
// immutable for the lifetime of the process, so query results keyed by the
// normalized question never go stale; the TTL only bounds memory.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Config holds cache settings.
type Config struct {
	// DefaultTTL is applied by Set; zero means entries never expire.
	DefaultTTL time.Duration
	// CleanupInterval is how often expired entries are swept; zero
	// disables the background janitor (expired entries are still dropped
	// lazily on Get).
	CleanupInterval time.Duration
	// MaxItems bounds the cache size; zero means unbounded. When full,
	// Set evicts an arbitrary entry, preferring expired ones.
	MaxItems int
	// OnEviction, when set, is called for entries removed by expiry or
	// capacity eviction (not for explicit Delete/Clear).
	OnEviction func(key string, value any)
}

type item struct {
	value     any
	expiresAt time.Time // zero means no expiry
}

func (it *item) expired(now time.Time) bool {
	return !it.expiresAt.IsZero() && now.After(it.expiresAt)
}

// Cache is a thread-safe TTL cache.
type Cache struct {
	config Config

	data sync.Map
	size atomic.Int64

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a cache and starts its cleanup goroutine when a cleanup
// interval is configured. Call Close to stop it.
func New(config Config) *Cache {
	c := &Cache{
		config: config,
		done:   make(chan struct{}),
	}
	if config.CleanupInterval > 0 {
		go c.janitor()
	}
	return c
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.done:
			return
		}
	}
}

func (c *Cache) sweep() {
	now := time.Now()
	c.data.Range(func(key, value any) bool {
		it := value.(*item)
		if it.expired(now) {
			c.evict(key.(string), it)
		}
		return true
	})
}

func (c *Cache) evict(key string, it *item) {
	if _, loaded := c.data.LoadAndDelete(key); loaded {
		c.size.Add(-1)
		if c.config.OnEviction != nil {
			c.config.OnEviction(key, it.value)
		}
	}
}

// Get retrieves a value. Expired entries are dropped on access.
func (c *Cache) Get(_ context.Context, key string) (any, bool) {
	value, ok := c.data.Load(key)
	if !ok {
		return nil, false
	}
	it := value.(*item)
	if it.expired(time.Now()) {
		c.evict(key, it)
		return nil, false
	}
	return it.value, true
}

// Set stores a value with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	c.SetWithTTL(ctx, key, value, c.config.DefaultTTL)
}

// SetWithTTL stores a value with a custom TTL; ttl<=0 means no expiry.
func (c *Cache) SetWithTTL(_ context.Context, key string, value any, ttl time.Duration) {
	it := &item{value: value}
	if ttl > 0 {
		it.expiresAt = time.Now().Add(ttl)
	}

	if c.config.MaxItems > 0 && int(c.size.Load()) >= c.config.MaxItems {
		if _, exists := c.data.Load(key); !exists {
			c.evictOne()
		}
	}

	if _, loaded := c.data.Swap(key, it); !loaded {
		c.size.Add(1)
	}
}

// evictOne removes one entry to make room, preferring an expired one.
func (c *Cache) evictOne() {
	now := time.Now()
	var fallbackKey string
	var fallbackItem *item
	evicted := false

	c.data.Range(func(key, value any) bool {
		it := value.(*item)
		if it.expired(now) {
			c.evict(key.(string), it)
			evicted = true
			return false
		}
		if fallbackItem == nil {
			fallbackKey = key.(string)
			fallbackItem = it
		}
		return true
	})

	if !evicted && fallbackItem != nil {
		c.evict(fallbackKey, fallbackItem)
	}
}

// Delete removes a value.
func (c *Cache) Delete(_ context.Context, key string) {
	if _, loaded := c.data.LoadAndDelete(key); loaded {
		c.size.Add(-1)
	}
}

// Clear removes all values.
func (c *Cache) Clear(_ context.Context) {
	c.data.Range(func(key, _ any) bool {
		if _, loaded := c.data.LoadAndDelete(key); loaded {
			c.size.Add(-1)
		}
		return true
	})
}

// Size returns the number of stored entries, including not-yet-swept
// expired ones.
func (c *Cache) Size() int64 {
	return c.size.Load()
}

// Close stops the cleanup goroutine.
func (c *Cache) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
	})
	return nil
}

// QueryKey derives a stable cache key from a free-text question. Case and
// surrounding whitespace do not change the key.
func QueryKey(question string) string {
	normalized := strings.ToLower(strings.TrimSpace(question))
	h := sha256.Sum256([]byte(normalized))
	return "q:" + hex.EncodeToString(h[:])[:12]
}
