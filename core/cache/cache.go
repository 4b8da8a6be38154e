// Package cache provides LRU caching for rendered markup and entry output.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Cache is a generic LRU cache interface.
type Cache[K comparable, V any] interface {
	// Get retrieves a value from the cache.
	Get(key K) (V, bool)

	// Put stores a value in the cache.
	Put(key K, value V)

	// Remove removes a value from the cache.
	Remove(key K)

	// Clear removes all entries from the cache.
	Clear()

	// Len returns the number of entries in the cache.
	Len() int

	// Stats returns cache statistics.
	Stats() Stats
}

// Stats contains cache statistics.
type Stats struct {
	Hits       int64 `json:"hits"`
	Misses     int64 `json:"misses"`
	Evictions  int64 `json:"evictions"`
	Size       int   `json:"size"`
	MaxSize    int   `json:"max_size"`
	TotalBytes int64 `json:"total_bytes"`
}

// HitRate returns hits over lookups, or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Config contains cache configuration options.
type Config struct {
	// MaxSize is the maximum number of entries (0 = unlimited).
	MaxSize int

	// TTL is the time-to-live for entries (0 = no expiration).
	TTL time.Duration

	// OnEvict is called with the cache lock held when an entry leaves the
	// cache for any reason other than Clear.
	OnEvict func(key, value any)
}

// DefaultConfig returns a default cache configuration.
func DefaultConfig() Config {
	return Config{MaxSize: 256}
}

type item[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// lruCache is a thread-safe LRU cache implementation.
type lruCache[K comparable, V any] struct {
	mu        sync.Mutex
	config    Config
	now       func() time.Time
	items     map[K]*list.Element
	evictList *list.List
	stats     Stats
}

// NewLRUCache creates a new LRU cache with the given configuration.
func NewLRUCache[K comparable, V any](config Config) Cache[K, V] {
	return newLRU[K, V](config)
}

func newLRU[K comparable, V any](config Config) *lruCache[K, V] {
	if config.MaxSize < 0 {
		config.MaxSize = 0
	}
	return &lruCache[K, V]{
		config:    config,
		now:       time.Now,
		items:     make(map[K]*list.Element),
		evictList: list.New(),
	}
}

func (c *lruCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}

	it := el.Value.(*item[K, V])
	if c.config.TTL > 0 && c.now().After(it.expiresAt) {
		c.removeElement(el)
		c.stats.Misses++
		var zero V
		return zero, false
	}

	c.evictList.MoveToFront(el)
	c.stats.Hits++
	return it.value, true
}

func (c *lruCache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expires time.Time
	if c.config.TTL > 0 {
		expires = c.now().Add(c.config.TTL)
	}

	if el, ok := c.items[key]; ok {
		c.evictList.MoveToFront(el)
		it := el.Value.(*item[K, V])
		if c.config.OnEvict != nil {
			c.config.OnEvict(it.key, it.value)
		}
		it.value = value
		it.expiresAt = expires
		return
	}

	el := c.evictList.PushFront(&item[K, V]{key: key, value: value, expiresAt: expires})
	c.items[key] = el

	if c.config.MaxSize > 0 && c.evictList.Len() > c.config.MaxSize {
		if oldest := c.evictList.Back(); oldest != nil {
			c.removeElement(oldest)
			c.stats.Evictions++
		}
	}
}

func (c *lruCache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.removeElement(el)
	}
}

func (c *lruCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*list.Element)
	c.evictList.Init()
}

func (c *lruCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

func (c *lruCache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Size = c.evictList.Len()
	s.MaxSize = c.config.MaxSize
	return s
}

func (c *lruCache[K, V]) removeElement(el *list.Element) {
	c.evictList.Remove(el)
	it := el.Value.(*item[K, V])
	delete(c.items, it.key)

	if c.config.OnEvict != nil {
		c.config.OnEvict(it.key, it.value)
	}
}

// RenderCache holds rendered output keyed by content hash and tracks the
// total size of the cached text.
type RenderCache struct {
	lru   *lruCache[Key, string]
	mu    sync.Mutex
	bytes int64
}

// NewRenderCache creates a render cache. config.OnEvict is chained after the
// cache's own size accounting.
func NewRenderCache(config Config) *RenderCache {
	c := &RenderCache{}
	next := config.OnEvict
	config.OnEvict = func(key, value any) {
		c.mu.Lock()
		c.bytes -= int64(len(value.(string)))
		c.mu.Unlock()
		if next != nil {
			next(key, value)
		}
	}
	c.lru = newLRU[Key, string](config)
	return c
}

// NewDefaultRenderCache creates a render cache with default configuration.
func NewDefaultRenderCache() *RenderCache {
	return NewRenderCache(DefaultConfig())
}

// Get retrieves rendered output by key.
func (c *RenderCache) Get(key Key) (string, bool) {
	return c.lru.Get(key)
}

// Put stores rendered output.
func (c *RenderCache) Put(key Key, out string) {
	c.lru.Put(key, out)
	c.mu.Lock()
	c.bytes += int64(len(out))
	c.mu.Unlock()
}

// Remove drops one entry.
func (c *RenderCache) Remove(key Key) {
	c.lru.Remove(key)
}

// Clear drops every entry.
func (c *RenderCache) Clear() {
	c.lru.Clear()
	c.mu.Lock()
	c.bytes = 0
	c.mu.Unlock()
}

// Len returns the number of cached renderings.
func (c *RenderCache) Len() int {
	return c.lru.Len()
}

// Stats returns cache statistics including the cached byte total.
func (c *RenderCache) Stats() Stats {
	s := c.lru.Stats()
	c.mu.Lock()
	s.TotalBytes = c.bytes
	c.mu.Unlock()
	return s
}
