package geocode

import (
	"context"
	"fmt"
	"sync"
)

// CachedResolver wraps a Resolver with an in-memory LRU cache. Adjacent
// hotspot rows often share coordinates, so caching saves most lookups within
// a fire ingestion cycle.
type CachedResolver struct {
	inner Resolver
	cache *lruCache
}

func NewCachedResolver(inner Resolver, maxEntries int) *CachedResolver {
	return &CachedResolver{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedResolver) Resolve(ctx context.Context, lat, lng float64) PlaceInfo {
	key := fmt.Sprintf("%.4f,%.4f", lat, lng)
	if place, ok := c.cache.get(key); ok {
		return place
	}
	place := c.inner.Resolve(ctx, lat, lng)
	// Coordinate-string fallbacks are not cached so transient failures can
	// be retried on the next row.
	if place.City != "" || place.State != "" || place.Country != "" {
		c.cache.put(key, place)
	}
	return place
}

type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value PlaceInfo
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (PlaceInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return PlaceInfo{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value PlaceInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.pushFront(e)

	if len(c.entries) > c.maxEntries {
		evict := c.tail
		c.remove(evict)
		delete(c.entries, evict.key)
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if c.head == e {
		return
	}
	c.remove(e)
	c.pushFront(e)
}

func (c *lruCache) pushFront(e *entry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}
