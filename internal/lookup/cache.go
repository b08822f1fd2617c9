package lookup

import (
	"container/list"
	"sync"
)

// Cache is a fixed-capacity LRU map. A capacity of zero or less disables it:
// Get always misses and Set is a no-op.
type Cache[V any] struct {
	capacity int
	items    map[string]*list.Element
	lru      *list.List
	mu       sync.Mutex
}

type cacheEntry[V any] struct {
	key   string
	value V
}

// NewCache creates a cache holding at most capacity entries.
func NewCache[V any](capacity int) *Cache[V] {
	return &Cache[V]{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Get returns the value for key and marks it most recently used.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.lru.MoveToFront(elem)
		return elem.Value.(*cacheEntry[V]).value, true
	}
	var zero V
	return zero, false
}

// Set stores value for key, evicting the least recently used entry when full.
func (c *Cache[V]) Set(key string, value V) {
	if c.capacity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(key, value)
}

// GetOrAdd returns the value for key, storing the result of create first
// when the key is absent. With caching disabled create is called every time.
func (c *Cache[V]) GetOrAdd(key string, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.lru.MoveToFront(elem)
		return elem.Value.(*cacheEntry[V]).value
	}
	v := create()
	if c.capacity > 0 {
		c.set(key, v)
	}
	return v
}

// Len reports the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *Cache[V]) set(key string, value V) {
	if elem, ok := c.items[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheEntry[V]).value = value
		return
	}

	elem := c.lru.PushFront(&cacheEntry[V]{key: key, value: value})
	c.items[key] = elem

	if c.lru.Len() > c.capacity {
		if oldest := c.lru.Back(); oldest != nil {
			c.lru.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry[V]).key)
		}
	}
}
