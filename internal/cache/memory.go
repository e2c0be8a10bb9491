package cache

import (
	"container/list"
	"errors"
	"sync"
	"time"
)

// ErrItemTooLarge indicates a value bigger than the whole cache.
var ErrItemTooLarge = errors.New("cache: item exceeds capacity")

// Stats tracks cache effectiveness.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int64
	ItemCount int64
	Capacity  int64
}

// MemoryCache is an in-memory byte cache with LRU eviction, bounded by a
// byte capacity.
type MemoryCache struct {
	mu       sync.Mutex
	capacity int64
	size     int64

	items    map[string]*list.Element
	eviction *list.List

	stats Stats
}

type memoryEntry struct {
	key       string
	value     []byte
	timestamp time.Time
}

// NewMemoryCache creates a memory cache with the given capacity in bytes.
func NewMemoryCache(capacity int64) *MemoryCache {
	return &MemoryCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		stats:    Stats{Capacity: capacity},
	}
}

// Get retrieves a value, marking it most recently used.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}

	c.eviction.MoveToFront(elem)
	c.stats.Hits++
	return elem.Value.(*memoryEntry).value, true
}

// Put stores a value, evicting least recently used entries as needed.
func (c *MemoryCache) Put(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	valueSize := int64(len(value))
	if valueSize > c.capacity {
		return ErrItemTooLarge
	}

	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*memoryEntry)
		c.size += valueSize - int64(len(entry.value))
		entry.value = value
		entry.timestamp = time.Now()
		c.eviction.MoveToFront(elem)
		return nil
	}

	for c.size+valueSize > c.capacity && c.eviction.Len() > 0 {
		c.evictOldest()
	}

	elem := c.eviction.PushFront(&memoryEntry{
		key:       key,
		value:     value,
		timestamp: time.Now(),
	})
	c.items[key] = elem
	c.size += valueSize
	return nil
}

// Delete removes an entry. Missing keys are a no-op.
func (c *MemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
	}
}

// Clear removes all entries.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.eviction.Init()
	c.size = 0
}

// Stats returns current cache statistics.
func (c *MemoryCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.Size = c.size
	stats.ItemCount = int64(len(c.items))
	return stats
}

// evictOldest removes the least recently used entry. Lock must be held.
func (c *MemoryCache) evictOldest() {
	if elem := c.eviction.Back(); elem != nil {
		c.removeElement(elem)
		c.stats.Evictions++
	}
}

// removeElement unlinks an entry. Lock must be held.
func (c *MemoryCache) removeElement(elem *list.Element) {
	c.eviction.Remove(elem)
	entry := elem.Value.(*memoryEntry)
	delete(c.items, entry.key)
	c.size -= int64(len(entry.value))
}
