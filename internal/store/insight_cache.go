package store

import (
	"container/list"
	"sort"
	"sync"
	"time"
)

// CachedInsight is a stored completion for one (view, criteria, table) key.
type CachedInsight struct {
	Text      string    `json:"text"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (c CachedInsight) expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

type InsightCache interface {
	Get(key string) (CachedInsight, bool)
	Set(key string, text, model string)
	Sweep() int
	Len() int
	Snapshot() map[string]CachedInsight
	Restore(entries map[string]CachedInsight) int
}

type cacheEntry struct {
	key   string
	value CachedInsight
}

type lruInsightCache struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time
	entries  map[string]*list.Element
	lru      *list.List
	mu       sync.Mutex
}

// NewInsightCache keeps at most capacity insights, each for ttl (0 means no expiry).
func NewInsightCache(capacity int, ttl time.Duration) InsightCache {
	return newInsightCache(capacity, ttl, time.Now)
}

func newInsightCache(capacity int, ttl time.Duration, now func() time.Time) *lruInsightCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &lruInsightCache{
		capacity: capacity,
		ttl:      ttl,
		now:      now,
		entries:  make(map[string]*list.Element),
		lru:      list.New(),
	}
}

func (c *lruInsightCache) Get(key string) (CachedInsight, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return CachedInsight{}, false
	}
	entry := elem.Value.(*cacheEntry)
	if entry.value.expired(c.now()) {
		c.removeElement(elem)
		return CachedInsight{}, false
	}
	c.lru.MoveToFront(elem)
	return entry.value, true
}

func (c *lruInsightCache) Set(key string, text, model string) {
	now := c.now()
	value := CachedInsight{Text: text, Model: model, CreatedAt: now}
	if c.ttl > 0 {
		value.ExpiresAt = now.Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(key, value)
}

func (c *lruInsightCache) put(key string, value CachedInsight) {
	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).value = value
		c.lru.MoveToFront(elem)
		return
	}
	c.entries[key] = c.lru.PushFront(&cacheEntry{key: key, value: value})
	for c.lru.Len() > c.capacity {
		c.removeElement(c.lru.Back())
	}
}

func (c *lruInsightCache) removeElement(elem *list.Element) {
	c.lru.Remove(elem)
	delete(c.entries, elem.Value.(*cacheEntry).key)
}

// Sweep drops expired entries and returns how many were removed.
func (c *lruInsightCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for elem := c.lru.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*cacheEntry).value.expired(now) {
			c.removeElement(elem)
			removed++
		}
		elem = prev
	}
	return removed
}

func (c *lruInsightCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *lruInsightCache) Snapshot() map[string]CachedInsight {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]CachedInsight, c.lru.Len())
	for elem := c.lru.Front(); elem != nil; elem = elem.Next() {
		entry := elem.Value.(*cacheEntry)
		out[entry.key] = entry.value
	}
	return out
}

// Restore loads unexpired entries, oldest first, and returns how many were kept.
func (c *lruInsightCache) Restore(entries map[string]CachedInsight) int {
	type kv struct {
		key   string
		value CachedInsight
	}
	ordered := make([]kv, 0, len(entries))
	for k, v := range entries {
		ordered = append(ordered, kv{k, v})
	}
	// Oldest first so the newest end up at the front of the LRU list.
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].value.CreatedAt.Before(ordered[j].value.CreatedAt)
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	kept := 0
	for _, e := range ordered {
		if e.value.expired(now) {
			continue
		}
		c.put(e.key, e.value)
		kept++
	}
	if kept > c.capacity {
		kept = c.capacity
	}
	return kept
}
