package cache

import (
	"regexp"
	"sync"
	"time"
)

// entry is a cached compiled pattern with expiration
type entry struct {
	re        *regexp.Regexp
	expiresAt time.Time
}

// PatternCache is an in-memory cache of compiled regular expressions.
// Rule patterns are user-supplied and evaluated on every inbound message,
// so compiled patterns are cached per rule field to avoid recompilation.
type PatternCache struct {
	items map[string]entry
	ttl   time.Duration
	mutex sync.RWMutex
}

// New creates a new pattern cache. Entries expire after ttl so edited
// rules pick up new patterns without an explicit invalidation path.
func New(ttl time.Duration) *PatternCache {
	return &PatternCache{
		items: make(map[string]entry),
		ttl:   ttl,
	}
}

// Get retrieves a compiled pattern from the cache
func (c *PatternCache) Get(key string) (*regexp.Regexp, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiresAt) {
		return nil, false
	}
	return item.re, true
}

// Set stores a compiled pattern in the cache
func (c *PatternCache) Set(key string, re *regexp.Regexp) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = entry{
		re:        re,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Delete removes a pattern from the cache
func (c *PatternCache) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.items, key)
}

// Len returns the number of entries, expired ones included
func (c *PatternCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.items)
}
