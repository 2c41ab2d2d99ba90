package server

import (
	"sync"
	"time"
)

// frameKey identifies one encoded render request.
type frameKey struct {
	Width       int
	Height      int
	Preview     bool
	Transparent bool
	Format      string
	Label       string
	At          string // RFC 3339 with nanoseconds
}

// frameEntry holds an encoded frame with its timestamp.
type frameEntry struct {
	data      []byte
	timestamp time.Time
}

// FrameCache provides a TTL-based cache of encoded frames. Only requests
// for an explicit time are cached; "now" changes on every call.
type FrameCache struct {
	mu      sync.Mutex
	entries map[frameKey]frameEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewFrameCache creates a new cache. A ttl of 0 disables caching.
func NewFrameCache(ttl time.Duration) *FrameCache {
	return &FrameCache{
		entries: make(map[frameKey]frameEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns cached data if within TTL.
func (c *FrameCache) Get(key frameKey) ([]byte, bool) {
	if c.ttl == 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.timestamp) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.data, true
}

// Put stores data and drops expired entries.
func (c *FrameCache) Put(key frameKey, data []byte) {
	if c.ttl == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, e := range c.entries {
		if now.Sub(e.timestamp) >= c.ttl {
			delete(c.entries, k)
		}
	}
	c.entries[key] = frameEntry{data: data, timestamp: now}
}

// Len returns the number of stored entries, expired or not.
func (c *FrameCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// InvalidateAll clears the entire cache.
func (c *FrameCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[frameKey]frameEntry)
}
