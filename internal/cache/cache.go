// Package cache provides a concurrency-safe TTL cache used to reuse backend
// responses across invocations, plus the credential hashing that derives
// cache keys. Entries expire a fixed duration after they are written,
// regardless of reads; a write for an existing key replaces the entry and
// resets its expiry. Capacity is bounded: when full, the oldest-written entry
// is evicted to make room.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Stats reports cache usage counters.
type Stats struct {
	// Hits is the number of reads that found a live entry
	Hits int64
	// Misses is the number of reads that found nothing, or an expired entry
	Misses int64
	// Evictions is the number of entries removed to make room
	Evictions int64
	// Size is the current number of stored entries, including any that
	// expired but have not been collected yet
	Size int
}

// Cache is the interface consumed by the execution pipeline.
type Cache interface {
	// Get returns the live value for key, or false if absent or expired.
	Get(key string) (interface{}, bool)

	// Set writes or replaces the entry for key and resets its expiry to
	// now plus ttl. A non-positive ttl uses the cache default.
	Set(key string, value interface{}, ttl time.Duration)

	// Delete removes the entry for key if present.
	Delete(key string)

	// Clear removes all entries.
	Clear()

	// Len returns the current number of stored entries.
	Len() int

	// Stats returns usage counters.
	Stats() Stats
}

// entry is a single cached value with write-based expiry.
type entry struct {
	value     interface{}
	writtenAt time.Time
	expiresAt time.Time
}

// TTLCache is a bounded, concurrency-safe Cache with write-based expiry and
// oldest-write eviction.
type TTLCache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	maxSize    int
	defaultTTL time.Duration
	now        func() time.Time

	hits      int64
	misses    int64
	evictions int64
}

// NewTTLCache creates a TTLCache holding at most maxSize entries, with the
// given default TTL. Non-positive arguments fall back to 1000 entries and
// 24 hours.
func NewTTLCache(maxSize int, defaultTTL time.Duration) *TTLCache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	if defaultTTL <= 0 {
		defaultTTL = 24 * time.Hour
	}
	return &TTLCache{
		entries:    make(map[string]entry),
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// SetNowFunc replaces the cache's clock. Intended for tests that simulate
// the passage of time.
func (c *TTLCache) SetNowFunc(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Get returns the live value for key. Expired entries are removed on read.
func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		c.misses++
		return nil, false
	}
	c.hits++
	return e.value, true
}

// Set writes or replaces the entry for key, resetting its expiry.
func (c *TTLCache) Set(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldestLocked()
	}

	now := c.now()
	c.entries[key] = entry{
		value:     value,
		writtenAt: now,
		expiresAt: now.Add(ttl),
	}
}

// evictOldestLocked removes the entry with the earliest write time.
// Callers must hold the write lock.
func (c *TTLCache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for k, e := range c.entries {
		if first || e.writtenAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.writtenAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
		c.evictions++
	}
}

// Delete removes the entry for key if present.
func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes all entries.
func (c *TTLCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the current number of stored entries.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns usage counters.
func (c *TTLCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      len(c.entries),
	}
}

// CredentialKey derives the cache key component for a credential: the
// lowercase hex SHA-256 digest of the credential material. The same
// credential always yields the same key; the raw credential is never stored.
func CredentialKey(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:])
}
