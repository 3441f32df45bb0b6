package cache

import (
	"sync"
	"time"

	"github.com/rohanthewiz/serr"
	"github.com/vmihailenco/msgpack/v5"
)

// TTL is an in-memory cache whose entries expire a fixed duration after they are set.
// Values are stored msgpack-encoded, so callers never share mutable state through the cache.
type TTL struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// New creates a cache with the given entry lifetime
func New(ttl time.Duration) *TTL {
	return &TTL{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// SetClock replaces the time source (for tests)
func (c *TTL) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Set stores value under key until now+ttl
func (c *TTL) Set(key string, value any) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return serr.Wrap(err, "failed to encode cache value")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{data: data, expiresAt: c.now().Add(c.ttl)}
	return nil
}

// Get decodes the value stored under key into out.
// It reports false for a missing or expired key; expired keys are dropped.
func (c *TTL) Get(key string, out any) (bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	now := c.now()
	c.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if e.expiresAt.Before(now) {
		c.mu.Lock()
		// the entry may have been refreshed since we looked
		if cur, still := c.entries[key]; still && cur.expiresAt.Before(now) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return false, nil
	}

	if err := msgpack.Unmarshal(e.data, out); err != nil {
		return false, serr.Wrap(err, "failed to decode cache value")
	}
	return true, nil
}

// Delete removes key
func (c *TTL) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of stored entries, expired or not
func (c *TTL) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
