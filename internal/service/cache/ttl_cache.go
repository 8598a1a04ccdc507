package cache

import (
	"sync"
	"time"
)

type ttlEntry struct {
	body []byte
	exp  time.Time
}

// TTLCache is an in-process BytesCache. Expired entries are dropped lazily on
// read; there is no background janitor.
type TTLCache struct {
	mu      sync.RWMutex
	entries map[string]ttlEntry
}

func NewTTLCache() *TTLCache {
	return &TTLCache{entries: make(map[string]ttlEntry)}
}

func (c *TTLCache) GetBytes(key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return e.body, true, nil
}

// SetBytes stores value under key. A ttl of zero or less means no expiry.
func (c *TTLCache) SetBytes(key string, value []byte, ttl time.Duration) error {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = ttlEntry{body: value, exp: exp}
	c.mu.Unlock()
	return nil
}
