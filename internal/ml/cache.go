package ml

import (
	"sync"
	"time"

	"insurisk/internal/models"
)

// Clock returns the current time; injectable so tests control expiry.
type Clock func() time.Time

type cacheEntry struct {
	response *models.MLPredictionResponse
	storedAt time.Time
}

// PredictionCache is the in-process response cache, keyed by the exact
// serialized input payload. Expired entries are dropped lazily on read;
// there is no background sweep. Size stays bounded by distinct inputs over
// the process lifetime.
type PredictionCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     Clock
}

// NewPredictionCache builds a cache with the given freshness window. A nil
// clock defaults to time.Now.
func NewPredictionCache(ttl time.Duration, now Clock) *PredictionCache {
	if now == nil {
		now = time.Now
	}
	return &PredictionCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached response for the key if it is still inside the
// freshness window; an expired entry is removed and reported as a miss.
func (c *PredictionCache) Get(key string) (*models.MLPredictionResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.response, true
}

// Put stores a successful response under the key with the current timestamp.
func (c *PredictionCache) Put(key string, resp *models.MLPredictionResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{response: resp, storedAt: c.now()}
}

// Len reports the number of stored entries, expired or not.
func (c *PredictionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
