package ml

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"insurisk/internal/models"
)

// fakeClock is a manually-advanced time source for cache expiry tests.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time          { return c.current }
func (c *fakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)}
}

func TestPredictionCacheHit(t *testing.T) {
	clock := newFakeClock()
	cache := NewPredictionCache(time.Hour, clock.Now)

	resp := &models.MLPredictionResponse{RiskCategory: "Medium", RiskConfidence: 0.82}
	cache.Put("key-a", resp)

	got, ok := cache.Get("key-a")
	assert.True(t, ok)
	assert.Equal(t, resp, got)
	assert.Equal(t, 1, cache.Len())
}

func TestPredictionCacheMissOnUnknownKey(t *testing.T) {
	cache := NewPredictionCache(time.Hour, nil)

	got, ok := cache.Get("never-stored")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestPredictionCacheExpiresLazily(t *testing.T) {
	clock := newFakeClock()
	cache := NewPredictionCache(time.Hour, clock.Now)

	cache.Put("key-a", &models.MLPredictionResponse{RiskCategory: "High"})

	// Still inside the window right at the boundary.
	clock.Advance(time.Hour)
	_, ok := cache.Get("key-a")
	assert.True(t, ok)

	// One tick past the window the entry is dropped on read.
	clock.Advance(time.Nanosecond)
	_, ok = cache.Get("key-a")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestPredictionCachePutRefreshesTimestamp(t *testing.T) {
	clock := newFakeClock()
	cache := NewPredictionCache(time.Hour, clock.Now)

	cache.Put("key-a", &models.MLPredictionResponse{RiskCategory: "Low"})
	clock.Advance(45 * time.Minute)
	cache.Put("key-a", &models.MLPredictionResponse{RiskCategory: "Medium"})
	clock.Advance(45 * time.Minute)

	got, ok := cache.Get("key-a")
	assert.True(t, ok)
	assert.Equal(t, "Medium", got.RiskCategory)
}
