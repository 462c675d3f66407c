package forecastcache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/weather-wizard/internal/domain/forecast"
)

type cached struct {
	payload   forecast.Forecast
	expiresAt time.Time
}

// MemoryCache keeps forecasts in process memory until they expire.
type MemoryCache struct {
	mu    sync.Mutex
	items map[string]cached
	now   func() time.Time
}

// NewMemoryCache constructs an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[string]cached),
		now:   time.Now,
	}
}

// Get implements forecast.Cache.
func (c *MemoryCache) Get(_ context.Context, key string) (forecast.Forecast, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[key]
	if !ok {
		return forecast.Forecast{}, false, nil
	}
	if !item.expiresAt.After(c.now()) {
		delete(c.items, key)
		return forecast.Forecast{}, false, nil
	}
	return item.payload, true, nil
}

// Set stores a forecast and drops expired entries.
func (c *MemoryCache) Set(_ context.Context, key string, f forecast.Forecast, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, item := range c.items {
		if !item.expiresAt.After(now) {
			delete(c.items, k)
		}
	}
	c.items[key] = cached{payload: f, expiresAt: now.Add(ttl)}
	return nil
}

// Len reports the number of live and not yet pruned entries.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

var _ forecast.Cache = (*MemoryCache)(nil)
