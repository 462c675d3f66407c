package forecastcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weather-wizard/internal/domain/forecast"
)

// ValkeyCache shares forecasts across instances through Valkey.
type ValkeyCache struct {
	client valkey.Client
	prefix string
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string) *ValkeyCache {
	if prefix == "" {
		prefix = "forecast"
	}
	return &ValkeyCache{client: client, prefix: prefix}
}

func (c *ValkeyCache) Get(ctx context.Context, key string) (forecast.Forecast, bool, error) {
	payload, err := c.client.Do(ctx, c.client.B().Get().Key(c.key(key)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return forecast.Forecast{}, false, nil
		}
		return forecast.Forecast{}, false, err
	}
	var f forecast.Forecast
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		return forecast.Forecast{}, false, fmt.Errorf("decode cached forecast: %w", err)
	}
	return f, true, nil
}

func (c *ValkeyCache) Set(ctx context.Context, key string, f forecast.Forecast, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if ttl < time.Second {
		ttl = time.Second
	}
	payload, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return c.client.Do(ctx, c.client.B().Set().Key(c.key(key)).Value(string(payload)).Ex(ttl).Build()).Error()
}

func (c *ValkeyCache) key(k string) string {
	return fmt.Sprintf("%s:%s", c.prefix, k)
}

var _ forecast.Cache = (*ValkeyCache)(nil)
