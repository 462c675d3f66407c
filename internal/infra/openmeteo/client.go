package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yanqian/weather-wizard/internal/domain/forecast"
)

const (
	defaultGeocodeURL  = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL = "https://api.open-meteo.com/v1/forecast"
)

var (
	currentVars = []string{
		"temperature_2m", "relative_humidity_2m", "apparent_temperature", "rain", "showers", "snowfall",
		"weather_code", "surface_pressure", "wind_speed_10m", "wind_direction_10m", "wind_gusts_10m",
	}
	hourlyVars = currentVars
	dailyVars  = []string{
		"weather_code", "temperature_2m_max", "temperature_2m_min", "apparent_temperature_max", "apparent_temperature_min",
		"rain_sum", "showers_sum", "snowfall_sum", "wind_speed_10m_max", "wind_gusts_10m_max", "wind_direction_10m_dominant",
	}
)

// Config controls endpoints, throttling and retries.
type Config struct {
	GeocodeURL        string
	ForecastURL       string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
	RetryBackoff      time.Duration
}

// Client talks to the open-meteo geocoding and forecast APIs.
type Client struct {
	geocodeURL  string
	forecastURL string
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxRetries  int
	backoff     time.Duration
	now         func() time.Time
}

var (
	_ forecast.Geocoder = (*Client)(nil)
	_ forecast.Source   = (*Client)(nil)
)

// NewClient builds an API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &Client{
		geocodeURL:  firstNonEmpty(cfg.GeocodeURL, defaultGeocodeURL),
		forecastURL: firstNonEmpty(cfg.ForecastURL, defaultForecastURL),
		httpClient:  &http.Client{Timeout: timeout},
		limiter:     rate.NewLimiter(limit, burst),
		maxRetries:  retries,
		backoff:     cfg.RetryBackoff,
		now:         time.Now,
	}
}

// Geocode resolves a place name to its best matching coordinates.
func (c *Client) Geocode(ctx context.Context, name string) (forecast.Location, bool, error) {
	params := url.Values{}
	params.Set("name", strings.TrimSpace(name))
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	var raw geocodeResponse
	if err := c.getJSON(ctx, c.geocodeURL+"?"+params.Encode(), &raw); err != nil {
		return forecast.Location{}, false, err
	}
	if len(raw.Results) == 0 {
		return forecast.Location{}, false, nil
	}
	r := raw.Results[0]
	return forecast.Location{
		Name:      r.Name,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Timezone:  r.Timezone,
	}, true, nil
}

// Fetch retrieves the forecast block described by req.
func (c *Client) Fetch(ctx context.Context, req forecast.FetchRequest) (forecast.Forecast, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(req.Location.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(req.Location.Longitude, 'f', -1, 64))
	params.Set("timezone", "auto")
	params.Set("wind_speed_unit", "ms")
	switch req.Granularity {
	case forecast.GranularityCurrent:
		params.Set("current", strings.Join(currentVars, ","))
	case forecast.GranularityHourly:
		params.Set("hourly", strings.Join(hourlyVars, ","))
		params.Set("forecast_days", strconv.Itoa(req.Days))
	case forecast.GranularityDaily:
		params.Set("daily", strings.Join(dailyVars, ","))
		params.Set("forecast_days", strconv.Itoa(req.Days))
	default:
		return forecast.Forecast{}, fmt.Errorf("unsupported granularity %q", req.Granularity)
	}

	var raw forecastResponse
	if err := c.getJSON(ctx, c.forecastURL+"?"+params.Encode(), &raw); err != nil {
		return forecast.Forecast{}, err
	}
	out, err := raw.normalize()
	if err != nil {
		return forecast.Forecast{}, fmt.Errorf("decode forecast response: %w", err)
	}
	out.FetchedAt = c.now().UTC()
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dst any) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, c.backoff*time.Duration(1<<(attempt-1))); err != nil {
				return err
			}
		}
		body, retryable, err := c.get(ctx, endpoint)
		if err == nil {
			if err := json.Unmarshal(body, dst); err != nil {
				return fmt.Errorf("decode open-meteo response: %w", err)
			}
			return nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			break
		}
	}
	return lastErr
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build open-meteo request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("open-meteo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retryable, fmt.Errorf("open-meteo request error: status=%d body=%s", resp.StatusCode, string(payload))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read open-meteo response: %w", err)
	}
	return body, false, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimRight(strings.TrimSpace(v), "/"); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
