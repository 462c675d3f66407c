package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/weather-wizard/internal/domain/dialogue"
	apperrors "github.com/yanqian/weather-wizard/pkg/errors"
)

// Geocoder resolves a place name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, name string) (Location, bool, error)
}

// Source fetches raw forecast data for a location.
type Source interface {
	Fetch(ctx context.Context, req FetchRequest) (Forecast, error)
}

// Cache stores forecasts keyed by location and horizon.
type Cache interface {
	Get(ctx context.Context, key string) (Forecast, bool, error)
	Set(ctx context.Context, key string, forecast Forecast, ttl time.Duration) error
}

// Service answers resolved weather queries with formatted text.
type Service struct {
	cfg      Config
	geocoder Geocoder
	source   Source
	cache    Cache
	logger   *slog.Logger
}

var _ dialogue.WeatherResponder = (*Service)(nil)

// NewService wires up the forecast responder. cache may be nil.
func NewService(cfg Config, geocoder Geocoder, source Source, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		cfg:      cfg,
		geocoder: geocoder,
		source:   source,
		cache:    cache,
		logger:   logger.With("component", "forecast.service"),
	}
}

// Respond geocodes the first location, fetches the forecast and formats it.
func (s *Service) Respond(ctx context.Context, q dialogue.Query) (string, error) {
	if len(q.Locations) == 0 {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, "location is required", nil)
	}
	place := strings.TrimSpace(q.Locations[0])
	if place == "" {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, "location is required", nil)
	}

	loc, found, err := s.geocoder.Geocode(ctx, place)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeWeatherUnavailable, "geocoding failed", err)
	}
	if !found {
		return "", apperrors.Wrap(apperrors.CodeLocationNotFound, fmt.Sprintf("no location found for %q", place), nil)
	}

	gran, days := Plan(q.Period)
	req := FetchRequest{Location: loc, Granularity: gran, Days: days}
	key := CacheKey(req)

	forecast, hit := s.lookup(ctx, key)
	if !hit {
		forecast, err = s.source.Fetch(ctx, req)
		if err != nil {
			return "", apperrors.Wrap(apperrors.CodeWeatherUnavailable, "forecast fetch failed", err)
		}
		s.store(ctx, key, forecast)
	}
	s.logger.Debug("forecast resolved", "place", place, "granularity", gran, "days", days, "cacheHit", hit)

	text := Format(place, q.Period, q.Types, forecast)
	if text == "" {
		return "", apperrors.Wrap(apperrors.CodeWeatherUnavailable, "forecast has no data for the requested period", nil)
	}
	return text, nil
}

func (s *Service) lookup(ctx context.Context, key string) (Forecast, bool) {
	if s.cache == nil {
		return Forecast{}, false
	}
	forecast, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("forecast cache read failed", "key", key, "error", err)
		return Forecast{}, false
	}
	return forecast, ok
}

func (s *Service) store(ctx context.Context, key string, forecast Forecast) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, forecast, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("forecast cache write failed", "key", key, "error", err)
	}
}

// CacheKey identifies a forecast by rounded coordinates and horizon.
func CacheKey(req FetchRequest) string {
	return fmt.Sprintf("%.3f:%.3f:%s:%d", req.Location.Latitude, req.Location.Longitude, req.Granularity, req.Days)
}
