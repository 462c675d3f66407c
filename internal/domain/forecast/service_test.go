package forecast

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-wizard/internal/domain/dialogue"
	apperrors "github.com/yanqian/weather-wizard/pkg/errors"
)

func TestRespondUsesGeocodedCoordinates(t *testing.T) {
	geo := &stubGeocoder{locations: map[string]Location{"Paris": {Name: "Paris", Latitude: 48.85, Longitude: 2.35}}}
	src := &stubSource{forecast: Forecast{Current: &Current{Temperature: 21.5, ApparentTemperature: 20}}}
	svc := NewService(Config{CacheTTL: time.Hour}, geo, src, newMapCache(), discardLogger())

	text, err := svc.Respond(context.Background(), dialogue.Query{
		Period:    dialogue.PeriodCurrent,
		Types:     []dialogue.WeatherType{dialogue.TypeTemperature},
		Locations: []string{"Paris", "Berlin"},
	})
	require.NoError(t, err)
	require.Contains(t, text, "Paris")
	require.Contains(t, text, "21.5°C")
	require.Len(t, src.requests, 1)
	require.Equal(t, 48.85, src.requests[0].Location.Latitude)
	require.Equal(t, GranularityCurrent, src.requests[0].Granularity)
}

func TestRespondServesRepeatsFromCache(t *testing.T) {
	geo := &stubGeocoder{locations: map[string]Location{"Berlin": {Name: "Berlin", Latitude: 52.52, Longitude: 13.4}}}
	src := &stubSource{forecast: Forecast{Daily: sampleDaily(7)}}
	svc := NewService(Config{CacheTTL: time.Hour}, geo, src, newMapCache(), discardLogger())
	q := dialogue.Query{Period: dialogue.PeriodWeek, Types: []dialogue.WeatherType{dialogue.TypeWind}, Locations: []string{"Berlin"}}

	first, err := svc.Respond(context.Background(), q)
	require.NoError(t, err)
	second, err := svc.Respond(context.Background(), q)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Len(t, src.requests, 1)
	require.Equal(t, 7, src.requests[0].Days)
}

func TestRespondUnknownLocation(t *testing.T) {
	svc := NewService(Config{}, &stubGeocoder{}, &stubSource{}, nil, discardLogger())

	_, err := svc.Respond(context.Background(), dialogue.Query{Period: dialogue.PeriodToday, Locations: []string{"Atlantis"}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeLocationNotFound))
}

func TestRespondFetchFailure(t *testing.T) {
	geo := &stubGeocoder{locations: map[string]Location{"Paris": {Name: "Paris"}}}
	svc := NewService(Config{}, geo, &stubSource{err: errors.New("timeout")}, nil, discardLogger())

	_, err := svc.Respond(context.Background(), dialogue.Query{Period: dialogue.PeriodToday, Locations: []string{"Paris"}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeWeatherUnavailable))
}

func TestRespondEmptyPeriodData(t *testing.T) {
	geo := &stubGeocoder{locations: map[string]Location{"Paris": {Name: "Paris"}}}
	svc := NewService(Config{}, geo, &stubSource{forecast: Forecast{Daily: sampleDaily(1)}}, nil, discardLogger())

	_, err := svc.Respond(context.Background(), dialogue.Query{Period: dialogue.PeriodDayAfterTomorrow, Locations: []string{"Paris"}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeWeatherUnavailable))
}

func TestRespondRequiresLocation(t *testing.T) {
	svc := NewService(Config{}, &stubGeocoder{}, &stubSource{}, nil, discardLogger())

	_, err := svc.Respond(context.Background(), dialogue.Query{Period: dialogue.PeriodToday})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestCacheFailuresAreNotFatal(t *testing.T) {
	geo := &stubGeocoder{locations: map[string]Location{"Paris": {Name: "Paris"}}}
	src := &stubSource{forecast: Forecast{Current: &Current{}}}
	svc := NewService(Config{CacheTTL: time.Hour}, geo, src, brokenCache{}, discardLogger())

	_, err := svc.Respond(context.Background(), dialogue.Query{Period: dialogue.PeriodCurrent, Locations: []string{"Paris"}})
	require.NoError(t, err)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleDaily(n int) []DailyItem {
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	out := make([]DailyItem, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, DailyItem{
			Date:           start.AddDate(0, 0, i),
			TemperatureMin: float64(10 + i),
			TemperatureMax: float64(20 + i),
			WindSpeedMax:   float64(3 + i),
		})
	}
	return out
}

type stubGeocoder struct {
	locations map[string]Location
}

func (g *stubGeocoder) Geocode(_ context.Context, name string) (Location, bool, error) {
	loc, ok := g.locations[name]
	return loc, ok, nil
}

type stubSource struct {
	forecast Forecast
	err      error
	requests []FetchRequest
}

func (s *stubSource) Fetch(_ context.Context, req FetchRequest) (Forecast, error) {
	s.requests = append(s.requests, req)
	return s.forecast, s.err
}

type mapCache struct {
	items map[string]Forecast
}

func newMapCache() *mapCache {
	return &mapCache{items: map[string]Forecast{}}
}

func (c *mapCache) Get(_ context.Context, key string) (Forecast, bool, error) {
	f, ok := c.items[key]
	return f, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, f Forecast, _ time.Duration) error {
	c.items[key] = f
	return nil
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (Forecast, bool, error) {
	return Forecast{}, false, errors.New("cache down")
}

func (brokenCache) Set(context.Context, string, Forecast, time.Duration) error {
	return errors.New("cache down")
}
