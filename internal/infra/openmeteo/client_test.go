package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-wizard/internal/domain/forecast"
)

func TestGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Paris", r.URL.Query().Get("name"))
		require.Equal(t, "1", r.URL.Query().Get("count"))
		_, _ = w.Write([]byte(`{"results":[{"name":"Paris","country":"France","latitude":48.85,"longitude":2.35,"timezone":"Europe/Paris"}]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{GeocodeURL: srv.URL})
	loc, found, err := client.Geocode(context.Background(), "Paris")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "France", loc.Country)
	require.Equal(t, 48.85, loc.Latitude)
}

func TestGeocodeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"generationtime_ms":0.5}`))
	}))
	defer srv.Close()

	_, found, err := NewClient(Config{GeocodeURL: srv.URL}).Geocode(context.Background(), "Atlantis")
	require.NoError(t, err)
	require.False(t, found)
}

func TestFetchCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "52.52", q.Get("latitude"))
		require.Equal(t, "ms", q.Get("wind_speed_unit"))
		require.NotEmpty(t, q.Get("current"))
		require.Empty(t, q.Get("daily"))
		_, _ = w.Write([]byte(`{"latitude":52.52,"longitude":13.41,"timezone":"Europe/Berlin","timezone_abbreviation":"CEST","utc_offset_seconds":7200,
			"current":{"time":"2024-07-01T12:15","temperature_2m":21.4,"apparent_temperature":20.1,"weather_code":3,"wind_speed_10m":4.2}}`))
	}))
	defer srv.Close()

	f, err := NewClient(Config{ForecastURL: srv.URL}).Fetch(context.Background(), forecast.FetchRequest{
		Location:    forecast.Location{Latitude: 52.52, Longitude: 13.41},
		Granularity: forecast.GranularityCurrent,
		Days:        1,
	})
	require.NoError(t, err)
	require.NotNil(t, f.Current)
	require.Equal(t, 21.4, f.Current.Temperature)
	require.Equal(t, 3, f.Current.WeatherCode)
	_, offset := f.Current.Time.Zone()
	require.Equal(t, 7200, offset)
	require.Equal(t, 12, f.Current.Time.Hour())
}

func TestFetchDaily(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "7", r.URL.Query().Get("forecast_days"))
		_, _ = w.Write([]byte(`{"utc_offset_seconds":0,"daily":{"time":["2024-07-01","2024-07-02"],
			"weather_code":[0,61],"temperature_2m_max":[20,18],"temperature_2m_min":[10,9],
			"apparent_temperature_max":[19,17],"apparent_temperature_min":[9,8],"rain_sum":[0,4.2],"showers_sum":[0,1],
			"snowfall_sum":[0,0],"wind_speed_10m_max":[3,6],"wind_gusts_10m_max":[5,11],"wind_direction_10m_dominant":[270,180]}}`))
	}))
	defer srv.Close()

	f, err := NewClient(Config{ForecastURL: srv.URL}).Fetch(context.Background(), forecast.FetchRequest{
		Granularity: forecast.GranularityDaily,
		Days:        7,
	})
	require.NoError(t, err)
	require.Len(t, f.Daily, 2)
	require.Equal(t, 4.2, f.Daily[1].RainSum)
	require.Equal(t, time.July, f.Daily[1].Date.Month())
}

func TestFetchRejectsRaggedSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"daily":{"time":["2024-07-01","2024-07-02"],"weather_code":[0]}}`))
	}))
	defer srv.Close()

	_, err := NewClient(Config{ForecastURL: srv.URL}).Fetch(context.Background(), forecast.FetchRequest{Granularity: forecast.GranularityDaily, Days: 3})
	require.ErrorIs(t, err, errLength)
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"name":"Oslo"}]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{GeocodeURL: srv.URL, MaxRetries: 5, RetryBackoff: time.Millisecond})
	_, found, err := client.Geocode(context.Background(), "Oslo")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int32(3), calls.Load())
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "bad", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(Config{GeocodeURL: srv.URL, MaxRetries: 5, RetryBackoff: time.Millisecond})
	_, _, err := client.Geocode(context.Background(), "Oslo")
	require.Error(t, err)
	require.Equal(t, int32(1), calls.Load())
}
