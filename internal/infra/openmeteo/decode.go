package openmeteo

import (
	"errors"
	"fmt"
	"time"

	"github.com/yanqian/weather-wizard/internal/domain/forecast"
)

const (
	localMinute = "2006-01-02T15:04"
	localDate   = "2006-01-02"
)

var errLength = errors.New("series length mismatch")

type geocodeResponse struct {
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

type forecastResponse struct {
	Latitude         float64       `json:"latitude"`
	Longitude        float64       `json:"longitude"`
	Timezone         string        `json:"timezone"`
	TimezoneAbbr     string        `json:"timezone_abbreviation"`
	UTCOffsetSeconds int           `json:"utc_offset_seconds"`
	Current          *currentBlock `json:"current"`
	Hourly           *hourlyBlock  `json:"hourly"`
	Daily            *dailyBlock   `json:"daily"`
}

type currentBlock struct {
	Time                string  `json:"time"`
	Temperature         float64 `json:"temperature_2m"`
	Humidity            float64 `json:"relative_humidity_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	Rain                float64 `json:"rain"`
	Showers             float64 `json:"showers"`
	Snowfall            float64 `json:"snowfall"`
	WeatherCode         int     `json:"weather_code"`
	Pressure            float64 `json:"surface_pressure"`
	WindSpeed           float64 `json:"wind_speed_10m"`
	WindDirection       float64 `json:"wind_direction_10m"`
	WindGusts           float64 `json:"wind_gusts_10m"`
}

type hourlyBlock struct {
	Time                []string  `json:"time"`
	Temperature         []float64 `json:"temperature_2m"`
	Humidity            []float64 `json:"relative_humidity_2m"`
	ApparentTemperature []float64 `json:"apparent_temperature"`
	Rain                []float64 `json:"rain"`
	Showers             []float64 `json:"showers"`
	Snowfall            []float64 `json:"snowfall"`
	WeatherCode         []int     `json:"weather_code"`
	Pressure            []float64 `json:"surface_pressure"`
	WindSpeed           []float64 `json:"wind_speed_10m"`
	WindDirection       []float64 `json:"wind_direction_10m"`
	WindGusts           []float64 `json:"wind_gusts_10m"`
}

type dailyBlock struct {
	Time                   []string  `json:"time"`
	WeatherCode            []int     `json:"weather_code"`
	TemperatureMax         []float64 `json:"temperature_2m_max"`
	TemperatureMin         []float64 `json:"temperature_2m_min"`
	ApparentTemperatureMax []float64 `json:"apparent_temperature_max"`
	ApparentTemperatureMin []float64 `json:"apparent_temperature_min"`
	RainSum                []float64 `json:"rain_sum"`
	ShowersSum             []float64 `json:"showers_sum"`
	SnowfallSum            []float64 `json:"snowfall_sum"`
	WindSpeedMax           []float64 `json:"wind_speed_10m_max"`
	WindGustsMax           []float64 `json:"wind_gusts_10m_max"`
	WindDirectionDominant  []float64 `json:"wind_direction_10m_dominant"`
}

func (r forecastResponse) normalize() (forecast.Forecast, error) {
	zone := time.FixedZone(r.TimezoneAbbr, r.UTCOffsetSeconds)
	out := forecast.Forecast{
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Timezone:  r.Timezone,
	}

	if c := r.Current; c != nil {
		ts, err := time.ParseInLocation(localMinute, c.Time, zone)
		if err != nil {
			return out, fmt.Errorf("current time %q: %w", c.Time, err)
		}
		out.Current = &forecast.Current{
			Time:                ts,
			Temperature:         c.Temperature,
			ApparentTemperature: c.ApparentTemperature,
			Humidity:            c.Humidity,
			Rain:                c.Rain,
			Showers:             c.Showers,
			Snowfall:            c.Snowfall,
			WeatherCode:         c.WeatherCode,
			Pressure:            c.Pressure,
			WindSpeed:           c.WindSpeed,
			WindDirection:       c.WindDirection,
			WindGusts:           c.WindGusts,
		}
	}

	if h := r.Hourly; h != nil {
		n := len(h.Time)
		if !sameLength(n, len(h.Temperature), len(h.Humidity), len(h.ApparentTemperature), len(h.Rain), len(h.Showers),
			len(h.Snowfall), len(h.WeatherCode), len(h.Pressure), len(h.WindSpeed), len(h.WindDirection), len(h.WindGusts)) {
			return out, fmt.Errorf("hourly: %w", errLength)
		}
		out.Hourly = make([]forecast.HourlyItem, 0, n)
		for i := 0; i < n; i++ {
			ts, err := time.ParseInLocation(localMinute, h.Time[i], zone)
			if err != nil {
				return out, fmt.Errorf("hourly time %q: %w", h.Time[i], err)
			}
			out.Hourly = append(out.Hourly, forecast.HourlyItem{
				Time:                ts,
				Temperature:         h.Temperature[i],
				ApparentTemperature: h.ApparentTemperature[i],
				Humidity:            h.Humidity[i],
				Rain:                h.Rain[i],
				Showers:             h.Showers[i],
				Snowfall:            h.Snowfall[i],
				WeatherCode:         h.WeatherCode[i],
				Pressure:            h.Pressure[i],
				WindSpeed:           h.WindSpeed[i],
				WindDirection:       h.WindDirection[i],
				WindGusts:           h.WindGusts[i],
			})
		}
	}

	if d := r.Daily; d != nil {
		n := len(d.Time)
		if !sameLength(n, len(d.WeatherCode), len(d.TemperatureMax), len(d.TemperatureMin), len(d.ApparentTemperatureMax),
			len(d.ApparentTemperatureMin), len(d.RainSum), len(d.ShowersSum), len(d.SnowfallSum), len(d.WindSpeedMax),
			len(d.WindGustsMax), len(d.WindDirectionDominant)) {
			return out, fmt.Errorf("daily: %w", errLength)
		}
		out.Daily = make([]forecast.DailyItem, 0, n)
		for i := 0; i < n; i++ {
			date, err := time.ParseInLocation(localDate, d.Time[i], zone)
			if err != nil {
				return out, fmt.Errorf("daily date %q: %w", d.Time[i], err)
			}
			out.Daily = append(out.Daily, forecast.DailyItem{
				Date:                   date,
				WeatherCode:            d.WeatherCode[i],
				TemperatureMax:         d.TemperatureMax[i],
				TemperatureMin:         d.TemperatureMin[i],
				ApparentTemperatureMax: d.ApparentTemperatureMax[i],
				ApparentTemperatureMin: d.ApparentTemperatureMin[i],
				RainSum:                d.RainSum[i],
				ShowersSum:             d.ShowersSum[i],
				SnowfallSum:            d.SnowfallSum[i],
				WindSpeedMax:           d.WindSpeedMax[i],
				WindGustsMax:           d.WindGustsMax[i],
				WindDirectionDominant:  d.WindDirectionDominant[i],
			})
		}
	}
	return out, nil
}

func sameLength(n int, others ...int) bool {
	for _, o := range others {
		if o != n {
			return false
		}
	}
	return true
}
