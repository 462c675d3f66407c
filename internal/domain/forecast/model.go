package forecast

import "time"

// Granularity selects which forecast block is requested upstream.
type Granularity string

const (
	GranularityCurrent Granularity = "current"
	GranularityHourly  Granularity = "hourly"
	GranularityDaily   Granularity = "daily"
)

// Location is a geocoded place.
type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// FetchRequest describes one upstream forecast call.
type FetchRequest struct {
	Location    Location
	Granularity Granularity
	Days        int
}

// Forecast is the normalized upstream payload.
type Forecast struct {
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Timezone  string       `json:"timezone"`
	Current   *Current     `json:"current,omitempty"`
	Hourly    []HourlyItem `json:"hourly,omitempty"`
	Daily     []DailyItem  `json:"daily,omitempty"`
	FetchedAt time.Time    `json:"fetchedAt"`
}

// Current holds the conditions at the time of the request.
type Current struct {
	Time                time.Time `json:"time"`
	Temperature         float64   `json:"temperature"`
	ApparentTemperature float64   `json:"apparentTemperature"`
	Humidity            float64   `json:"humidity"`
	Rain                float64   `json:"rain"`
	Showers             float64   `json:"showers"`
	Snowfall            float64   `json:"snowfall"`
	WeatherCode         int       `json:"weatherCode"`
	Pressure            float64   `json:"pressure"`
	WindSpeed           float64   `json:"windSpeed"`
	WindDirection       float64   `json:"windDirection"`
	WindGusts           float64   `json:"windGusts"`
}

// HourlyItem is one hour of forecast data.
type HourlyItem struct {
	Time                time.Time `json:"time"`
	Temperature         float64   `json:"temperature"`
	ApparentTemperature float64   `json:"apparentTemperature"`
	Humidity            float64   `json:"humidity"`
	Rain                float64   `json:"rain"`
	Showers             float64   `json:"showers"`
	Snowfall            float64   `json:"snowfall"`
	WeatherCode         int       `json:"weatherCode"`
	Pressure            float64   `json:"pressure"`
	WindSpeed           float64   `json:"windSpeed"`
	WindDirection       float64   `json:"windDirection"`
	WindGusts           float64   `json:"windGusts"`
}

// DailyItem is one day of aggregated forecast data.
type DailyItem struct {
	Date                   time.Time `json:"date"`
	WeatherCode            int       `json:"weatherCode"`
	TemperatureMax         float64   `json:"temperatureMax"`
	TemperatureMin         float64   `json:"temperatureMin"`
	ApparentTemperatureMax float64   `json:"apparentTemperatureMax"`
	ApparentTemperatureMin float64   `json:"apparentTemperatureMin"`
	RainSum                float64   `json:"rainSum"`
	ShowersSum             float64   `json:"showersSum"`
	SnowfallSum            float64   `json:"snowfallSum"`
	WindSpeedMax           float64   `json:"windSpeedMax"`
	WindGustsMax           float64   `json:"windGustsMax"`
	WindDirectionDominant  float64   `json:"windDirectionDominant"`
}

// Config holds runtime knobs for the forecast responder.
type Config struct {
	CacheTTL time.Duration
}
