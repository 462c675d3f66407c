package dialogue

import (
	"time"

	"github.com/google/uuid"
)

// WeatherType is a canonical weather attribute a user can ask about.
type WeatherType string

const (
	TypeWeather     WeatherType = "weather"
	TypeTemperature WeatherType = "temperature"
	TypeRain        WeatherType = "rain"
	TypeSnow        WeatherType = "snow"
	TypeWind        WeatherType = "wind"
	TypePressure    WeatherType = "pressure"
	TypeHumidity    WeatherType = "humidity"
)

// Vocabulary lists every supported weather attribute.
var Vocabulary = []WeatherType{
	TypeWeather,
	TypeTemperature,
	TypeRain,
	TypeSnow,
	TypeWind,
	TypePressure,
	TypeHumidity,
}

// ForecastPeriod is the time horizon of a weather request.
type ForecastPeriod string

const (
	PeriodCurrent                ForecastPeriod = "current"
	PeriodToday                  ForecastPeriod = "today"
	PeriodTomorrow               ForecastPeriod = "tomorrow"
	PeriodDayAfterTomorrow       ForecastPeriod = "day after tomorrow"
	PeriodTodayHourly            ForecastPeriod = "today hourly"
	PeriodTomorrowHourly         ForecastPeriod = "tomorrow hourly"
	PeriodDayAfterTomorrowHourly ForecastPeriod = "day after tomorrow hourly"
	PeriodWeek                   ForecastPeriod = "week"
)

// Hourly reports whether the period asks for an hour by hour breakdown.
func (p ForecastPeriod) Hourly() bool {
	switch p {
	case PeriodTodayHourly, PeriodTomorrowHourly, PeriodDayAfterTomorrowHourly:
		return true
	default:
		return false
	}
}

// DayOffset returns how many days after today the period starts.
func (p ForecastPeriod) DayOffset() int {
	switch p {
	case PeriodTomorrow, PeriodTomorrowHourly:
		return 1
	case PeriodDayAfterTomorrow, PeriodDayAfterTomorrowHourly:
		return 2
	default:
		return 0
	}
}

// LabelGPE marks geopolitical entities (cities, countries) in parser output.
const LabelGPE = "GPE"

// Entity is a recognized span of text with its semantic label.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// ParsedUtterance is what the parser collaborator returns for one utterance.
type ParsedUtterance struct {
	Tokens   []string
	Entities []Entity
}

// Query carries resolved slots to the weather collaborator.
type Query struct {
	Period    ForecastPeriod
	Types     []WeatherType
	Locations []string
}

// Outcome describes how a turn was resolved.
type Outcome string

const (
	OutcomeForecast           Outcome = "forecast"
	OutcomeClarify            Outcome = "clarify"
	OutcomeChat               Outcome = "chat"
	OutcomeGiveUp             Outcome = "give_up"
	OutcomeWeatherUnavailable Outcome = "weather_unavailable"
)

// Slots is the slot snapshot used to produce a turn's response.
type Slots struct {
	Types     []WeatherType  `json:"types"`
	Locations []string       `json:"locations"`
	Period    ForecastPeriod `json:"period"`
}

// Request is one incoming user turn.
type Request struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// Response is returned to the host after a turn.
type Response struct {
	SessionID string  `json:"sessionId"`
	Message   string  `json:"message"`
	Outcome   Outcome `json:"outcome"`
	Slots     Slots   `json:"slots"`
}

// Turn is a transcript entry.
type Turn struct {
	ID        uuid.UUID `json:"id"`
	SessionID string    `json:"sessionId"`
	Utterance string    `json:"utterance"`
	Response  string    `json:"response"`
	Outcome   Outcome   `json:"outcome"`
	Slots     Slots     `json:"slots"`
	CreatedAt time.Time `json:"createdAt"`
}

// Config holds the dialogue knobs.
type Config struct {
	ClarificationPrompt string
	GiveUpMessage       string
	UnavailableMessage  string
	MaxLocationPrompts  int
	SessionTTL          time.Duration
	HistoryLimit        int
}

const (
	// DefaultClarificationPrompt asks the user for the missing location slot.
	DefaultClarificationPrompt = "In what location do you want to know the weather?"
	DefaultGiveUpMessage       = "Sorry, I still could not find a place in that. Ask me about the weather again whenever you like."
	DefaultUnavailableMessage  = "Sorry, I could not retrieve the weather for {location} right now."

	// LocationPlaceholder is replaced with the requested place in UnavailableMessage.
	LocationPlaceholder = "{location}"
)
