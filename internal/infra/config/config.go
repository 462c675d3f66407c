package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "configs/config.yaml"

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http" envPrefix:"HTTP_"`
	Dialogue   DialogueConfig   `yaml:"dialogue" envPrefix:"DIALOGUE_"`
	LLM        LLMConfig        `yaml:"llm" envPrefix:"LLM_"`
	Chat       ChatConfig       `yaml:"chat" envPrefix:"CHAT_"`
	Weather    WeatherConfig    `yaml:"weather" envPrefix:"WEATHER_"`
	Session    SessionConfig    `yaml:"session" envPrefix:"SESSION_"`
	Transcript TranscriptConfig `yaml:"transcript" envPrefix:"TRANSCRIPT_"`
	Valkey     ValkeyConfig     `yaml:"valkey" envPrefix:"VALKEY_"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address" env:"ADDRESS"`
	ReadTimeout    time.Duration   `yaml:"readTimeout" env:"READ_TIMEOUT"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout" env:"WRITE_TIMEOUT"`
	ShutdownGrace  time.Duration   `yaml:"shutdownGrace" env:"SHUTDOWN_GRACE"`
	AllowedOrigins []string        `yaml:"allowedOrigins" env:"ALLOWED_ORIGINS" envSeparator:","`
	RateLimit      RateLimitConfig `yaml:"rateLimit" envPrefix:"RATE_LIMIT_"`
}

// RateLimitConfig drives the per client request limiter.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled" env:"ENABLED"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond" env:"RPS"`
	Burst             int     `yaml:"burst" env:"BURST"`
}

// DialogueConfig tunes the slot filling conversation.
type DialogueConfig struct {
	ClarificationPrompt string `yaml:"clarificationPrompt" env:"CLARIFICATION_PROMPT"`
	GiveUpMessage       string `yaml:"giveUpMessage" env:"GIVE_UP_MESSAGE"`
	UnavailableMessage  string `yaml:"unavailableMessage" env:"UNAVAILABLE_MESSAGE"`
	MaxLocationPrompts  int    `yaml:"maxLocationPrompts" env:"MAX_LOCATION_PROMPTS"`
	HistoryLimit        int    `yaml:"historyLimit" env:"HISTORY_LIMIT"`
}

// LLMConfig contains ChatGPT/OpenAI settings.
type LLMConfig struct {
	APIKey      string        `yaml:"apiKey" env:"API_KEY"`
	BaseURL     string        `yaml:"baseUrl" env:"BASE_URL"`
	Model       string        `yaml:"model" env:"MODEL"`
	Temperature float32       `yaml:"temperature" env:"TEMPERATURE"`
	Timeout     time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// ChatConfig shapes small talk replies.
type ChatConfig struct {
	SystemPrompt string `yaml:"systemPrompt" env:"SYSTEM_PROMPT"`
	MaxTokens    int    `yaml:"maxTokens" env:"MAX_TOKENS"`
}

// WeatherConfig controls the open-meteo client and forecast cache.
type WeatherConfig struct {
	GeocodeURL        string        `yaml:"geocodeUrl" env:"GEOCODE_URL"`
	ForecastURL       string        `yaml:"forecastUrl" env:"FORECAST_URL"`
	Timeout           time.Duration `yaml:"timeout" env:"TIMEOUT"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond" env:"RPS"`
	Burst             int           `yaml:"burst" env:"BURST"`
	MaxRetries        int           `yaml:"maxRetries" env:"MAX_RETRIES"`
	RetryBackoff      time.Duration `yaml:"retryBackoff" env:"RETRY_BACKOFF"`
	CacheTTL          time.Duration `yaml:"cacheTtl" env:"CACHE_TTL"`
}

// SessionConfig controls conversation state lifetime and session tokens.
type SessionConfig struct {
	TTL         time.Duration `yaml:"ttl" env:"TTL"`
	TokenSecret string        `yaml:"tokenSecret" env:"TOKEN_SECRET"`
	TokenTTL    time.Duration `yaml:"tokenTtl" env:"TOKEN_TTL"`
	TokenIssuer string        `yaml:"tokenIssuer" env:"TOKEN_ISSUER"`
}

// TranscriptConfig selects where dialogue turns are recorded.
type TranscriptConfig struct {
	DSN            string `yaml:"dsn" env:"DSN"`
	MaxConns       int32  `yaml:"maxConns" env:"MAX_CONNS"`
	MinConns       int32  `yaml:"minConns" env:"MIN_CONNS"`
	AutoMigrate    bool   `yaml:"autoMigrate" env:"AUTO_MIGRATE"`
	MemoryCapacity int    `yaml:"memoryCapacity" env:"MEMORY_CAPACITY"`
}

// ValkeyConfig enables shared session and forecast storage.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Addr    string `yaml:"addr" env:"ADDR"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(defaultConfigPath); err == nil {
		if err := hydrateFromFile(cfg, defaultConfigPath); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:       ":8080",
			ReadTimeout:   10 * time.Second,
			WriteTimeout:  30 * time.Second,
			ShutdownGrace: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerSecond: 2,
				Burst:             10,
			},
		},
		Dialogue: DialogueConfig{
			MaxLocationPrompts: 2,
			HistoryLimit:       50,
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
			Timeout:     30 * time.Second,
		},
		Chat: ChatConfig{
			MaxTokens: 120,
		},
		Weather: WeatherConfig{
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
			Burst:             5,
			MaxRetries:        5,
			RetryBackoff:      200 * time.Millisecond,
			CacheTTL:          time.Hour,
		},
		Session: SessionConfig{
			TTL:         30 * time.Minute,
			TokenTTL:    24 * time.Hour,
			TokenIssuer: "weatherwizard",
		},
		Transcript: TranscriptConfig{
			MaxConns:       4,
			AutoMigrate:    true,
			MemoryCapacity: 200,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Address) == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.ShutdownGrace < 0 {
		return errors.New("http.shutdownGrace cannot be negative")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerSecond <= 0 {
			return errors.New("http.rateLimit.requestsPerSecond must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.Dialogue.MaxLocationPrompts <= 0 {
		return errors.New("dialogue.maxLocationPrompts must be positive")
	}
	if c.Dialogue.HistoryLimit < 0 {
		return errors.New("dialogue.historyLimit cannot be negative")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.Weather.RequestsPerSecond < 0 {
		return errors.New("weather.requestsPerSecond cannot be negative")
	}
	if c.Weather.MaxRetries < 0 {
		return errors.New("weather.maxRetries cannot be negative")
	}
	if c.Weather.RetryBackoff < 0 {
		return errors.New("weather.retryBackoff cannot be negative")
	}
	if c.Weather.CacheTTL < 0 {
		return errors.New("weather.cacheTtl cannot be negative")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if c.Session.TokenTTL <= 0 {
		return errors.New("session.tokenTtl must be positive")
	}
	if c.Session.TokenSecret != "" && len(c.Session.TokenSecret) < 16 {
		return errors.New("session.tokenSecret must be at least 16 characters")
	}
	if c.Transcript.MinConns < 0 || c.Transcript.MaxConns < 0 {
		return errors.New("transcript connection limits cannot be negative")
	}
	if c.Valkey.Enabled && strings.TrimSpace(c.Valkey.Addr) == "" {
		return errors.New("valkey.addr cannot be empty when valkey is enabled")
	}
	return nil
}
