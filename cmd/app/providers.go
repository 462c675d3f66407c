package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weather-wizard/internal/domain/dialogue"
	"github.com/yanqian/weather-wizard/internal/domain/forecast"
	"github.com/yanqian/weather-wizard/internal/infra/chatbot"
	"github.com/yanqian/weather-wizard/internal/infra/config"
	"github.com/yanqian/weather-wizard/internal/infra/forecastcache"
	"github.com/yanqian/weather-wizard/internal/infra/llm/chatgpt"
	"github.com/yanqian/weather-wizard/internal/infra/nlp/prosenlp"
	"github.com/yanqian/weather-wizard/internal/infra/openmeteo"
	"github.com/yanqian/weather-wizard/internal/infra/sessionstore"
	"github.com/yanqian/weather-wizard/internal/infra/transcript"
	httpiface "github.com/yanqian/weather-wizard/internal/interface/http"
)

func provideDialogueConfig(cfg *config.Config) dialogue.Config {
	return dialogue.Config{
		ClarificationPrompt: cfg.Dialogue.ClarificationPrompt,
		GiveUpMessage:       cfg.Dialogue.GiveUpMessage,
		UnavailableMessage:  cfg.Dialogue.UnavailableMessage,
		MaxLocationPrompts:  cfg.Dialogue.MaxLocationPrompts,
		SessionTTL:          cfg.Session.TTL,
		HistoryLimit:        cfg.Dialogue.HistoryLimit,
	}
}

func provideForecastConfig(cfg *config.Config) forecast.Config {
	return forecast.Config{CacheTTL: cfg.Weather.CacheTTL}
}

func provideParser() dialogue.Parser {
	return prosenlp.NewParser()
}

func provideOpenMeteoClient(cfg *config.Config) *openmeteo.Client {
	return openmeteo.NewClient(openmeteo.Config{
		GeocodeURL:        cfg.Weather.GeocodeURL,
		ForecastURL:       cfg.Weather.ForecastURL,
		Timeout:           cfg.Weather.Timeout,
		RequestsPerSecond: cfg.Weather.RequestsPerSecond,
		Burst:             cfg.Weather.Burst,
		MaxRetries:        cfg.Weather.MaxRetries,
		RetryBackoff:      cfg.Weather.RetryBackoff,
	})
}

func provideChatResponder(cfg *config.Config, logger *slog.Logger) (dialogue.ChatResponder, error) {
	corpus, err := chatbot.DefaultCorpus()
	if err != nil {
		return nil, err
	}
	var client chatbot.ChatClient
	if strings.TrimSpace(cfg.LLM.APIKey) != "" {
		gpt, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Timeout)
		if err != nil {
			return nil, err
		}
		client = gpt
		logger.Info("chat llm fallback enabled", "model", cfg.LLM.Model)
	} else {
		logger.Info("llm api key not set, replying from the small talk corpus only")
	}
	return chatbot.NewResponder(chatbot.Config{
		Model:        cfg.LLM.Model,
		Temperature:  cfg.LLM.Temperature,
		MaxTokens:    cfg.Chat.MaxTokens,
		SystemPrompt: cfg.Chat.SystemPrompt,
	}, corpus, client, logger), nil
}

// provideValkeyClient returns a nil client when valkey is disabled or unreachable.
func provideValkeyClient(cfg *config.Config, logger *slog.Logger) (valkey.Client, func()) {
	noop := func() {}
	if !cfg.Valkey.Enabled {
		return nil, noop
	}
	opt, err := buildValkeyOptions(cfg.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory stores", "error", err)
		return nil, noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory stores", "error", err)
		return nil, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory stores", "error", err)
		client.Close()
		return nil, noop
	}
	logger.Info("valkey enabled", "addr", cfg.Valkey.Addr)
	return client, client.Close
}

func provideSessionStore(client valkey.Client, logger *slog.Logger) dialogue.SessionStore {
	if client == nil {
		logger.Info("using memory session store")
		return sessionstore.NewMemoryStore()
	}
	return sessionstore.NewValkeyStore(client, "session")
}

func provideForecastCache(client valkey.Client, logger *slog.Logger) forecast.Cache {
	if client == nil {
		logger.Info("using memory forecast cache")
		return forecastcache.NewMemoryCache()
	}
	return forecastcache.NewValkeyCache(client, "forecast")
}

func provideTranscriptLog(cfg *config.Config, logger *slog.Logger) (dialogue.TranscriptLog, func()) {
	fallback, noop := transcript.NewMemoryLog(cfg.Transcript.MemoryCapacity), func() {}
	dsn := strings.TrimSpace(cfg.Transcript.DSN)
	if dsn == "" {
		logger.Info("transcript dsn not set, using memory transcript")
		return fallback, noop
	}
	if cfg.Transcript.AutoMigrate {
		if err := transcript.Migrate(dsn, logger); err != nil {
			logger.Error("transcript migration failed, using memory transcript", "error", err)
			return fallback, noop
		}
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory transcript", "error", err)
		return fallback, noop
	}
	if cfg.Transcript.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Transcript.MaxConns
	}
	if cfg.Transcript.MinConns > 0 {
		poolConfig.MinConns = cfg.Transcript.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory transcript", "error", err)
		return fallback, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory transcript", "error", err)
		pool.Close()
		return fallback, noop
	}
	logger.Info("postgres transcript enabled")
	return transcript.NewPostgresLog(pool), pool.Close
}

func provideSessionTokens(cfg *config.Config, logger *slog.Logger) (*httpiface.SessionTokens, error) {
	if cfg.Session.TokenSecret == "" {
		logger.Warn("session.tokenSecret not set, sessions will not survive a restart")
	}
	return httpiface.NewSessionTokens(cfg.Session.TokenSecret, cfg.Session.TokenTTL, cfg.Session.TokenIssuer)
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
