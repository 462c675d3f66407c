package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.Error(t, err)

	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, 2, cfg.Dialogue.MaxLocationPrompts)
	require.Equal(t, 30*time.Minute, cfg.Session.TTL)
	require.Equal(t, time.Hour, cfg.Weather.CacheTTL)
	require.Equal(t, 5, cfg.Weather.MaxRetries)
	require.Equal(t, 200*time.Millisecond, cfg.Weather.RetryBackoff)
	require.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
dialogue:
  maxLocationPrompts: 3
weather:
  cacheTtl: 15m
`), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DIALOGUE_MAX_LOCATION_PROMPTS", "4")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("LLM_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, 4, cfg.Dialogue.MaxLocationPrompts)
	require.Equal(t, 15*time.Minute, cfg.Weather.CacheTTL)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, "sk-test", cfg.LLM.APIKey)
	require.Equal(t, 5, cfg.Weather.MaxRetries)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"empty address":   func(c *Config) { c.HTTP.Address = "" },
		"zero prompts":    func(c *Config) { c.Dialogue.MaxLocationPrompts = 0 },
		"negative ttl":    func(c *Config) { c.Weather.CacheTTL = -time.Second },
		"short secret":    func(c *Config) { c.Session.TokenSecret = "short" },
		"valkey no addr":  func(c *Config) { c.Valkey.Enabled = true },
		"rate limit zero": func(c *Config) { c.HTTP.RateLimit.RequestsPerSecond = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
