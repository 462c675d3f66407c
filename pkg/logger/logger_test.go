package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "debug", "").Debug("hello", "k", "v")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "weatherwizard", entry["service"])
	require.Equal(t, "hello", entry["msg"])
}

func TestNewWithWriterText(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "", "text").Info("hello")
	require.Contains(t, buf.String(), "service=weatherwizard")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	require.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
