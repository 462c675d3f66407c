package prosenlp

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-wizard/internal/domain/dialogue"
	"github.com/yanqian/weather-wizard/internal/infra/sessionstore"
)

func TestClarificationRoundTripWithProse(t *testing.T) {
	weather := &recordingWeather{}
	svc := dialogue.NewService(
		dialogue.Config{MaxLocationPrompts: 2, SessionTTL: time.Hour},
		NewParser(),
		weather,
		fixedChat{},
		sessionstore.NewMemoryStore(),
		nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	ctx := context.Background()

	first, err := svc.HandleTurn(ctx, dialogue.Request{SessionID: "s1", Message: "What's the temperature?"})
	require.NoError(t, err)
	require.Equal(t, dialogue.OutcomeClarify, first.Outcome)
	require.Empty(t, weather.queries)

	second, err := svc.HandleTurn(ctx, dialogue.Request{SessionID: "s1", Message: "Paris"})
	require.NoError(t, err)
	require.Equal(t, dialogue.OutcomeForecast, second.Outcome)
	require.Equal(t, []dialogue.Query{{
		Period:    dialogue.PeriodCurrent,
		Types:     []dialogue.WeatherType{dialogue.TypeTemperature},
		Locations: []string{"Paris"},
	}}, weather.queries)

	third, err := svc.HandleTurn(ctx, dialogue.Request{SessionID: "s1", Message: "Berlin"})
	require.NoError(t, err)
	require.Equal(t, dialogue.OutcomeChat, third.Outcome)
	require.Len(t, weather.queries, 1)
}

func TestSentenceRequestDispatchesWithProse(t *testing.T) {
	weather := &recordingWeather{}
	svc := dialogue.NewService(
		dialogue.Config{MaxLocationPrompts: 2, SessionTTL: time.Hour},
		NewParser(),
		weather,
		fixedChat{},
		sessionstore.NewMemoryStore(),
		nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	resp, err := svc.HandleTurn(context.Background(), dialogue.Request{SessionID: "s2", Message: "What's the weather in London tomorrow?"})
	require.NoError(t, err)
	require.Equal(t, dialogue.OutcomeForecast, resp.Outcome)
	require.Len(t, weather.queries, 1)
	require.Equal(t, []string{"London"}, weather.queries[0].Locations)
	require.Equal(t, dialogue.PeriodTomorrow, weather.queries[0].Period)
}

type recordingWeather struct {
	queries []dialogue.Query
}

func (w *recordingWeather) Respond(_ context.Context, q dialogue.Query) (string, error) {
	w.queries = append(w.queries, q)
	return "forecast for " + q.Locations[0], nil
}

type fixedChat struct{}

func (fixedChat) Reply(context.Context, string) (string, error) {
	return "let's talk about the weather", nil
}
