package prosenlp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-wizard/internal/domain/dialogue"
)

func TestParseDropsPunctuationTokens(t *testing.T) {
	parsed, err := NewParser().Parse(context.Background(), "Will there be rain tomorrow?")
	require.NoError(t, err)
	require.Contains(t, parsed.Tokens, "rain")
	require.Contains(t, parsed.Tokens, "tomorrow")
	require.NotContains(t, parsed.Tokens, "?")
	require.NotNil(t, parsed.Entities)
}

func TestParseHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewParser().Parse(ctx, "rain in Paris")
	require.ErrorIs(t, err, context.Canceled)
}

func TestPunctuationOnly(t *testing.T) {
	require.True(t, punctuationOnly("?!"))
	require.True(t, punctuationOnly("$"))
	require.False(t, punctuationOnly("Paris"))
	require.False(t, punctuationOnly("'s"))
}

func TestParseTagsPlaceInSentence(t *testing.T) {
	parsed, err := NewParser().Parse(context.Background(), "What's the weather in London tomorrow?")
	require.NoError(t, err)
	require.Equal(t, []string{"London"}, dialogue.ExtractLocations(parsed.Entities))
}

func TestParsePromotesBarePlaceReply(t *testing.T) {
	cases := map[string][]string{
		"Paris":           {"Paris"},
		"paris":           {"Paris"},
		"In Paris":        {"Paris"},
		"Paris, please.":  {"Paris"},
		"thanks":          {},
		"rain":            {},
		"tell me a joke":  {},
		"what's the wind": {},
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			parsed, err := NewParser().Parse(context.Background(), in)
			require.NoError(t, err)
			require.Equal(t, want, dialogue.ExtractLocations(parsed.Entities))
		})
	}
}

func TestReplyPlace(t *testing.T) {
	place, ok := replyPlace([]string{"in", "San", "Francisco"})
	require.True(t, ok)
	require.Equal(t, "San Francisco", place)

	place, ok = replyPlace([]string{"saint-étienne"})
	require.True(t, ok)
	require.Equal(t, "Saint-étienne", place)

	_, ok = replyPlace([]string{"route", "66"})
	require.False(t, ok)
	_, ok = replyPlace([]string{"one", "two", "three", "four", "five"})
	require.False(t, ok)
	_, ok = replyPlace([]string{"the", "weather", "please"})
	require.False(t, ok)
	_, ok = replyPlace(nil)
	require.False(t, ok)
}
