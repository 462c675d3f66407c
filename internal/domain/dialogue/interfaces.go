package dialogue

import (
	"context"
	"time"
)

// Parser tokenizes an utterance and recognizes named entities.
type Parser interface {
	Parse(ctx context.Context, text string) (ParsedUtterance, error)
}

// WeatherResponder retrieves weather data for resolved slots and renders it as text.
type WeatherResponder interface {
	Respond(ctx context.Context, q Query) (string, error)
}

// ChatResponder answers utterances that are not weather requests.
type ChatResponder interface {
	Reply(ctx context.Context, utterance string) (string, error)
}

// SessionStore persists conversation state between turns.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (ConversationState, bool, error)
	Put(ctx context.Context, sessionID string, state ConversationState, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}

// TranscriptLog records resolved turns.
type TranscriptLog interface {
	Append(ctx context.Context, turn Turn) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]Turn, error)
}
