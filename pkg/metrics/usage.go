package metrics

import (
	"log/slog"
	"sync/atomic"
)

// TokenUsage captures LLM token counts used to satisfy a request.
type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens,omitempty"`
	TotalTokens      int `json:"totalTokens"`
}

// IsZero reports whether usage data is absent.
func (u TokenUsage) IsZero() bool {
	return u.PromptTokens == 0 && u.CompletionTokens == 0 && u.TotalTokens == 0
}

// LogValue renders usage as a group in structured logs.
func (u TokenUsage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("prompt", u.PromptTokens),
		slog.Int("completion", u.CompletionTokens),
		slog.Int("total", u.TotalTokens),
	)
}

// UsageCounter accumulates token usage across requests. Safe for concurrent use.
type UsageCounter struct {
	requests   atomic.Int64
	prompt     atomic.Int64
	completion atomic.Int64
}

// Add records one request's usage.
func (c *UsageCounter) Add(u TokenUsage) {
	c.requests.Add(1)
	c.prompt.Add(int64(u.PromptTokens))
	c.completion.Add(int64(u.CompletionTokens))
}

// Requests returns how many requests were recorded.
func (c *UsageCounter) Requests() int64 {
	return c.requests.Load()
}

// Total returns the accumulated usage.
func (c *UsageCounter) Total() TokenUsage {
	prompt := int(c.prompt.Load())
	completion := int(c.completion.Load())
	return TokenUsage{PromptTokens: prompt, CompletionTokens: completion, TotalTokens: prompt + completion}
}
