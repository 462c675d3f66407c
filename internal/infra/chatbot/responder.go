package chatbot

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yanqian/weather-wizard/internal/domain/dialogue"
	"github.com/yanqian/weather-wizard/internal/infra/llm/chatgpt"
	"github.com/yanqian/weather-wizard/pkg/metrics"
)

const defaultSystemPrompt = "You are WeatherWizard, a friendly weather chatbot. Answer small talk in one or two short sentences " +
	"and steer the user towards asking about the weather in a city."

// ChatClient is the subset of the ChatGPT client the responder needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// Config tunes the LLM fallback.
type Config struct {
	Model        string
	Temperature  float32
	MaxTokens    int
	SystemPrompt string
}

// Responder answers non-weather utterances from the corpus, then the LLM.
type Responder struct {
	cfg    Config
	corpus *Corpus
	client ChatClient
	usage  metrics.UsageCounter
	logger *slog.Logger
}

var _ dialogue.ChatResponder = (*Responder)(nil)

// NewResponder builds a chat responder. client may be nil to run corpus only.
func NewResponder(cfg Config, corpus *Corpus, client ChatClient, logger *slog.Logger) *Responder {
	if strings.TrimSpace(cfg.SystemPrompt) == "" {
		cfg.SystemPrompt = defaultSystemPrompt
	}
	return &Responder{
		cfg:    cfg,
		corpus: corpus,
		client: client,
		logger: logger.With("component", "chatbot.responder"),
	}
}

// Reply returns a conversational answer. It never fails on LLM errors.
func (r *Responder) Reply(ctx context.Context, utterance string) (string, error) {
	if reply, ok := r.corpus.Match(utterance); ok {
		return reply, nil
	}
	if r.client == nil {
		return r.corpus.DefaultReply(), nil
	}

	resp, err := r.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       r.cfg.Model,
		Temperature: r.cfg.Temperature,
		MaxTokens:   r.cfg.MaxTokens,
		Messages: []chatgpt.Message{
			{Role: "system", Content: r.cfg.SystemPrompt},
			{Role: "user", Content: utterance},
		},
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		r.logger.Warn("llm reply failed, using default", "error", err)
		return r.corpus.DefaultReply(), nil
	}
	usage := resp.TokenUsage()
	r.usage.Add(usage)
	r.logger.Debug("llm reply", "model", r.cfg.Model, "usage", usage, "requests", r.usage.Requests())
	content := resp.FirstContent()
	if content == "" {
		return r.corpus.DefaultReply(), nil
	}
	return content, nil
}

// Usage reports accumulated LLM token usage.
func (r *Responder) Usage() metrics.TokenUsage {
	return r.usage.Total()
}
