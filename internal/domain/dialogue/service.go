package dialogue

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/yanqian/weather-wizard/pkg/errors"
	"github.com/yanqian/weather-wizard/pkg/util"
)

// Service resolves conversational turns into weather answers, clarifications or chat.
type Service interface {
	HandleTurn(ctx context.Context, req Request) (Response, error)
	Reset(ctx context.Context, sessionID string) error
	History(ctx context.Context, sessionID string, limit int) ([]Turn, error)
}

type service struct {
	cfg        Config
	tracker    Tracker
	parser     Parser
	weather    WeatherResponder
	chat       ChatResponder
	sessions   SessionStore
	transcript TranscriptLog
	logger     *slog.Logger
	now        func() time.Time
}

// NewService wires the slot resolution orchestrator.
func NewService(cfg Config, parser Parser, weather WeatherResponder, chat ChatResponder, sessions SessionStore, transcript TranscriptLog, logger *slog.Logger) Service {
	if strings.TrimSpace(cfg.ClarificationPrompt) == "" {
		cfg.ClarificationPrompt = DefaultClarificationPrompt
	}
	if strings.TrimSpace(cfg.GiveUpMessage) == "" {
		cfg.GiveUpMessage = DefaultGiveUpMessage
	}
	if strings.TrimSpace(cfg.UnavailableMessage) == "" {
		cfg.UnavailableMessage = DefaultUnavailableMessage
	}
	return &service{
		cfg:        cfg,
		tracker:    NewTracker(cfg.MaxLocationPrompts),
		parser:     parser,
		weather:    weather,
		chat:       chat,
		sessions:   sessions,
		transcript: transcript,
		logger:     logger.With("component", "dialogue.service"),
		now:        util.NowUTC,
	}
}

func (s *service) HandleTurn(ctx context.Context, req Request) (Response, error) {
	utterance := strings.TrimSpace(req.Message)
	if utterance == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "message cannot be empty", nil)
	}
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "session id cannot be empty", nil)
	}

	state, found, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load conversation state", err)
	}
	if !found {
		state = NewConversationState()
	}

	parsed, err := s.parser.Parse(ctx, utterance)
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeParse, "failed to parse message", err)
	}

	pending := s.tracker.Pending(state)
	var slots Slots
	if pending {
		slots = Slots{
			Types:     state.Saved.Types,
			Period:    state.Saved.Period,
			Locations: ExtractLocations(parsed.Entities),
		}
	} else {
		slots = Slots{
			Types:     ExtractTypes(parsed.Tokens),
			Locations: ExtractLocations(parsed.Entities),
			Period:    ClassifyPeriod(utterance),
		}
		s.tracker.Save(&state, slots.Types, slots.Period)
	}
	s.logger.Debug("slots resolved", "session_id", sessionID, "pending", pending, "types", slots.Types, "locations", slots.Locations, "period", slots.Period)

	message, outcome, err := s.decide(ctx, &state, utterance, slots)
	if err != nil {
		return Response{}, err
	}

	state.LastMessage = message
	state.UpdatedAt = s.now()
	if err := s.sessions.Put(ctx, sessionID, state, s.cfg.SessionTTL); err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save conversation state", err)
	}

	s.record(ctx, sessionID, utterance, message, outcome, slots)
	s.logger.Info("turn handled", "session_id", sessionID, "outcome", outcome, "phase", state.Phase)

	return Response{
		SessionID: sessionID,
		Message:   message,
		Outcome:   outcome,
		Slots:     slots,
	}, nil
}

func (s *service) decide(ctx context.Context, state *ConversationState, utterance string, slots Slots) (string, Outcome, error) {
	switch {
	case len(slots.Types) > 0 && len(slots.Locations) > 0:
		s.tracker.Resolve(state)
		return s.forecast(ctx, slots)
	case len(slots.Types) > 0:
		if !s.tracker.AskLocation(state) {
			s.tracker.GiveUp(state)
			return s.cfg.GiveUpMessage, OutcomeGiveUp, nil
		}
		return s.cfg.ClarificationPrompt, OutcomeClarify, nil
	default:
		s.tracker.Resolve(state)
		reply, err := s.chat.Reply(ctx, utterance)
		if err != nil {
			return "", "", apperrors.Wrap(apperrors.CodeChat, "chat responder failed", err)
		}
		return reply, OutcomeChat, nil
	}
}

func (s *service) forecast(ctx context.Context, slots Slots) (string, Outcome, error) {
	text, err := s.weather.Respond(ctx, Query{
		Period:    slots.Period,
		Types:     slots.Types,
		Locations: slots.Locations,
	})
	if err == nil && strings.TrimSpace(text) != "" {
		return text, OutcomeForecast, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", "", ctxErr
	}
	s.logger.Warn("weather retrieval failed", "location", slots.Locations[0], "period", slots.Period, "error", err)
	return strings.ReplaceAll(s.cfg.UnavailableMessage, LocationPlaceholder, slots.Locations[0]), OutcomeWeatherUnavailable, nil
}

func (s *service) record(ctx context.Context, sessionID, utterance, message string, outcome Outcome, slots Slots) {
	if s.transcript == nil {
		return
	}
	turn := Turn{
		ID:        uuid.New(),
		SessionID: sessionID,
		Utterance: utterance,
		Response:  message,
		Outcome:   outcome,
		Slots:     slots,
		CreatedAt: s.now(),
	}
	if err := s.transcript.Append(ctx, turn); err != nil {
		s.logger.Warn("failed to append transcript turn", "session_id", sessionID, "error", err)
	}
}

func (s *service) Reset(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "session id cannot be empty", nil)
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to delete conversation state", err)
	}
	s.logger.Info("session reset", "session_id", sessionID)
	return nil
}

func (s *service) History(ctx context.Context, sessionID string, limit int) ([]Turn, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "session id cannot be empty", nil)
	}
	if s.transcript == nil {
		return []Turn{}, nil
	}
	if limit <= 0 {
		limit = s.cfg.HistoryLimit
	}
	turns, err := s.transcript.ListBySession(ctx, sessionID, limit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to load transcript", err)
	}
	return turns, nil
}
