package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yanqian/weather-wizard/internal/domain/dialogue"
)

const sessionTokenHeader = "X-Session-Token"

// Handler wires the HTTP transport to the dialogue service.
type Handler struct {
	dialogueSvc dialogue.Service
	tokens      *SessionTokens
	locks       *sessionLocks
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(dialogueSvc dialogue.Service, tokens *SessionTokens, logger *slog.Logger) *Handler {
	return &Handler{
		dialogueSvc: dialogueSvc,
		tokens:      tokens,
		locks:       newSessionLocks(),
		logger:      logger.With("component", "http.handler"),
	}
}

type messageRequest struct {
	Message      string `json:"message"`
	SessionToken string `json:"sessionToken"`
}

type messageResponse struct {
	SessionToken string           `json:"sessionToken"`
	SessionID    string           `json:"sessionId"`
	Message      string           `json:"message"`
	Outcome      dialogue.Outcome `json:"outcome"`
	Slots        dialogue.Slots   `json:"slots"`
}

// PostMessage runs one conversational turn, starting a session when none is given.
func (h *Handler) PostMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "message cannot be empty", nil))
		return
	}

	token := firstNonEmpty(req.SessionToken, c.GetHeader(sessionTokenHeader))
	sessionID := uuid.New()
	if token != "" {
		parsed, err := h.tokens.Parse(token)
		if err != nil {
			abortWithError(c, fromDomainError(err))
			return
		}
		sessionID = parsed
	}

	resp, err := h.handleTurn(c.Request.Context(), dialogue.Request{
		SessionID: sessionID.String(),
		Message:   req.Message,
	})
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	issued, err := h.tokens.Issue(sessionID)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "token_failed", "", err))
		return
	}
	c.Header(sessionTokenHeader, issued)
	c.JSON(http.StatusOK, messageResponse{
		SessionToken: issued,
		SessionID:    resp.SessionID,
		Message:      resp.Message,
		Outcome:      resp.Outcome,
		Slots:        resp.Slots,
	})
}

// ResetSession drops any pending clarification for the caller's session.
func (h *Handler) ResetSession(c *gin.Context) {
	sessionID, ok := h.requireSession(c)
	if !ok {
		return
	}
	if err := h.reset(c.Request.Context(), sessionID); err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTurns returns the caller's recent transcript.
func (h *Handler) ListTurns(c *gin.Context) {
	sessionID, ok := h.requireSession(c)
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer", err))
			return
		}
		limit = parsed
	}
	turns, err := h.dialogueSvc.History(c.Request.Context(), sessionID, limit)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID, "turns": turns})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleTurn and reset hold the session lock until the call returns or panics.
func (h *Handler) handleTurn(ctx context.Context, req dialogue.Request) (dialogue.Response, error) {
	defer h.locks.lock(req.SessionID)()
	return h.dialogueSvc.HandleTurn(ctx, req)
}

func (h *Handler) reset(ctx context.Context, sessionID string) error {
	defer h.locks.lock(sessionID)()
	return h.dialogueSvc.Reset(ctx, sessionID)
}

func (h *Handler) requireSession(c *gin.Context) (string, bool) {
	id, err := h.tokens.Parse(c.GetHeader(sessionTokenHeader))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return "", false
	}
	return id.String(), true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
