package http

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/yanqian/weather-wizard/pkg/errors"
	"github.com/yanqian/weather-wizard/pkg/util"
)

// SessionTokens issues and verifies signed tokens carrying a conversation id.
type SessionTokens struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

type sessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// NewSessionTokens builds a token codec. An empty secret generates an ephemeral one.
func NewSessionTokens(secret string, ttl time.Duration, issuer string) (*SessionTokens, error) {
	key := []byte(secret)
	if len(key) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		key = []byte(hex.EncodeToString(buf))
	}
	if ttl <= 0 {
		return nil, errors.New("session token ttl must be positive")
	}
	return &SessionTokens{secret: key, ttl: ttl, issuer: issuer, now: util.NowUTC}, nil
}

// Issue signs a token for sessionID.
func (t *SessionTokens) Issue(sessionID uuid.UUID) (string, error) {
	now := t.now()
	claims := sessionClaims{
		SessionID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   sessionID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns the session id it carries.
func (t *SessionTokens) Parse(token string) (uuid.UUID, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return uuid.Nil, apperrors.Wrap(apperrors.CodeUnauthorized, "session token missing", nil)
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, opts...)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(apperrors.CodeUnauthorized, "session token invalid", err)
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, apperrors.Wrap(apperrors.CodeUnauthorized, "session token invalid", nil)
	}
	id, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(apperrors.CodeUnauthorized, "session id malformed", err)
	}
	return id, nil
}
