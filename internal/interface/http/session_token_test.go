package http

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/weather-wizard/pkg/errors"
)

func TestSessionTokensRoundTrip(t *testing.T) {
	tokens, err := NewSessionTokens("test-secret-0123456789", time.Hour, "weatherwizard")
	require.NoError(t, err)
	id := uuid.New()

	token, err := tokens.Issue(id)
	require.NoError(t, err)
	got, err := tokens.Parse(token)
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestSessionTokensRejectExpired(t *testing.T) {
	tokens, err := NewSessionTokens("test-secret-0123456789", time.Minute, "")
	require.NoError(t, err)
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return now }

	token, err := tokens.Issue(uuid.New())
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)

	_, err = tokens.Parse(token)
	require.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))
}

func TestSessionTokensRejectForeignSecret(t *testing.T) {
	issuer, err := NewSessionTokens("first-secret-0123456789", time.Hour, "")
	require.NoError(t, err)
	verifier, err := NewSessionTokens("second-secret-0123456789", time.Hour, "")
	require.NoError(t, err)

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)
	_, err = verifier.Parse(token)
	require.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))
}

func TestSessionTokensEphemeralSecret(t *testing.T) {
	tokens, err := NewSessionTokens("", time.Hour, "")
	require.NoError(t, err)
	token, err := tokens.Issue(uuid.New())
	require.NoError(t, err)
	_, err = tokens.Parse(token)
	require.NoError(t, err)
}

func TestSessionLocksSerializeAndRelease(t *testing.T) {
	locks := newSessionLocks()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("s1")
			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			active--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()
	require.Equal(t, 1, maxSeen)
	require.Zero(t, locks.size())
}
