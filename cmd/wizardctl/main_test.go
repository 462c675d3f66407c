package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	mu      sync.Mutex
	tokens  []string
	resets  int
	expired string
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/messages", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Message      string `json:"message"`
			SessionToken string `json:"sessionToken"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.tokens = append(f.tokens, r.Header.Get(sessionTokenHeader))
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if f.expired != "" && body.SessionToken == f.expired {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":"unauthorized","message":"session token expired"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"sessionToken": "tok-1",
			"sessionId":    "sid",
			"message":      "echo: " + body.Message,
			"outcome":      "chat",
		})
	})
	mux.HandleFunc("/api/v1/sessions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		f.mu.Lock()
		f.resets++
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func run(t *testing.T, server, tokenFile, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--server", server, "--token-file", tokenFile}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestChatStoresAndReusesToken(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()
	tokenFile := filepath.Join(t.TempDir(), "session")

	out, err := run(t, srv.URL, tokenFile, "", "chat", "hello", "there")
	require.NoError(t, err)
	require.Contains(t, out, "echo: hello there")

	token, err := loadToken(tokenFile)
	require.NoError(t, err)
	require.Equal(t, "tok-1", token)

	_, err = run(t, srv.URL, tokenFile, "", "chat", "again")
	require.NoError(t, err)
	require.Equal(t, []string{"", "tok-1"}, fake.tokens)
}

func TestChatRecoversFromExpiredToken(t *testing.T) {
	fake := &fakeServer{expired: "old"}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()
	tokenFile := filepath.Join(t.TempDir(), "session")
	require.NoError(t, saveToken(tokenFile, "old"))

	out, err := run(t, srv.URL, tokenFile, "", "chat", "hi")
	require.NoError(t, err)
	require.Contains(t, out, "echo: hi")
	require.Equal(t, []string{"old", ""}, fake.tokens)

	token, err := loadToken(tokenFile)
	require.NoError(t, err)
	require.Equal(t, "tok-1", token)
}

func TestReplHandlesCommands(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()
	tokenFile := filepath.Join(t.TempDir(), "session")

	out, err := run(t, srv.URL, tokenFile, "weather in Paris\n\n/reset\n/quit\nnever sent\n", "chat")
	require.NoError(t, err)
	require.Contains(t, out, "echo: weather in Paris")
	require.Contains(t, out, "session reset")
	require.NotContains(t, out, "never sent")
	require.Equal(t, 1, fake.resets)
	require.Len(t, fake.tokens, 1)
}

func TestResetWithoutSession(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	out, err := run(t, srv.URL, filepath.Join(t.TempDir(), "session"), "", "reset")
	require.NoError(t, err)
	require.Contains(t, out, "no session to reset")
	require.Zero(t, fake.resets)
}

func TestAPIErrorMessage(t *testing.T) {
	err := &apiError{Status: 400, Code: "invalid_request", Message: "message cannot be empty"}
	require.Equal(t, "message cannot be empty (invalid_request)", err.Error())
	require.Equal(t, "server returned 502", (&apiError{Status: 502}).Error())
}
