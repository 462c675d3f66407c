package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/weather-wizard/internal/domain/dialogue"
)

const sessionTokenHeader = "X-Session-Token"

type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

type messageReply struct {
	SessionToken string           `json:"sessionToken"`
	SessionID    string           `json:"sessionId"`
	Message      string           `json:"message"`
	Outcome      dialogue.Outcome `json:"outcome"`
	Slots        dialogue.Slots   `json:"slots"`
}

type turnsReply struct {
	SessionID string          `json:"sessionId"`
	Turns     []dialogue.Turn `json:"turns"`
}

type apiError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *apiClient) Send(ctx context.Context, token, message string) (messageReply, error) {
	var out messageReply
	body, err := json.Marshal(map[string]string{"message": message, "sessionToken": token})
	if err != nil {
		return out, err
	}
	err = c.do(ctx, http.MethodPost, "/api/v1/messages", token, bytes.NewReader(body), &out)
	return out, err
}

func (c *apiClient) Reset(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/sessions", token, nil, nil)
}

func (c *apiClient) Turns(ctx context.Context, token string, limit int) (turnsReply, error) {
	var out turnsReply
	path := "/api/v1/sessions/turns"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	err := c.do(ctx, http.MethodGet, path, token, nil, &out)
	return out, err
}

func (c *apiClient) do(ctx context.Context, method, path, token string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(sessionTokenHeader, token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("contact server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var envelope struct {
			Error apiError `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4<<10)).Decode(&envelope)
		envelope.Error.Status = resp.StatusCode
		return &envelope.Error
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
