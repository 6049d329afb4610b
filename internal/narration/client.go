// Package narration produces flavor text for observations from an
// OpenAI-compatible chat completions service.
package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/samdwyer/cmdcrafter/internal/state"
)

// Completer returns the assistant reply for a conversation.
type Completer interface {
	Complete(ctx context.Context, messages []state.Message) (string, error)
}

// ClientConfig configures the chat completions endpoint.
type ClientConfig struct {
	Endpoint   string
	Model      string
	APIKey     string
	HTTPClient *http.Client
}

// Client calls a chat completions endpoint over HTTP.
type Client struct {
	cfg ClientConfig
}

// NewClient builds a client. A nil HTTPClient uses http.DefaultClient.
func NewClient(cfg ClientConfig) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Client{cfg: cfg}
}

type chatRequest struct {
	Model    string          `json:"model"`
	Messages []state.Message `json:"messages"`
}

// Complete sends the full conversation and returns the first choice's
// content. Transport errors, non-2xx statuses and responses without
// choices[0].message.content are all errors.
func (c *Client) Complete(ctx context.Context, messages []state.Message) (string, error) {
	endpoint := strings.TrimSpace(c.cfg.Endpoint)
	if endpoint == "" {
		return "", fmt.Errorf("narration endpoint is required")
	}

	requestBody, err := json.Marshal(chatRequest{Model: c.cfg.Model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if key := strings.TrimSpace(c.cfg.APIKey); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return "", fmt.Errorf("read completion error body: %w", err)
		}
		return "", fmt.Errorf("completion request status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Choices []struct {
			Message *struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(payload.Choices) == 0 || payload.Choices[0].Message == nil || payload.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("completion response missing choices[0].message.content")
	}
	return payload.Choices[0].Message.Content, nil
}
