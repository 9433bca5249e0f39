package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidechat/tidechat/internal/types"
)

const (
	// anthropicVersion pins the Messages API wire format.
	anthropicVersion = "2023-06-01"

	// anthropicMaxTokens is required by the Messages API.
	anthropicMaxTokens = 4000
)

// Anthropic is the Messages API dialect: x-api-key header auth (no bearer
// token), content-block response shape, typed SSE event envelopes.
type Anthropic struct{}

// Name returns the family identifier.
func (Anthropic) Name() string { return "anthropic" }

// anthropicRequest is the Messages API request body.
type anthropicRequest struct {
	Model     string                  `json:"model"`
	MaxTokens int                     `json:"max_tokens"`
	Messages  []types.UpstreamMessage `json:"messages"`
	Stream    bool                    `json:"stream,omitempty"`
}

// NewRequest builds a Messages API request authenticated via x-api-key.
func (Anthropic) NewRequest(ctx context.Context, p *Profile, fullPrompt string, stream bool) (*http.Request, error) {
	body := anthropicRequest{
		Model:     p.Model,
		MaxTokens: anthropicMaxTokens,
		Messages:  []types.UpstreamMessage{{Role: "user", Content: fullPrompt}},
		Stream:    stream,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	return req, nil
}

// ExtractText reads the first content block's text.
func (Anthropic) ExtractText(body []byte) (string, error) {
	var resp types.AnthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("malformed messages response: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("messages response has no content blocks")
	}
	return resp.Content[0].Text, nil
}

// ExtractDelta parses one SSE event payload. Text arrives in
// content_block_delta events; message_stop terminates the stream. Other
// event types (message_start, ping, content_block_stop...) carry no text.
func (Anthropic) ExtractDelta(data []byte) (string, bool) {
	var event types.AnthropicStreamEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return "", false
	}

	switch event.Type {
	case "content_block_delta":
		if event.Delta != nil && event.Delta.Type == "text_delta" {
			return event.Delta.Text, false
		}
	case "message_stop":
		return "", true
	}
	return "", false
}
