package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidechat/tidechat/internal/types"
)

// Streaming request parameters for the OpenAI dialect.
const (
	streamTemperature = 0.7
	streamMaxTokens   = 2000
)

// OpenAICompatible is the chat-completions dialect shared by DeepSeek and
// OpenAI: bearer-token auth, choices/message response shape, `data: ` SSE
// chunks with a [DONE] terminator.
type OpenAICompatible struct{}

// Name returns the family identifier.
func (OpenAICompatible) Name() string { return "openai" }

// openAIRequest is the chat-completions request body.
type openAIRequest struct {
	Model       string                  `json:"model"`
	Messages    []types.UpstreamMessage `json:"messages"`
	Stream      bool                    `json:"stream"`
	Temperature *float64                `json:"temperature,omitempty"`
	MaxTokens   *int                    `json:"max_tokens,omitempty"`
}

// NewRequest builds a chat-completions request with bearer auth.
func (OpenAICompatible) NewRequest(ctx context.Context, p *Profile, fullPrompt string, stream bool) (*http.Request, error) {
	body := openAIRequest{
		Model:    p.Model,
		Messages: []types.UpstreamMessage{{Role: "user", Content: fullPrompt}},
		Stream:   stream,
	}
	if stream {
		temp := streamTemperature
		maxTokens := streamMaxTokens
		body.Temperature = &temp
		body.MaxTokens = &maxTokens
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
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	return req, nil
}

// ExtractText reads the first choice's message content.
func (OpenAICompatible) ExtractText(body []byte) (string, error) {
	var resp types.ChatCompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("malformed completion response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// ExtractDelta parses one SSE payload. [DONE] terminates the stream; any
// payload that fails to parse is skipped as keep-alive noise.
func (OpenAICompatible) ExtractDelta(data []byte) (string, bool) {
	if bytes.Equal(data, []byte(types.SSEDone)) {
		return "", true
	}

	var chunk types.ChatCompletionChunk
	if err := json.Unmarshal(data, &chunk); err != nil {
		return "", false
	}
	if len(chunk.Choices) == 0 {
		return "", false
	}
	return chunk.Choices[0].Delta.Content, false
}
