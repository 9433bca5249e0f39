package types

import "encoding/json"

// Upstream provider shapes. Only the fields the relay reads are modeled;
// everything else passes through untouched.

// UpstreamMessage is a single chat message sent to a provider.
type UpstreamMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse is the OpenAI-compatible non-streaming response.
type ChatCompletionResponse struct {
	ID      string             `json:"id"`
	Model   string             `json:"model"`
	Choices []CompletionChoice `json:"choices"`
	Usage   *Usage             `json:"usage,omitempty"`
}

// CompletionChoice is one completion alternative.
type CompletionChoice struct {
	Index        int             `json:"index"`
	Message      UpstreamMessage `json:"message"`
	FinishReason string          `json:"finish_reason"`
}

// ChatCompletionChunk is one OpenAI-compatible streaming chunk.
type ChatCompletionChunk struct {
	ID      string        `json:"id"`
	Model   string        `json:"model"`
	Choices []ChunkChoice `json:"choices"`
	Usage   *Usage        `json:"usage,omitempty"`
}

// ChunkChoice is one choice within a streaming chunk.
type ChunkChoice struct {
	Index        int     `json:"index"`
	Delta        Delta   `json:"delta"`
	FinishReason *string `json:"finish_reason"`
}

// Delta carries the incremental content of a streaming chunk.
type Delta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

// Usage reports token consumption when the upstream provides it.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// AnthropicResponse is the Messages API non-streaming response.
type AnthropicResponse struct {
	ID      string                  `json:"id"`
	Model   string                  `json:"model"`
	Content []AnthropicContentBlock `json:"content"`
}

// AnthropicContentBlock is one content block in a Messages API response.
type AnthropicContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// AnthropicStreamEvent is the envelope for Anthropic SSE stream events.
// Type discriminates which fields are populated; the relay only reads
// content_block_delta text and the message_stop terminator.
type AnthropicStreamEvent struct {
	Type  string          `json:"type"`
	Delta *AnthropicDelta `json:"delta,omitempty"`
}

// AnthropicDelta carries incremental content in a content_block_delta event.
type AnthropicDelta struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text,omitempty"`
}

// UpstreamErrorBody matches the error envelopes the supported providers
// return on non-2xx responses. The message field may be a nested object
// (OpenAI style) or a bare string.
type UpstreamErrorBody struct {
	Error json.RawMessage `json:"error"`
}

// ErrorMessage extracts a human-readable message from an upstream error
// payload, returning "" when none can be parsed.
func (b *UpstreamErrorBody) ErrorMessage() string {
	if len(b.Error) == 0 {
		return ""
	}

	// OpenAI style: {"error": {"message": "..."}}
	var detail struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b.Error, &detail); err == nil && detail.Message != "" {
		return detail.Message
	}

	// Bare string style: {"error": "..."}
	var msg string
	if err := json.Unmarshal(b.Error, &msg); err == nil {
		return msg
	}

	return ""
}
