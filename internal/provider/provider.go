// Package provider defines the model profiles the relay can talk to and the
// provider families that shape requests and parse responses.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnknownModel is returned when a model key has no profile.
var ErrUnknownModel = errors.New("unknown model")

// ErrNotConfigured is returned when a profile's API key is missing or still
// a placeholder. Its message must never contain the key value.
var ErrNotConfigured = errors.New("API key not configured")

// keyPlaceholder is the sentinel shipped in .env.example files.
const keyPlaceholder = "your_deepseek_api_key_here"

// Family abstracts the request/response dialect of an upstream provider.
// The family is fixed on the profile at load time, so dialect selection
// happens once per request at adapter resolution, not per frame.
type Family interface {
	// Name returns the family identifier ("openai" or "anthropic").
	Name() string

	// NewRequest builds the upstream HTTP request for a flattened prompt.
	// stream selects the chunked SSE variant.
	NewRequest(ctx context.Context, p *Profile, fullPrompt string, stream bool) (*http.Request, error)

	// ExtractText pulls the assistant text out of a non-streaming response body.
	ExtractText(body []byte) (string, error)

	// ExtractDelta parses one SSE data payload (the bytes after "data: ").
	// It returns the incremental text delta, or terminal=true when the
	// payload signals end-of-stream. Malformed payloads yield ("", false)
	// and are treated as keep-alive noise.
	ExtractDelta(data []byte) (delta string, terminal bool)
}

// Profile binds a model key to an upstream endpoint, credential, model id
// and dialect family. Profiles are built once at startup and immutable.
type Profile struct {
	Key    string
	URL    string
	APIKey string
	Model  string
	Family Family
}

// CheckCredential validates the profile's API key. The returned error names
// only the model key, never the credential value.
func (p *Profile) CheckCredential() error {
	if p.APIKey == "" || strings.Contains(p.APIKey, "your_") || p.APIKey == keyPlaceholder {
		return fmt.Errorf("%w for model %q", ErrNotConfigured, p.Key)
	}
	return nil
}

// ComposePrompt flattens a system prompt and a user prompt into the
// single-shot completion form sent upstream. Multi-turn history, if any,
// must already be folded into userPrompt by the caller.
func ComposePrompt(systemPrompt, userPrompt string) string {
	return fmt.Sprintf("%s\n\nUser: %s\n\nAssistant:", systemPrompt, userPrompt)
}
