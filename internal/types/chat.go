// Package types defines the wire-level request and response shapes shared
// by the relay handlers and providers.
package types

// ChatRequest is the downstream request body for both relay endpoints.
type ChatRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// ChatResponse is the downstream body for a successful non-streaming call.
type ChatResponse struct {
	Response  string `json:"response"`
	Model     string `json:"model"`
	Timestamp string `json:"timestamp"`
	Mock      bool   `json:"mock,omitempty"`
}

// ModelsResponse lists the model keys available to the client along with the
// system prompt currently in effect for each persona.
type ModelsResponse struct {
	Models   []string          `json:"models"`
	Prompts  map[string]string `json:"prompts"`
	MockMode bool              `json:"mockMode"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}
