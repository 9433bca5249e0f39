package types

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON error body used by every non-streaming endpoint.
// Details carries the raw upstream error payload and is omitted in
// production deployments.
type ErrorResponse struct {
	Error   string          `json:"error"`
	Message string          `json:"message,omitempty"`
	Details json.RawMessage `json:"details,omitempty"`
}

// WriteError writes a JSON error response with the given status code.
func WriteError(w http.ResponseWriter, statusCode int, errText string) {
	WriteErrorResponse(w, statusCode, &ErrorResponse{Error: errText})
}

// WriteErrorResponse writes a fully populated error body.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, resp *ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}
