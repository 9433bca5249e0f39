package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/tidechat/tidechat/internal/provider"
	"github.com/tidechat/tidechat/internal/relay"
	"github.com/tidechat/tidechat/internal/transport/http/handler/shared"
	"github.com/tidechat/tidechat/internal/transport/http/middleware"
	"github.com/tidechat/tidechat/internal/types"
)

// credentialHint accompanies configuration errors so local setups know how
// to proceed without exposing any secret material.
const credentialHint = "Please set MOCK_MODE=true or configure API keys in .env file"

// Chat handles POST /api/chat: one blocking upstream call, one JSON reply.
func (h *Repo) Chat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())

	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	modelKey := req.Model
	if modelKey == "" {
		modelKey = "general"
	}

	if req.Prompt == "" {
		types.WriteError(w, http.StatusBadRequest, "Prompt is required")
		return
	}

	if h.Config.MockMode {
		h.Logger.Info("mock mode reply", "model", modelKey)
		text, err := h.Mock.Response(r.Context(), modelKey, req.Prompt)
		if err != nil {
			return // client went away while we were "thinking"
		}
		shared.WriteJSON(w, &types.ChatResponse{
			Response:  text,
			Model:     modelKey,
			Timestamp: timestamp(),
			Mock:      true,
		}, http.StatusOK)
		h.recordRequest(requestID, modelKey, "mock", req.Prompt, text, false, http.StatusOK, "", time.Since(start))
		return
	}

	profile, err := h.Registry.Resolve(modelKey)
	if err != nil {
		types.WriteError(w, http.StatusBadRequest, "Unsupported model: "+modelKey)
		return
	}
	if err := profile.CheckCredential(); err != nil {
		types.WriteErrorResponse(w, http.StatusInternalServerError, &types.ErrorResponse{
			Error:   err.Error(),
			Message: credentialHint,
		})
		return
	}

	fullPrompt := provider.ComposePrompt(h.Registry.SystemPrompt(modelKey), req.Prompt)
	h.Logger.Info("relaying prompt", "model", modelKey, "family", profile.Family.Name(), "request_id", requestID)

	text, err := h.Relay.Complete(r.Context(), profile, fullPrompt)
	if err != nil {
		status, resp := h.upstreamErrorResponse(err)
		types.WriteErrorResponse(w, status, resp)
		h.recordRequest(requestID, modelKey, profile.Family.Name(), fullPrompt, "", false, status, resp.Error, time.Since(start))
		return
	}

	shared.WriteJSON(w, &types.ChatResponse{
		Response:  text,
		Model:     modelKey,
		Timestamp: timestamp(),
	}, http.StatusOK)
	h.recordRequest(requestID, modelKey, profile.Family.Name(), fullPrompt, text, false, http.StatusOK, "", time.Since(start))
}

// upstreamErrorResponse maps a relay error to a downstream status and body.
// Upstream status codes are forwarded when known; raw upstream details are
// attached only outside production.
func (h *Repo) upstreamErrorResponse(err error) (int, *types.ErrorResponse) {
	var ue *relay.UpstreamError
	if errors.As(err, &ue) {
		h.Logger.Error("upstream error", "status", ue.StatusCode, "message", ue.Message)
		resp := &types.ErrorResponse{Error: ue.Message}
		if !h.Config.IsProduction() {
			resp.Details = ue.Details
		}
		return ue.StatusCode, resp
	}

	h.Logger.Error("relay failed", "error", err)
	resp := &types.ErrorResponse{Error: "Failed to get response from AI service"}
	if !h.Config.IsProduction() {
		resp.Message = err.Error()
	}
	return http.StatusInternalServerError, resp
}

// timestamp returns the response timestamp in RFC3339 UTC.
func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
