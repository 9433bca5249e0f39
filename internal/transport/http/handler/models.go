package handler

import (
	"net/http"

	"github.com/tidechat/tidechat/internal/transport/http/handler/shared"
	"github.com/tidechat/tidechat/internal/types"
)

// Models handles GET /api/chat/models. Outside mock mode only keys with a
// configured credential are listed; in mock mode every key is available.
func (h *Repo) Models(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, &types.ModelsResponse{
		Models:   h.Registry.Available(h.Config.MockMode),
		Prompts:  h.Registry.CurrentPrompts(),
		MockMode: h.Config.MockMode,
	}, http.StatusOK)
}

// Health handles GET /health.
func (h *Repo) Health(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, &types.HealthResponse{
		Status:      "OK",
		Timestamp:   timestamp(),
		Environment: h.Config.Environment,
	}, http.StatusOK)
}
