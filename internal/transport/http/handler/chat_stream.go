package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tidechat/tidechat/internal/provider"
	"github.com/tidechat/tidechat/internal/relay"
	"github.com/tidechat/tidechat/internal/transport/http/middleware"
	"github.com/tidechat/tidechat/internal/types"
)

// streamWriter emits downstream SSE frames and guarantees at most one
// terminal frame per stream; nothing is written after it.
type streamWriter struct {
	w        http.ResponseWriter
	flusher  http.Flusher
	terminal bool
}

func newStreamWriter(w http.ResponseWriter, flusher http.Flusher) *streamWriter {
	return &streamWriter{w: w, flusher: flusher}
}

// emit writes one frame and flushes immediately. Frames after the terminal
// one are dropped.
func (sw *streamWriter) emit(f *types.StreamFrame) error {
	if sw.terminal {
		return nil
	}
	if f.IsTerminal() {
		sw.terminal = true
	}
	if _, err := sw.w.Write(types.FormatSSE(f)); err != nil {
		sw.terminal = true // client is gone, stream is over
		return err
	}
	sw.flusher.Flush()
	return nil
}

// ChatStream handles POST /api/chat/stream: a persistent SSE connection
// carrying content frames followed by exactly one terminal frame.
func (h *Repo) ChatStream(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		// Practically unreachable with the standard library server.
		types.WriteError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sw := newStreamWriter(w, flusher)

	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = sw.emit(types.ErrorFrame("Invalid request body", ""))
		return
	}
	modelKey := req.Model
	if modelKey == "" {
		modelKey = "general"
	}

	if req.Prompt == "" {
		_ = sw.emit(types.ErrorFrame("Prompt is required", ""))
		return
	}

	if h.Config.MockMode {
		h.streamMock(r, sw, requestID, modelKey, req.Prompt, start)
		return
	}

	profile, err := h.Registry.Resolve(modelKey)
	if err != nil {
		_ = sw.emit(types.ErrorFrame("Unsupported model: "+modelKey, ""))
		return
	}
	if err := profile.CheckCredential(); err != nil {
		_ = sw.emit(types.ErrorFrame(err.Error(), credentialHint))
		return
	}

	fullPrompt := provider.ComposePrompt(h.Registry.SystemPrompt(modelKey), req.Prompt)
	h.Logger.Info("relaying stream", "model", modelKey, "family", profile.Family.Name(), "request_id", requestID)

	var assembled strings.Builder
	streamErr := h.Relay.Stream(r.Context(), profile, fullPrompt, func(delta string) error {
		assembled.WriteString(delta)
		return sw.emit(types.ContentFrame(delta))
	})

	status := http.StatusOK
	errText := ""
	switch {
	case streamErr == nil:
		_ = sw.emit(types.DoneFrame(modelKey, timestamp()))
	default:
		status, errText = h.emitStreamError(sw, streamErr)
	}
	h.recordRequest(requestID, modelKey, profile.Family.Name(), fullPrompt, assembled.String(), true, status, errText, time.Since(start))
}

// emitStreamError converts a relay error into one terminal error frame and
// returns the status and message for accounting.
func (h *Repo) emitStreamError(sw *streamWriter, err error) (int, string) {
	var ue *relay.UpstreamError
	if errors.As(err, &ue) {
		h.Logger.Error("upstream stream error", "status", ue.StatusCode, "message", ue.Message)
		_ = sw.emit(types.ErrorFrame("Failed to get stream response", ue.Message))
		return ue.StatusCode, ue.Message
	}

	h.Logger.Error("stream failed", "error", err)
	message := ""
	if !h.Config.IsProduction() {
		message = err.Error()
	}
	_ = sw.emit(types.ErrorFrame("Stream connection failed", message))
	return http.StatusInternalServerError, "Stream connection failed"
}

// streamMock fabricates a character-by-character stream without touching
// any upstream.
func (h *Repo) streamMock(r *http.Request, sw *streamWriter, requestID, modelKey, prompt string, start time.Time) {
	h.Logger.Info("mock mode stream", "model", modelKey)

	var assembled strings.Builder
	err := h.Mock.Stream(r.Context(), modelKey, prompt, func(delta string) error {
		assembled.WriteString(delta)
		return sw.emit(types.ContentFrame(delta))
	})
	if err != nil {
		return // client disconnected mid-stream
	}
	_ = sw.emit(types.DoneFrame(modelKey, timestamp()))
	h.recordRequest(requestID, modelKey, "mock", prompt, assembled.String(), true, http.StatusOK, "", time.Since(start))
}
