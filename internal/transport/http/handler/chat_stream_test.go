package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tidechat/tidechat/internal/config"
)

func postStream(t *testing.T, repo *Repo, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/chat/stream", strings.NewReader(body))
	w := httptest.NewRecorder()
	repo.ChatStream(w, req)
	return w
}

func TestChatStream_Headers(t *testing.T) {
	w := postStream(t, mockRepo(t), `{"prompt":"hi"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := w.Header().Get("Cache-Control"); got != "no-cache" {
		t.Errorf("Cache-Control = %q", got)
	}
}

func TestChatStream_MockMode(t *testing.T) {
	repo := mockRepo(t)
	w := postStream(t, repo, `{"prompt":"2+2?","model":"technical"}`)

	frames := parseFrames(t, w.Body.String())
	content := assembleFrames(t, frames)

	if !strings.Contains(content, `"2+2?"`) {
		t.Errorf("streamed text %q does not embed the prompt", content)
	}

	last := frames[len(frames)-1]
	if last.Done == nil || !*last.Done {
		t.Errorf("last frame = %+v, want done:true", last)
	}
	if last.Model != "technical" {
		t.Errorf("done frame model = %q", last.Model)
	}
	if last.Timestamp == "" {
		t.Error("done frame has no timestamp")
	}
}

func TestChatStream_EmptyPrompt(t *testing.T) {
	w := postStream(t, mockRepo(t), `{"prompt":""}`)

	// Stream failures still return 200; the error travels in-band.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	frames := parseFrames(t, w.Body.String())
	if len(frames) != 1 {
		t.Fatalf("frames = %d, want single error frame", len(frames))
	}
	if frames[0].Error != "Prompt is required" {
		t.Errorf("error = %q", frames[0].Error)
	}
}

func TestChatStream_UnknownModel(t *testing.T) {
	repo := newTestRepo(t, &config.Config{Environment: "development"})
	w := postStream(t, repo, `{"prompt":"hi","model":"gpt-5"}`)

	frames := parseFrames(t, w.Body.String())
	if len(frames) != 1 {
		t.Fatalf("frames = %d, want single error frame", len(frames))
	}
	if frames[0].Error != "Unsupported model: gpt-5" {
		t.Errorf("error = %q", frames[0].Error)
	}
}

func TestChatStream_MissingCredential(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")

	repo := newTestRepo(t, &config.Config{Environment: "development"})
	w := postStream(t, repo, `{"prompt":"hi","model":"deepseek"}`)

	frames := parseFrames(t, w.Body.String())
	if len(frames) != 1 {
		t.Fatalf("frames = %d, want single error frame", len(frames))
	}
	if !strings.Contains(frames[0].Message, "MOCK_MODE=true") {
		t.Errorf("message = %q, want setup hint", frames[0].Message)
	}
}

func TestChatStream_Upstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	t.Setenv("DEEPSEEK_API_URL", srv.URL)
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")

	repo := newTestRepo(t, &config.Config{Environment: "development"})
	w := postStream(t, repo, `{"prompt":"hi","model":"deepseek"}`)

	frames := parseFrames(t, w.Body.String())
	content := assembleFrames(t, frames)
	if content != "Hello" {
		t.Errorf("assembled content = %q, want Hello", content)
	}
}

func TestChatStream_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"Rate limit exceeded"}}`)
	}))
	defer srv.Close()

	t.Setenv("DEEPSEEK_API_URL", srv.URL)
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")

	repo := newTestRepo(t, &config.Config{Environment: "development"})
	w := postStream(t, repo, `{"prompt":"hi","model":"deepseek"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, headers are sent before the upstream call", w.Code)
	}

	frames := parseFrames(t, w.Body.String())
	if len(frames) != 1 {
		t.Fatalf("frames = %d, want single error frame", len(frames))
	}
	if frames[0].Error != "Failed to get stream response" {
		t.Errorf("error = %q", frames[0].Error)
	}
	if frames[0].Message != "Rate limit exceeded" {
		t.Errorf("message = %q, want upstream message", frames[0].Message)
	}
}

func TestChatStream_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	t.Setenv("DEEPSEEK_API_URL", srv.URL)
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")

	repo := newTestRepo(t, &config.Config{Environment: "development"})
	w := postStream(t, repo, `{"prompt":"hi","model":"deepseek"}`)

	frames := parseFrames(t, w.Body.String())
	if len(frames) != 1 {
		t.Fatalf("frames = %d, want single error frame", len(frames))
	}
	if frames[0].Error != "Stream connection failed" {
		t.Errorf("error = %q", frames[0].Error)
	}
	if frames[0].Message == "" {
		t.Error("development mode should include the transport detail")
	}
}

func TestChatStream_TransportFailureProduction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	t.Setenv("DEEPSEEK_API_URL", srv.URL)
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")

	repo := newTestRepo(t, &config.Config{Environment: "production"})
	w := postStream(t, repo, `{"prompt":"hi","model":"deepseek"}`)

	frames := parseFrames(t, w.Body.String())
	if len(frames) != 1 || frames[0].Message != "" {
		t.Errorf("production error frame leaks detail: %+v", frames[0])
	}
}
