package app

import (
	"log/slog"
	"net/http"

	"github.com/tidechat/tidechat/internal/transport/http/handler"
	"github.com/tidechat/tidechat/internal/transport/http/middleware"
	"github.com/tidechat/tidechat/internal/transport/http/middleware/ratelimit"
)

// RouterOptions configures the HTTP router behavior.
type RouterOptions struct {
	Logger    *slog.Logger
	RateLimit *ratelimit.Limiter
}

// NewRouter creates and configures the HTTP router with all application
// routes. Returns an http.Handler with middleware applied.
func NewRouter(repo *handler.Repo, opts *RouterOptions) http.Handler {
	mux := http.NewServeMux()

	// Health check bypasses rate limiting so probes never starve
	mux.HandleFunc("GET /health", repo.Health)

	// API routes under the ingress rate limit
	limited := func(h http.HandlerFunc) http.Handler {
		if opts.RateLimit == nil {
			return h
		}
		return ratelimit.Middleware(opts.RateLimit)(h)
	}
	mux.Handle("POST /api/chat", limited(repo.Chat))
	mux.Handle("POST /api/chat/stream", limited(repo.ChatStream))
	mux.Handle("GET /api/chat/models", limited(repo.Models))
	mux.Handle("GET /api/usage", limited(repo.Usage))
	mux.Handle("GET /api/usage/daily", limited(repo.DailyUsage))
	mux.Handle("GET /api/logs", limited(repo.RequestLogs))

	// Chat UI with SPA fallback, including the JSON 404 for unknown /api/ paths
	mux.HandleFunc("GET /", repo.SPA)

	// Apply middleware chain (order: outer to inner)
	var h http.Handler = mux

	// Request logging (if logger provided)
	if opts.Logger != nil {
		h = middleware.RequestLogger(opts.Logger)(h)
	}

	// Request ID (always applied, must wrap the logger)
	h = middleware.RequestID(h)

	// Browser protections (always applied)
	h = middleware.SecurityHeaders(h)
	h = middleware.CORS(h)

	return h
}
