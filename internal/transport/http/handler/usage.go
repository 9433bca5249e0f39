package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tidechat/tidechat/internal/storage"
	"github.com/tidechat/tidechat/internal/transport/http/handler/shared"
	"github.com/tidechat/tidechat/internal/types"
)

// usageStatsCacheKey caches the aggregate query result in ristretto.
const usageStatsCacheKey = "usage_stats"

// usageStatsTTL bounds the staleness of the cached aggregates.
const usageStatsTTL = 30 * time.Second

// Usage handles GET /api/usage: aggregated token/request accounting.
// The aggregation scans the whole request log, so results are cached.
func (h *Repo) Usage(w http.ResponseWriter, r *http.Request) {
	if h.Storage == nil {
		types.WriteError(w, http.StatusServiceUnavailable, "Usage accounting is disabled")
		return
	}

	if h.Cache != nil {
		if cached, found := h.Cache.Get(usageStatsCacheKey); found {
			if stats, ok := cached.(*storage.UsageStats); ok {
				w.Header().Set("X-Cache", "HIT")
				shared.WriteJSON(w, stats, http.StatusOK)
				return
			}
		}
	}

	stats, err := h.Storage.GetUsageStats(&storage.StatsFilter{
		Model:    r.URL.Query().Get("model"),
		Provider: r.URL.Query().Get("provider"),
	})
	if err != nil {
		h.Logger.Error("failed to compute usage stats", "error", err)
		types.WriteError(w, http.StatusInternalServerError, "Failed to compute usage stats")
		return
	}

	// Only cache the unfiltered aggregate; filtered views are cheap enough.
	if h.Cache != nil && r.URL.Query().Get("model") == "" && r.URL.Query().Get("provider") == "" {
		h.Cache.SetWithTTL(usageStatsCacheKey, stats, 1, usageStatsTTL)
	}

	w.Header().Set("X-Cache", "MISS")
	shared.WriteJSON(w, stats, http.StatusOK)
}

// DailyUsage handles GET /api/usage/daily?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *Repo) DailyUsage(w http.ResponseWriter, r *http.Request) {
	if h.Storage == nil {
		types.WriteError(w, http.StatusServiceUnavailable, "Usage accounting is disabled")
		return
	}

	entries, err := h.Storage.GetDailyUsage(r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		h.Logger.Error("failed to query daily usage", "error", err)
		types.WriteError(w, http.StatusInternalServerError, "Failed to query daily usage")
		return
	}
	if entries == nil {
		entries = []*storage.DailyUsage{}
	}
	shared.WriteJSON(w, map[string]any{"daily": entries}, http.StatusOK)
}

// RequestLogs handles GET /api/logs?limit=N&model=key.
func (h *Repo) RequestLogs(w http.ResponseWriter, r *http.Request) {
	if h.Storage == nil {
		types.WriteError(w, http.StatusServiceUnavailable, "Usage accounting is disabled")
		return
	}

	filter := &storage.LogFilter{Model: r.URL.Query().Get("model")}
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	logs, err := h.Storage.GetRequestLogs(filter)
	if err != nil {
		h.Logger.Error("failed to query request logs", "error", err)
		types.WriteError(w, http.StatusInternalServerError, "Failed to query request logs")
		return
	}
	if logs == nil {
		logs = []*storage.RequestLog{}
	}
	shared.WriteJSON(w, map[string]any{"logs": logs}, http.StatusOK)
}
