package sqlite

import (
	"fmt"
	"strings"

	"github.com/tidechat/tidechat/internal/storage"
)

// IncrementDailyUsage folds one request into the daily aggregates via upsert.
func (s *Storage) IncrementDailyUsage(entry *storage.DailyUsage) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return fmt.Errorf("storage is closed")
	}

	_, err := s.db.Exec(`
		INSERT INTO usage_daily (date, model, request_count, prompt_tokens, completion_tokens, total_tokens, error_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date, model) DO UPDATE SET
			request_count     = request_count + excluded.request_count,
			prompt_tokens     = prompt_tokens + excluded.prompt_tokens,
			completion_tokens = completion_tokens + excluded.completion_tokens,
			total_tokens      = total_tokens + excluded.total_tokens,
			error_count       = error_count + excluded.error_count`,
		entry.Date, entry.Model, entry.RequestCount,
		entry.PromptTokens, entry.CompletionTokens, entry.TotalTokens,
		entry.ErrorCount,
	)
	if err != nil {
		return fmt.Errorf("failed to update daily usage: %w", err)
	}
	return nil
}

// GetDailyUsage returns daily aggregates within [startDate, endDate], newest first.
func (s *Storage) GetDailyUsage(startDate, endDate string) ([]*storage.DailyUsage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, fmt.Errorf("storage is closed")
	}

	query := `
		SELECT date, model, request_count, prompt_tokens, completion_tokens, total_tokens, error_count
		FROM usage_daily`
	var conds []string
	var args []any
	if startDate != "" {
		conds = append(conds, "date >= ?")
		args = append(args, startDate)
	}
	if endDate != "" {
		conds = append(conds, "date <= ?")
		args = append(args, endDate)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date DESC, model ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily usage: %w", err)
	}
	defer rows.Close()

	var entries []*storage.DailyUsage
	for rows.Next() {
		entry := &storage.DailyUsage{}
		if err := rows.Scan(
			&entry.Date, &entry.Model, &entry.RequestCount,
			&entry.PromptTokens, &entry.CompletionTokens, &entry.TotalTokens,
			&entry.ErrorCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily usage: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetUsageStats aggregates usage over the request log, with a per-model breakdown.
func (s *Storage) GetUsageStats(filter *storage.StatsFilter) (*storage.UsageStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, fmt.Errorf("storage is closed")
	}

	query := `
		SELECT model,
		       COUNT(*),
		       COALESCE(SUM(prompt_tokens), 0),
		       COALESCE(SUM(completion_tokens), 0),
		       COALESCE(SUM(total_tokens), 0),
		       COALESCE(SUM(CASE WHEN status_code >= 400 THEN 1 ELSE 0 END), 0)
		FROM request_logs`
	var conds []string
	var args []any
	if filter != nil {
		if filter.Model != "" {
			conds = append(conds, "model = ?")
			args = append(args, filter.Model)
		}
		if filter.Provider != "" {
			conds = append(conds, "provider = ?")
			args = append(args, filter.Provider)
		}
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " GROUP BY model"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage stats: %w", err)
	}
	defer rows.Close()

	stats := &storage.UsageStats{
		ModelBreakdown: make(map[string]*storage.ModelStats),
	}
	for rows.Next() {
		ms := &storage.ModelStats{}
		if err := rows.Scan(
			&ms.Model, &ms.RequestCount, &ms.PromptTokens,
			&ms.CompletionTokens, &ms.TotalTokens, &ms.ErrorCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan usage stats: %w", err)
		}
		stats.ModelBreakdown[ms.Model] = ms
		stats.TotalRequests += ms.RequestCount
		stats.TotalPromptTokens += ms.PromptTokens
		stats.TotalCompletionTokens += ms.CompletionTokens
		stats.TotalTokens += ms.TotalTokens
		stats.ErrorCount += ms.ErrorCount
	}
	return stats, rows.Err()
}
