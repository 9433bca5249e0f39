package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/tidechat/tidechat/internal/storage"
)

// defaultLogLimit caps unbounded log queries.
const defaultLogLimit = 100

// LogRequest appends one request log entry.
func (s *Storage) LogRequest(log *storage.RequestLog) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return fmt.Errorf("storage is closed")
	}

	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO request_logs (
			id, request_id, model, provider, prompt_tokens, completion_tokens,
			total_tokens, is_streaming, status_code, error_message, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID, log.RequestID, log.Model, log.Provider,
		log.PromptTokens, log.CompletionTokens, log.TotalTokens,
		boolToInt(log.IsStreaming), log.StatusCode, log.ErrorMessage,
		log.DurationMs, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert request log: %w", err)
	}
	return nil
}

// GetRequestLogs returns log entries matching the filter, newest first.
func (s *Storage) GetRequestLogs(filter *storage.LogFilter) ([]*storage.RequestLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, fmt.Errorf("storage is closed")
	}

	query := `
		SELECT id, request_id, model, provider, prompt_tokens, completion_tokens,
		       total_tokens, is_streaming, status_code, error_message, duration_ms, created_at
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
		if filter.StatusCode != nil {
			conds = append(conds, "status_code = ?")
			args = append(args, *filter.StatusCode)
		}
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	limit := defaultLogLimit
	offset := 0
	if filter != nil {
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		if filter.Offset > 0 {
			offset = filter.Offset
		}
	}
	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query request logs: %w", err)
	}
	defer rows.Close()

	var logs []*storage.RequestLog
	for rows.Next() {
		log := &storage.RequestLog{}
		var isStreaming int
		var errorMessage *string
		if err := rows.Scan(
			&log.ID, &log.RequestID, &log.Model, &log.Provider,
			&log.PromptTokens, &log.CompletionTokens, &log.TotalTokens,
			&isStreaming, &log.StatusCode, &errorMessage,
			&log.DurationMs, &log.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan request log: %w", err)
		}
		log.IsStreaming = isStreaming != 0
		if errorMessage != nil {
			log.ErrorMessage = *errorMessage
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
