// Package storage defines the persistence interface for request and usage
// accounting. No message content is ever stored; only numeric metadata.
package storage

import "time"

// Storage is the persistence interface used by the relay handlers.
type Storage interface {
	// LogRequest appends one request log entry.
	LogRequest(log *RequestLog) error

	// GetRequestLogs returns log entries matching the filter, newest first.
	GetRequestLogs(filter *LogFilter) ([]*RequestLog, error)

	// GetUsageStats aggregates usage over the request log.
	GetUsageStats(filter *StatsFilter) (*UsageStats, error)

	// IncrementDailyUsage folds one request into the daily aggregates.
	IncrementDailyUsage(entry *DailyUsage) error

	// GetDailyUsage returns daily aggregates within [startDate, endDate]
	// (YYYY-MM-DD, inclusive), newest first.
	GetDailyUsage(startDate, endDate string) ([]*DailyUsage, error)

	// Close releases the underlying store.
	Close() error
}

// RequestLog represents one relayed chat request. Prompt and response text
// are deliberately absent.
type RequestLog struct {
	ID               string    `json:"id"`
	RequestID        string    `json:"request_id"`
	Model            string    `json:"model"`
	Provider         string    `json:"provider"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	IsStreaming      bool      `json:"is_streaming"`
	StatusCode       int       `json:"status_code"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	DurationMs       int64     `json:"duration_ms"`
	CreatedAt        time.Time `json:"created_at"`
}

// LogFilter contains parameters for filtering request logs.
type LogFilter struct {
	Model      string
	Provider   string
	StatusCode *int
	Limit      int
	Offset     int
}

// DailyUsage represents aggregated usage stats for a day.
type DailyUsage struct {
	Date             string `json:"date"` // YYYY-MM-DD
	Model            string `json:"model"`
	RequestCount     int    `json:"request_count"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	ErrorCount       int    `json:"error_count"`
}

// ModelStats represents usage statistics for a specific model key.
type ModelStats struct {
	Model            string `json:"model"`
	RequestCount     int    `json:"request_count"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	ErrorCount       int    `json:"error_count"`
}

// UsageStats represents aggregated usage statistics.
type UsageStats struct {
	TotalRequests         int                    `json:"total_requests"`
	TotalTokens           int                    `json:"total_tokens"`
	TotalPromptTokens     int                    `json:"prompt_tokens"`
	TotalCompletionTokens int                    `json:"completion_tokens"`
	ErrorCount            int                    `json:"error_count"`
	ModelBreakdown        map[string]*ModelStats `json:"models,omitempty"`
}

// StatsFilter contains parameters for filtering usage statistics.
type StatsFilter struct {
	Model    string
	Provider string
}
