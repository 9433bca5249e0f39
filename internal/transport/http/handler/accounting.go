package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/tidechat/tidechat/internal/storage"
)

// tokenCountTimeout is the maximum time to wait for token counting before
// logging proceeds with zero counts.
const tokenCountTimeout = 100 * time.Millisecond

// recordRequest logs accounting metadata for one relay call. Token counting
// runs in the background with a short grace window so it never delays the
// response path; the log write itself is asynchronous. Message text is used
// only to count tokens and is never persisted.
func (h *Repo) recordRequest(requestID, modelKey, providerName, promptText, completionText string, streaming bool, statusCode int, errMsg string, duration time.Duration) {
	if h.Storage == nil {
		return
	}

	promptChan := h.countTokensAsync(promptText, modelKey)
	completionChan := h.countTokensAsync(completionText, modelKey)

	go func() {
		promptTokens := awaitCount(promptChan)
		completionTokens := awaitCount(completionChan)

		entry := &storage.RequestLog{
			ID:               uuid.New().String(),
			RequestID:        requestID,
			Model:            modelKey,
			Provider:         providerName,
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
			IsStreaming:      streaming,
			StatusCode:       statusCode,
			ErrorMessage:     errMsg,
			DurationMs:       duration.Milliseconds(),
			CreatedAt:        time.Now().UTC(),
		}
		if err := h.Storage.LogRequest(entry); err != nil {
			h.Logger.Warn("failed to log request", "error", err)
			return
		}

		daily := &storage.DailyUsage{
			Date:             entry.CreatedAt.Format("2006-01-02"),
			Model:            modelKey,
			RequestCount:     1,
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      entry.TotalTokens,
		}
		if statusCode >= 400 {
			daily.ErrorCount = 1
		}
		if err := h.Storage.IncrementDailyUsage(daily); err != nil {
			h.Logger.Warn("failed to update daily usage", "error", err)
		}
	}()
}

// countTokensAsync counts tokens off the request path.
func (h *Repo) countTokensAsync(text, model string) <-chan int {
	ch := make(chan int, 1)
	go func() {
		defer close(ch)
		if h.Tokenizer == nil || text == "" {
			return
		}
		if tokens, err := h.Tokenizer.CountTokens(text, model); err == nil {
			ch <- tokens
		}
	}()
	return ch
}

// awaitCount collects a token count with a bounded wait.
func awaitCount(ch <-chan int) int {
	select {
	case tokens, ok := <-ch:
		if ok {
			return tokens
		}
	case <-time.After(tokenCountTimeout):
		// Counting took too long; log with zero rather than stall.
	}
	return 0
}
