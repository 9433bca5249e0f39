package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/tidechat/tidechat/internal/provider"
	"github.com/tidechat/tidechat/internal/types"
)

// readBufferSize is the transport read size for the streaming pump.
const readBufferSize = 32 * 1024

// UpstreamError reports a non-2xx upstream response. StatusCode is forwarded
// downstream; Details carries the raw upstream payload for non-production
// diagnostics.
type UpstreamError struct {
	StatusCode int
	Message    string
	Details    json.RawMessage
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

// Relay forwards prompts to a resolved provider profile and normalizes the
// response. It is safe for concurrent use; each call's buffering state is
// request-scoped.
type Relay struct {
	client *http.Client
	logger *slog.Logger
}

// New creates a Relay. Compression is disabled on the transport: a gzip
// upstream body would break incremental SSE parsing.
func New(logger *slog.Logger) *Relay {
	return &Relay{
		client: &http.Client{
			Transport: &http.Transport{
				DisableCompression: true,
			},
		},
		logger: logger,
	}
}

// Complete issues one blocking upstream call and extracts the assistant
// text. A non-2xx response surfaces as *UpstreamError; transport failures
// return the underlying error.
func (r *Relay) Complete(ctx context.Context, p *provider.Profile, fullPrompt string) (string, error) {
	req, err := p.Family.NewRequest(ctx, p, fullPrompt, false)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upstream response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", newUpstreamError(resp.StatusCode, body)
	}

	return p.Family.ExtractText(body)
}

// Stream issues a chunked upstream call and invokes onDelta for every
// non-empty text delta, in arrival order, with no batching. It returns nil
// on graceful stream end (explicit terminal payload or upstream EOF).
// Cancelling ctx aborts the upstream request.
func (r *Relay) Stream(ctx context.Context, p *provider.Profile, fullPrompt string, onDelta func(delta string) error) error {
	req, err := p.Family.NewRequest(ctx, p, fullPrompt, true)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			body = nil
		}
		return newUpstreamError(resp.StatusCode, body)
	}

	assembler := &LineAssembler{}
	buf := make([]byte, readBufferSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			for _, line := range assembler.Feed(buf[:n]) {
				delta, terminal, ok := r.parseLine(p, line)
				if !ok {
					continue
				}
				if terminal {
					return nil
				}
				if delta != "" {
					if err := onDelta(delta); err != nil {
						return err
					}
				}
			}
		}
		if readErr == io.EOF {
			// Graceful end without an explicit terminal payload. Any
			// unterminated remainder is dropped here.
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("upstream stream failed: %w", readErr)
		}
	}
}

// parseLine classifies one complete line. ok=false marks non-event lines
// and unparseable payloads (keep-alives, `event:` headers, noise), which
// are logged at debug and never fatal.
func (r *Relay) parseLine(p *provider.Profile, line []byte) (delta string, terminal bool, ok bool) {
	if !bytes.HasPrefix(line, []byte(types.SSEPrefix)) {
		return "", false, false
	}
	data := bytes.TrimPrefix(line, []byte(types.SSEPrefix))

	delta, terminal = p.Family.ExtractDelta(data)
	if delta == "" && !terminal {
		if r.logger != nil && len(data) > 0 {
			r.logger.Debug("skipped stream line", "model", p.Key, "bytes", len(data))
		}
		return "", false, false
	}
	return delta, terminal, true
}

// newUpstreamError builds an UpstreamError from a provider error payload,
// falling back to a generic message when the body is unparseable.
func newUpstreamError(statusCode int, body []byte) *UpstreamError {
	e := &UpstreamError{
		StatusCode: statusCode,
		Message:    "Failed to get response from AI service",
	}
	if len(body) > 0 && json.Valid(body) {
		e.Details = json.RawMessage(body)
		var envelope types.UpstreamErrorBody
		if err := json.Unmarshal(body, &envelope); err == nil {
			if msg := envelope.ErrorMessage(); msg != "" {
				e.Message = msg
			}
		}
	}
	return e
}
