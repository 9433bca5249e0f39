package provider

import (
	"context"
	"fmt"
	"time"
)

// Mock response timing defaults. Tests construct a Responder with zero
// delays to run instantly.
const (
	defaultThinkDelay = 1 * time.Second
	defaultCharDelay  = 30 * time.Millisecond
)

// mockTemplates fabricates a canned reply per persona, embedding the
// submitted prompt verbatim.
var mockTemplates = map[string]string{
	"general":   `This is a general response to "%s". Currently using the general assistant mode.`,
	"creative":  `🎨 Creative mode response to "%s": Let me answer this question in an imaginative way...`,
	"technical": `⚙️ Technical mode response to "%s": Analyzing this question from a technical perspective...`,
	"deepseek":  `🤔 DeepSeek analysis of "%s": Let me answer this with logical reasoning...`,
}

// Responder fabricates assistant replies without contacting any upstream.
type Responder struct {
	// ThinkDelay simulates provider latency before a non-streaming reply
	ThinkDelay time.Duration

	// CharDelay is the pause between streamed characters
	CharDelay time.Duration
}

// NewResponder returns a Responder with production timing.
func NewResponder() *Responder {
	return &Responder{ThinkDelay: defaultThinkDelay, CharDelay: defaultCharDelay}
}

// Response returns the canned reply for a model key after the think delay.
// Unknown keys fall back to the general template.
func (m *Responder) Response(ctx context.Context, modelKey, prompt string) (string, error) {
	if m.ThinkDelay > 0 {
		select {
		case <-time.After(m.ThinkDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return m.render(modelKey, prompt), nil
}

// Stream emits the canned reply character by character, pausing CharDelay
// between characters. It stops early when ctx is cancelled or emit fails.
func (m *Responder) Stream(ctx context.Context, modelKey, prompt string, emit func(delta string) error) error {
	for _, ch := range m.render(modelKey, prompt) {
		if m.CharDelay > 0 {
			select {
			case <-time.After(m.CharDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := emit(string(ch)); err != nil {
			return err
		}
	}
	return nil
}

func (m *Responder) render(modelKey, prompt string) string {
	template, ok := mockTemplates[modelKey]
	if !ok {
		template = mockTemplates["general"]
	}
	return fmt.Sprintf(template, prompt)
}
