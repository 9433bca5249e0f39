package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/tidechat/tidechat/internal/config"
	"github.com/tidechat/tidechat/internal/provider"
	"github.com/tidechat/tidechat/internal/relay"
	"github.com/tidechat/tidechat/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRepo builds a Repo without storage or cache. The mock responder
// runs with zero delays.
func newTestRepo(t *testing.T, cfg *config.Config) *Repo {
	t.Helper()
	return &Repo{
		Logger:   testLogger(),
		Config:   cfg,
		Registry: provider.LoadProfiles(cfg),
		Relay:    relay.New(testLogger()),
		Mock:     &provider.Responder{},
	}
}

func mockRepo(t *testing.T) *Repo {
	return newTestRepo(t, &config.Config{Environment: "development", MockMode: true})
}

// parseFrames decodes every SSE event in a response body.
func parseFrames(t *testing.T, body string) []*types.StreamFrame {
	t.Helper()
	var frames []*types.StreamFrame
	for _, event := range strings.Split(body, "\n\n") {
		if event == "" {
			continue
		}
		if !strings.HasPrefix(event, "data: ") {
			t.Fatalf("event without data prefix: %q", event)
		}
		var frame types.StreamFrame
		if err := json.Unmarshal([]byte(strings.TrimPrefix(event, "data: ")), &frame); err != nil {
			t.Fatalf("unparseable frame %q: %v", event, err)
		}
		frames = append(frames, &frame)
	}
	return frames
}

// assembleFrames concatenates the content deltas and checks the stream has
// exactly one terminal frame, in last position.
func assembleFrames(t *testing.T, frames []*types.StreamFrame) string {
	t.Helper()
	if len(frames) == 0 {
		t.Fatal("stream produced no frames")
	}

	terminals := 0
	var sb strings.Builder
	for i, f := range frames {
		if f.IsTerminal() {
			terminals++
			if i != len(frames)-1 {
				t.Errorf("terminal frame at index %d of %d, want last", i, len(frames))
			}
			continue
		}
		sb.WriteString(f.Content)
	}
	if terminals != 1 {
		t.Errorf("stream has %d terminal frames, want exactly 1", terminals)
	}
	return sb.String()
}
