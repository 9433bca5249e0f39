package types

import "encoding/json"

// StreamFrame is one downstream event in the relay's SSE stream.
// A logical stream is zero or more content frames followed by exactly one
// terminal frame: either Done=true or Error non-empty.
type StreamFrame struct {
	Content   string `json:"content,omitempty"`
	Done      *bool  `json:"done,omitempty"`
	Error     string `json:"error,omitempty"`
	Message   string `json:"message,omitempty"`
	Model     string `json:"model,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// IsTerminal reports whether the frame closes the stream.
func (f *StreamFrame) IsTerminal() bool {
	return f.Error != "" || (f.Done != nil && *f.Done)
}

// ContentFrame builds a non-terminal frame carrying one text delta.
func ContentFrame(delta string) *StreamFrame {
	done := false
	return &StreamFrame{Content: delta, Done: &done}
}

// DoneFrame builds the successful terminal frame.
func DoneFrame(model, timestamp string) *StreamFrame {
	done := true
	return &StreamFrame{Done: &done, Model: model, Timestamp: timestamp}
}

// ErrorFrame builds a terminal error frame. message is optional guidance for
// the user and may be empty.
func ErrorFrame(errText, message string) *StreamFrame {
	return &StreamFrame{Error: errText, Message: message}
}

// SSEPrefix is the Server-Sent Events data prefix.
const SSEPrefix = "data: "

// SSEDone is the OpenAI-compatible end-of-stream marker on the upstream side.
const SSEDone = "[DONE]"

// FormatSSE encodes a frame as a `data: <json>\n\n` event.
func FormatSSE(f *StreamFrame) []byte {
	payload, err := json.Marshal(f)
	if err != nil {
		// StreamFrame contains only marshalable fields; this cannot happen.
		payload = []byte("{}")
	}
	result := make([]byte, 0, len(SSEPrefix)+len(payload)+2)
	result = append(result, SSEPrefix...)
	result = append(result, payload...)
	result = append(result, '\n', '\n')
	return result
}
