// Package relay implements the upstream calls and the streaming state
// machine that turns provider SSE chunks into downstream frames.
package relay

import "bytes"

// LineAssembler reassembles newline-delimited lines from arbitrarily split
// transport chunks. The unresolved remainder after the last newline is held
// back for the next chunk, so a line split across any number of chunks is
// never lost or duplicated. A trailing remainder without a final newline is
// only ever discarded on graceful stream end; the protocol always closes
// with an explicit terminal payload, so nothing meaningful is lost.
type LineAssembler struct {
	buf []byte
}

// Feed appends a transport chunk and returns the complete lines it
// unlocked, without their line endings. A trailing "\r" is stripped so CRLF
// streams parse identically to LF streams.
func (a *LineAssembler) Feed(chunk []byte) [][]byte {
	a.buf = append(a.buf, chunk...)

	var lines [][]byte
	for {
		idx := bytes.IndexByte(a.buf, '\n')
		if idx < 0 {
			break
		}
		line := a.buf[:idx]
		line = bytes.TrimSuffix(line, []byte("\r"))

		// Copy out: the backing array is about to be reused.
		out := make([]byte, len(line))
		copy(out, line)
		lines = append(lines, out)

		a.buf = a.buf[idx+1:]
	}
	return lines
}

// Remainder returns the held-back partial line, if any.
func (a *LineAssembler) Remainder() []byte {
	return a.buf
}
