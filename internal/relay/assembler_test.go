package relay

import (
	"reflect"
	"testing"
)

func feedAll(t *testing.T, a *LineAssembler, chunks ...string) []string {
	t.Helper()
	var lines []string
	for _, chunk := range chunks {
		for _, line := range a.Feed([]byte(chunk)) {
			lines = append(lines, string(line))
		}
	}
	return lines
}

func TestLineAssembler_SingleChunk(t *testing.T) {
	a := &LineAssembler{}
	got := feedAll(t, a, "data: one\ndata: two\n")
	want := []string{"data: one", "data: two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Feed() = %v, want %v", got, want)
	}
	if len(a.Remainder()) != 0 {
		t.Errorf("expected empty remainder, got %q", a.Remainder())
	}
}

func TestLineAssembler_LineSplitAcrossChunks(t *testing.T) {
	a := &LineAssembler{}
	got := feedAll(t, a, "data: hel", "lo wor", "ld\n")
	want := []string{"data: hello world"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Feed() = %v, want %v", got, want)
	}
}

func TestLineAssembler_ChunkingInvariance(t *testing.T) {
	// The assembled lines must be identical no matter where the transport
	// splits the byte stream.
	stream := "data: {\"a\":1}\n\ndata: {\"b\":2}\n\ndata: [DONE]\n\n"

	reference := feedAll(t, &LineAssembler{}, stream)

	for size := 1; size <= len(stream); size++ {
		a := &LineAssembler{}
		var chunks []string
		for i := 0; i < len(stream); i += size {
			end := i + size
			if end > len(stream) {
				end = len(stream)
			}
			chunks = append(chunks, stream[i:end])
		}
		got := feedAll(t, a, chunks...)
		if !reflect.DeepEqual(got, reference) {
			t.Fatalf("chunk size %d: lines = %v, want %v", size, got, reference)
		}
		if len(a.Remainder()) != 0 {
			t.Fatalf("chunk size %d: unexpected remainder %q", size, a.Remainder())
		}
	}
}

func TestLineAssembler_CRLF(t *testing.T) {
	a := &LineAssembler{}
	got := feedAll(t, a, "data: one\r\ndata: two\r\n")
	want := []string{"data: one", "data: two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Feed() = %v, want %v", got, want)
	}
}

func TestLineAssembler_Remainder(t *testing.T) {
	a := &LineAssembler{}
	lines := a.Feed([]byte("data: complete\ndata: parti"))
	if len(lines) != 1 || string(lines[0]) != "data: complete" {
		t.Fatalf("Feed() = %v, want one complete line", lines)
	}
	if string(a.Remainder()) != "data: parti" {
		t.Errorf("Remainder() = %q, want %q", a.Remainder(), "data: parti")
	}

	lines = a.Feed([]byte("al\n"))
	if len(lines) != 1 || string(lines[0]) != "data: partial" {
		t.Fatalf("Feed() after remainder = %v, want completed line", lines)
	}
}

func TestLineAssembler_EmptyLines(t *testing.T) {
	a := &LineAssembler{}
	got := feedAll(t, a, "data: x\n\n\ndata: y\n\n")
	want := []string{"data: x", "", "", "data: y", ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Feed() = %v, want %v", got, want)
	}
}

func TestLineAssembler_LinesNotAliased(t *testing.T) {
	// Returned lines must survive later Feed calls mutating the buffer.
	a := &LineAssembler{}
	first := a.Feed([]byte("alpha\nbet"))
	second := a.Feed([]byte("a\n"))

	if string(first[0]) != "alpha" {
		t.Errorf("earlier line corrupted: %q", first[0])
	}
	if string(second[0]) != "beta" {
		t.Errorf("later line wrong: %q", second[0])
	}
}
