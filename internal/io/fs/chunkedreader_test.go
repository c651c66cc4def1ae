package fs

import (
	"io"
	"strings"
	"testing"

	"github.com/ricat/ricat/internal/testutil"
)

func readAllLines(t *testing.T, r interface{ NextLine() ([]byte, error) }) []string {
	t.Helper()
	var lines []string
	for {
		b, err := r.NextLine()
		if err == io.EOF {
			return lines
		}
		testutil.AssertNoError(t, err)
		lines = append(lines, string(b))
	}
}

func TestChunkedReader(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		chunkSize int
		expected  []string
	}{
		{"empty", "", 16, nil},
		{"single line", "hello\n", 16, []string{"hello\n"}},
		{"no trailing newline", "a\nb", 16, []string{"a\n", "b"}},
		{"line spans chunks", "0123456789abcdef\nxy\n", 4, []string{"0123456789abcdef\n", "xy\n"}},
		{"blank lines", "\n\n\n", 1, []string{"\n", "\n", "\n"}},
		{"crlf kept", "a\r\nb\r\n", 3, []string{"a\r\n", "b\r\n"}},
		{"default chunk size", "x\n", 0, []string{"x\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readAllLines(t, NewChunkedReader(strings.NewReader(tt.input), tt.chunkSize))
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
			for i := range got {
				testutil.AssertEqual(t, tt.expected[i], got[i])
			}
		})
	}
}

// oneByteReader hands out one byte per Read, like a slow terminal.
type oneByteReader struct {
	data  string
	reads int
}

func (r *oneByteReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	r.reads++
	p[0] = r.data[0]
	r.data = r.data[1:]
	return 1, nil
}

func TestChunkedReaderReturnsEarly(t *testing.T) {
	r := &oneByteReader{data: "ab\ncd\n"}
	cr := NewChunkedReader(r, 1024)

	b, err := cr.NextLine()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, "ab\n", string(b))
	// The second line must not have been requested yet
	testutil.AssertEqual(t, 3, r.reads)
}

func TestMappedReader(t *testing.T) {
	m := &mappedReader{data: []byte("one\ntwo\r\nthree")}
	var got []string
	for m.pos < len(m.data) {
		b, err := m.NextLine()
		testutil.AssertNoError(t, err)
		got = append(got, toString(b))
	}
	testutil.AssertEqual(t, 3, len(got))
	testutil.AssertEqual(t, "one", got[0])
	testutil.AssertEqual(t, "two", got[1])
	testutil.AssertEqual(t, "three", got[2])
}

func TestTrimTerminator(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"line\n", "line"},
		{"line\r\n", "line"},
		{"line\r", "line\r"},
		{"line", "line"},
		{"\n", ""},
		{"\r\n", ""},
		{"", ""},
		{"a\rb\n", "a\rb"},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, tt.want, toString([]byte(tt.in)))
	}
}

func TestChunkedReaderRelease(t *testing.T) {
	cr := NewChunkedReader(strings.NewReader("a\nb\n"), 0)
	if cr.pooled == nil {
		t.Fatal("expected default sized reader to use a pooled buffer")
	}

	line, err := cr.NextLine()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, "a\n", string(line))

	cr.Release()
	cr.Release()
	if _, err := cr.NextLine(); err != io.EOF {
		t.Errorf("expected io.EOF after release, got %v", err)
	}

	small := NewChunkedReader(strings.NewReader(""), 16)
	if small.pooled != nil {
		t.Error("expected custom sized reader to allocate its own buffer")
	}
	small.Release()
}
