package sink

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	rerrors "github.com/ricat/ricat/internal/errors"
	"github.com/ricat/ricat/internal/io/line"
	"github.com/ricat/ricat/internal/testutil"
)

// countingWriter records every Write call.
type countingWriter struct {
	bytes.Buffer
	writes int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.writes++
	return c.Buffer.Write(p)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestSinkAppendsNewline(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	testutil.AssertNoError(t, s.ProcessLine(line.New("test line", 1, "a")))
	testutil.AssertNoError(t, s.ProcessLine(line.New("", 2, "a")))
	testutil.AssertEqual(t, "", buf.String())

	testutil.AssertNoError(t, s.Flush())
	testutil.AssertEqual(t, "test line\n\n", buf.String())

	lines, written := s.Stats()
	testutil.AssertEqual(t, uint64(2), lines)
	testutil.AssertEqual(t, uint64(11), written)
}

func TestSinkBatchesWrites(t *testing.T) {
	w := &countingWriter{}
	s := NewSize(w, 100)

	// 10 bytes per line, the threshold is reached on every tenth line
	for i := 0; i < 25; i++ {
		testutil.AssertNoError(t, s.ProcessLine(line.New("123456789", uint64(i+1), "a")))
	}
	testutil.AssertEqual(t, 2, w.writes)
	testutil.AssertEqual(t, 50, s.Buffered())

	testutil.AssertNoError(t, s.Close())
	testutil.AssertEqual(t, 3, w.writes)
	testutil.AssertEqual(t, strings.Repeat("123456789\n", 25), w.String())

	// Nothing left, so no empty write
	testutil.AssertNoError(t, s.Flush())
	testutil.AssertEqual(t, 3, w.writes)
}

func TestSinkDefaultSize(t *testing.T) {
	w := &countingWriter{}
	s := NewSize(w, 0)

	for i := 0; i < 1000; i++ {
		testutil.AssertNoError(t, s.ProcessLine(line.New("short", uint64(i+1), "a")))
	}
	testutil.AssertEqual(t, 0, w.writes)
}

func TestSinkWriteError(t *testing.T) {
	s := New(failingWriter{})
	testutil.AssertNoError(t, s.ProcessLine(line.New("x", 1, "a")))

	err := s.Flush()
	testutil.AssertErrorIs(t, err, rerrors.ErrIO)
	testutil.AssertContains(t, err.Error(), "broken pipe")
}

func BenchmarkSink(b *testing.B) {
	var buf bytes.Buffer
	s := New(&buf)
	l := line.New("INFO|1002-071143|1|stats.go:56|8|13|7|0.21|471h0m21s|STATS", 1, "a")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := s.ProcessLine(l); err != nil {
			b.Fatal(err)
		}
		if buf.Len() > 1<<20 {
			buf.Reset()
		}
	}
}
