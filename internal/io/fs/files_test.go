package fs

import (
	"bytes"
	"compress/gzip"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DataDog/zstd"

	"github.com/ricat/ricat/internal/errors"
	"github.com/ricat/ricat/internal/io/dlog"
	"github.com/ricat/ricat/internal/io/line"
	"github.com/ricat/ricat/internal/testutil"
)

func collect(t *testing.T, src Source) ([]line.Line, error) {
	t.Helper()
	var lines []line.Line
	for {
		l, err := src.Next()
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
		lines = append(lines, l)
	}
}

func contents(lines []line.Line) []string {
	var c []string
	for _, l := range lines {
		c = append(c, l.Content)
	}
	return c
}

func assertContents(t *testing.T, expected []string, lines []line.Line) {
	t.Helper()
	got := contents(lines)
	if strings.Join(expected, "|") != strings.Join(got, "|") || len(expected) != len(got) {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestFilesSingle(t *testing.T) {
	path := testutil.TempFile(t, "Line 1\nLine 2\r\n\nLine 4")
	src := NewFiles([]string{path}, dlog.Nop())
	defer src.Close()

	lines, err := collect(t, src)
	testutil.AssertNoError(t, err)
	assertContents(t, []string{"Line 1", "Line 2", "", "Line 4"}, lines)

	for i, l := range lines {
		testutil.AssertEqual(t, uint64(i+1), l.Ordinal)
		testutil.AssertEqual(t, path, l.SourceID)
	}
}

func TestFilesOrdinalSpansFiles(t *testing.T) {
	first := testutil.TempFile(t, "a\nb\n")
	empty := testutil.TempFile(t, "")
	second := testutil.TempFile(t, "c\n")

	src := NewFiles([]string{first, empty, second}, dlog.Nop())
	defer src.Close()

	lines, err := collect(t, src)
	testutil.AssertNoError(t, err)
	assertContents(t, []string{"a", "b", "c"}, lines)
	testutil.AssertEqual(t, uint64(3), lines[2].Ordinal)
	testutil.AssertEqual(t, second, lines[2].SourceID)
}

func TestFilesMissingAbortsAtPosition(t *testing.T) {
	first := testutil.TempFile(t, "before\n")
	missing := filepath.Join(testutil.TempDir(t), "missing.txt")
	after := testutil.TempFile(t, "after\n")

	src := NewFiles([]string{first, missing, after}, dlog.Nop())
	defer src.Close()

	lines, err := collect(t, src)
	assertContents(t, []string{"before"}, lines)
	testutil.AssertErrorIs(t, err, errors.ErrIO)
	testutil.AssertErrorIs(t, err, fs.ErrNotExist)
	testutil.AssertContains(t, err.Error(), "missing.txt")

	// Nothing is read past the failing file
	_, err = src.Next()
	if err == nil {
		t.Error("expected no further lines after a failed open")
	}
}

func TestFilesDirectory(t *testing.T) {
	src := NewFiles([]string{testutil.TempDir(t)}, dlog.Nop())
	defer src.Close()

	_, err := collect(t, src)
	testutil.AssertErrorIs(t, err, errors.ErrIO)
}

func TestFilesGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte("compressed 1\ncompressed 2\n"))
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, gz.Close())

	path := testutil.TempFileNamed(t, "input.log.gz", buf.Bytes())
	src := NewFiles([]string{path}, dlog.Nop())
	defer src.Close()

	lines, err := collect(t, src)
	testutil.AssertNoError(t, err)
	assertContents(t, []string{"compressed 1", "compressed 2"}, lines)
}

func TestFilesGzipCorrupt(t *testing.T) {
	path := testutil.TempFileNamed(t, "broken.gz", []byte("not gzip at all\n"))
	src := NewFiles([]string{path}, dlog.Nop())
	defer src.Close()

	_, err := collect(t, src)
	testutil.AssertErrorIs(t, err, errors.ErrIO)
}

func TestFilesZstd(t *testing.T) {
	data, err := zstd.Compress(nil, []byte("zstd 1\nzstd 2\nzstd 3"))
	testutil.AssertNoError(t, err)

	path := testutil.TempFileNamed(t, "input.log.zst", data)
	src := NewFiles([]string{path}, dlog.Nop())
	defer src.Close()

	lines, err := collect(t, src)
	testutil.AssertNoError(t, err)
	assertContents(t, []string{"zstd 1", "zstd 2", "zstd 3"}, lines)
}

func TestFilesLargeFile(t *testing.T) {
	expected := testutil.GenerateLogLines(5000)
	path := testutil.TempFile(t, strings.Join(expected, "\n")+"\n")

	src := NewFiles([]string{path}, dlog.Nop())
	defer src.Close()

	lines, err := collect(t, src)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(expected), len(lines))
	for i := range expected {
		if expected[i] != lines[i].Content {
			t.Fatalf("line %d: expected %q, got %q", i+1, expected[i], lines[i].Content)
		}
	}
}

func TestFilesCloseEarly(t *testing.T) {
	path := testutil.TempFile(t, "a\nb\nc\n")
	src := NewFiles([]string{path, path}, dlog.Nop())

	_, err := src.Next()
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, src.Close())
	testutil.AssertNoError(t, src.Close())

	_, err = src.Next()
	testutil.AssertEqual(t, io.EOF, err)
}

func TestReader(t *testing.T) {
	src := NewReader(strings.NewReader("Line 1\nLine 2\nLine 3"), StdinID)
	defer src.Close()

	lines, err := collect(t, src)
	testutil.AssertNoError(t, err)
	assertContents(t, []string{"Line 1", "Line 2", "Line 3"}, lines)
	testutil.AssertEqual(t, StdinID, lines[0].SourceID)
	testutil.AssertEqual(t, uint64(3), lines[2].Ordinal)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device gone")
}

func TestReaderError(t *testing.T) {
	src := NewReader(failingReader{}, StdinID)
	_, err := src.Next()
	testutil.AssertErrorIs(t, err, errors.ErrIO)
	testutil.AssertContains(t, err.Error(), "device gone")
}

func TestReaderLineByLine(t *testing.T) {
	r := &oneByteReader{data: "first\nsecond\n"}
	src := NewReader(r, StdinID)

	l, err := src.Next()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, "first", l.Content)
	testutil.AssertEqual(t, 6, r.reads)
}

func TestReaderWouldBlock(t *testing.T) {
	src := NewReader(&oneByteReader{data: "a\nb\n"}, StdinID)
	blocking, ok := src.(Blocking)
	if !ok {
		t.Fatal("expected reader source to implement Blocking")
	}

	testutil.AssertEqual(t, true, blocking.WouldBlock())
	_, err := src.Next()
	testutil.AssertNoError(t, err)
	// One byte per read, nothing of the second line is buffered yet
	testutil.AssertEqual(t, true, blocking.WouldBlock())

	src = NewReader(strings.NewReader("a\nb\n"), StdinID)
	blocking = src.(Blocking)
	_, err = src.Next()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, false, blocking.WouldBlock())
}

func TestFilesNeverBlock(t *testing.T) {
	if _, ok := NewFiles(nil, dlog.Nop()).(Blocking); ok {
		t.Error("file sources should not report blocking")
	}
}
