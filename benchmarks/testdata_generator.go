package benchmarks

import (
	"bufio"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DataDog/zstd"
)

// FileSize represents the size category of test files
type FileSize int

const (
	Small  FileSize = 10 * 1024 * 1024   // 10MB
	Medium FileSize = 100 * 1024 * 1024  // 100MB
	Large  FileSize = 1024 * 1024 * 1024 // 1GB
)

func (fs FileSize) String() string {
	switch fs {
	case Small:
		return "10MB"
	case Medium:
		return "100MB"
	case Large:
		return "1GB"
	default:
		return fmt.Sprintf("%dB", fs)
	}
}

// CompressionType represents file compression options
type CompressionType int

const (
	NoCompression CompressionType = iota
	GzipCompression
	ZstdCompression
)

// TestDataConfig configures test data generation
type TestDataConfig struct {
	Size        FileSize
	Compression CompressionType
	Base64      bool   // Write every line Base64 encoded
	Pattern     string // Pattern to include for search testing
	PatternRate int    // Percentage of lines containing pattern (0-100)
	BlankRate   int    // Percentage of blank lines (0-100)
}

// TestData describes a generated file. Bytes and Lines count the
// uncompressed content.
type TestData struct {
	Path  string
	Bytes int64
	Lines int
}

// GenerateTestFile creates a test file in a temporary directory which is
// removed with the benchmark.
func GenerateTestFile(tb testing.TB, config TestDataConfig) TestData {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "ricat_bench.txt")
	switch config.Compression {
	case GzipCompression:
		path += ".gz"
	case ZstdCompression:
		path += ".zst"
	}

	file, err := os.Create(path)
	if err != nil {
		tb.Fatalf("Failed to create test file: %v", err)
	}
	defer file.Close()

	var w io.WriteCloser
	switch config.Compression {
	case GzipCompression:
		w = gzip.NewWriter(file)
	case ZstdCompression:
		w = zstd.NewWriterLevel(file, zstd.DefaultCompression)
	}

	var out io.Writer = file
	if w != nil {
		out = w
	}
	buffered := bufio.NewWriter(out)

	data := TestData{Path: path}
	if err := writeLines(buffered, config, &data); err != nil {
		tb.Fatalf("Failed to generate test file: %v", err)
	}
	if err := buffered.Flush(); err != nil {
		tb.Fatalf("Failed to flush test file: %v", err)
	}
	if w != nil {
		if err := w.Close(); err != nil {
			tb.Fatalf("Failed to finish compressed test file: %v", err)
		}
	}
	return data
}

func writeLines(w io.Writer, config TestDataConfig, data *TestData) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for data.Bytes < int64(config.Size) {
		line := generateLine(data.Lines, config, rng)
		if config.Base64 {
			line = base64.StdEncoding.EncodeToString([]byte(line))
		}
		n, err := fmt.Fprintln(w, line)
		if err != nil {
			return err
		}
		data.Bytes += int64(n)
		data.Lines++
	}
	return nil
}

// generateLine creates a log line, tab separated so that tab expansion has
// work to do.
func generateLine(id int, config TestDataConfig, rng *rand.Rand) string {
	if rng.Intn(100) < config.BlankRate {
		return ""
	}

	levels := []string{"INFO", "WARN", "ERROR", "DEBUG"}
	message := fmt.Sprintf("Processing request %d", id)
	if config.Pattern != "" && rng.Intn(100) < config.PatternRate {
		message = fmt.Sprintf("%s %s", message, config.Pattern)
	}

	return fmt.Sprintf("%s\t%s\tthread-%d\tapp.go:%d\t%s",
		levels[rng.Intn(len(levels))], generateTimestamp(id), rng.Intn(10)+1, rng.Intn(1000)+1, message)
}

// generateTimestamp creates a timestamp for log lines
func generateTimestamp(lineNum int) string {
	baseTime := time.Date(2024, 10, 2, 7, 10, 0, 0, time.UTC)
	// Advance time every 10 lines
	t := baseTime.Add(time.Duration(lineNum/10) * time.Second)
	return t.Format("0102-150405")
}
