package benchmarks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// CommandResult captures the output and metrics from running a command
type CommandResult struct {
	Stdout   string
	Stderr   string
	Duration time.Duration
	ExitCode int
}

// RunBenchmarkCommand executes the ricat binary and captures metrics. Output
// is discarded unless captureStdout is set as it can be very large.
func RunBenchmarkCommand(b *testing.B, captureStdout bool, args ...string) (*CommandResult, error) {
	b.Helper()

	// Look for the binary in the parent directory (from benchmarks/ to ../)
	cmdPath := filepath.Join("..", "ricat")
	if _, err := os.Stat(cmdPath); err != nil {
		return nil, fmt.Errorf("command %s not found: %w", cmdPath, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), GetBenchmarkTimeout())
	defer cancel()

	// A missing profile directory keeps the user's profile out of the numbers
	command := exec.CommandContext(ctx, cmdPath, append([]string{"--cfg", "none"}, args...)...)
	command.Env = append(os.Environ(), "RICAT_CONFIG_DIR="+b.TempDir())

	var stdout, stderr bytes.Buffer
	if captureStdout {
		command.Stdout = &stdout
	}
	command.Stderr = &stderr

	startTime := time.Now()
	err := command.Run()
	result := &CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(startTime),
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
		return result, fmt.Errorf("ricat exited with %d: %s", result.ExitCode, result.Stderr)
	}
	return result, err
}

// CalculateThroughput computes MB/sec from file size and duration
func CalculateThroughput(fileSize int64, duration time.Duration) float64 {
	if duration == 0 {
		return 0
	}
	megabytes := float64(fileSize) / (1024 * 1024)
	return megabytes / duration.Seconds()
}

// CalculateLinesPerSecond computes lines/sec from line count and duration
func CalculateLinesPerSecond(lineCount int, duration time.Duration) float64 {
	if duration == 0 {
		return 0
	}
	return float64(lineCount) / duration.Seconds()
}

// GetBenchmarkSizes returns the file sizes to test based on environment
func GetBenchmarkSizes() []FileSize {
	sizesEnv := os.Getenv("RICAT_BENCH_SIZES")
	if sizesEnv == "" {
		return []FileSize{Small, Medium}
	}

	var sizes []FileSize
	for _, sizeStr := range strings.Split(sizesEnv, ",") {
		switch strings.ToLower(strings.TrimSpace(sizeStr)) {
		case "small", "10mb":
			sizes = append(sizes, Small)
		case "medium", "100mb":
			sizes = append(sizes, Medium)
		case "large", "1gb":
			sizes = append(sizes, Large)
		}
	}

	if len(sizes) == 0 {
		// Fallback to small if nothing valid specified
		return []FileSize{Small}
	}
	return sizes
}

// GetBenchmarkTimeout returns the timeout for a single command run
func GetBenchmarkTimeout() time.Duration {
	timeout, err := time.ParseDuration(os.Getenv("RICAT_BENCH_TIMEOUT"))
	if err != nil || timeout <= 0 {
		return 5 * time.Minute
	}
	return timeout
}

// runTimed runs the same command b.N times and reports throughput metrics.
func runTimed(b *testing.B, data TestData, args ...string) {
	b.Helper()

	// Warmup
	if _, err := RunBenchmarkCommand(b, false, args...); err != nil {
		b.Fatalf("Warmup failed: %v", err)
	}

	b.ResetTimer()
	var total time.Duration
	for i := 0; i < b.N; i++ {
		result, err := RunBenchmarkCommand(b, false, args...)
		if err != nil {
			b.Fatalf("Command failed: %v", err)
		}
		total += result.Duration
	}

	avg := total / time.Duration(b.N)
	b.ReportMetric(CalculateThroughput(data.Bytes, avg), "MB/sec")
	b.ReportMetric(CalculateLinesPerSecond(data.Lines, avg), "lines/sec")
}
