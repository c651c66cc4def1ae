package integrationtests

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ricat/ricat/internal/config"
)

// TestLogger tracks test execution details for logging
type TestLogger struct {
	mu              sync.Mutex
	commandHistory  []string
	fileComparisons []string
	testName        string
}

// NewTestLogger creates a new test logger
func NewTestLogger(testName string) *TestLogger {
	return &TestLogger{
		testName:        testName,
		commandHistory:  make([]string, 0),
		fileComparisons: make([]string, 0),
	}
}

// LogCommand logs a command execution
func (tl *TestLogger) LogCommand(cmd string, args []string) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	fullCmd := fmt.Sprintf("%s %s", cmd, strings.Join(args, " "))
	tl.commandHistory = append(tl.commandHistory, fullCmd)
}

// LogFileComparison logs a file comparison
func (tl *TestLogger) LogFileComparison(fileA, fileB, method string) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	comparison := fmt.Sprintf("Compared %s with %s using %s", fileA, fileB, method)
	diffCmd := fmt.Sprintf("diff -u %s %s", fileA, fileB)
	tl.fileComparisons = append(tl.fileComparisons, comparison)
	tl.fileComparisons = append(tl.fileComparisons, fmt.Sprintf("Manual verification: %s", diffCmd))
}

// WriteLogFile writes the test log to a file
func (tl *TestLogger) WriteLogFile() error {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	logFile := fmt.Sprintf("%s.log", tl.testName)
	f, err := os.Create(logFile)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "Test: %s\n", tl.testName)
	fmt.Fprintf(f, "Timestamp: %s\n\n", time.Now().Format(time.RFC3339))

	fmt.Fprintf(f, "=== EXTERNAL COMMANDS EXECUTED (in order) ===\n")
	for i, cmd := range tl.commandHistory {
		fmt.Fprintf(f, "%d. %s\n", i+1, cmd)
	}

	fmt.Fprintf(f, "\n=== FILE COMPARISONS ===\n")
	for _, comparison := range tl.fileComparisons {
		fmt.Fprintf(f, "%s\n", comparison)
	}

	return nil
}

// testLoggerKey is the context key for storing the test logger
type testLoggerKey struct{}

// WithTestLogger adds a test logger to the context
func WithTestLogger(ctx context.Context, logger *TestLogger) context.Context {
	return context.WithValue(ctx, testLoggerKey{}, logger)
}

// GetTestLogger retrieves the test logger from the context
func GetTestLogger(ctx context.Context) *TestLogger {
	if logger, ok := ctx.Value(testLoggerKey{}).(*TestLogger); ok {
		return logger
	}
	return nil
}

// skipIfNotIntegrationTest skips the test if integration tests are not enabled
func skipIfNotIntegrationTest(t *testing.T) {
	t.Helper()
	if !config.Env("RICAT_INTEGRATION_TEST_RUN_MODE") {
		t.Skip("Skipping integration test")
	}
}

// createTestContextWithTimeout creates a context with a 2-minute timeout that will be cleaned up automatically
func createTestContextWithTimeout(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	logger := NewTestLogger(strings.ReplaceAll(t.Name(), "/", "_"))
	t.Cleanup(func() {
		cancel()
		if t.Failed() {
			if err := logger.WriteLogFile(); err != nil {
				t.Log(err)
			}
		}
	})
	return WithTestLogger(ctx, logger), cancel
}

// cleanupFiles registers files to be removed during test cleanup
func cleanupFiles(t *testing.T, files ...string) {
	t.Helper()
	t.Cleanup(func() {
		for _, file := range files {
			os.Remove(file)
		}
	})
}

// writeTestFile writes content to file and removes it again after the test.
func writeTestFile(t *testing.T, file, content string) {
	t.Helper()
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	cleanupFiles(t, file)
}

// ricatArgs prepends the flags every test run uses: no profile and only
// errors logged.
func ricatArgs(args ...string) []string {
	return append([]string{"--cfg", "none", "--logLevel", "error"}, args...)
}
