package integrationtests

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

func TestRicatCat(t *testing.T) {
	skipIfNotIntegrationTest(t)
	ctx, _ := createTestContextWithTimeout(t)

	inFile := "ricat_cat.txt"
	outFile := "ricat_cat.out"
	var sb strings.Builder
	for i := 0; i < 50000; i++ {
		sb.WriteString("INFO|1002-071143|1|stats.go:56|8|13|7|0.21|471h0m21s|STATS|currentConnections=0\n")
	}
	writeTestFile(t, inFile, sb.String())
	cleanupFiles(t, outFile)

	code, stderr, err := runCommand(ctx, t, "", outFile, ricatBinary, ricatArgs(inFile)...)
	if err != nil {
		t.Fatal(err)
	}
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d: %s", code, stderr)
	}
	if err := compareFilesWithContext(ctx, t, inFile, outFile); err != nil {
		t.Error(err)
	}
}

func TestRicatLineEndings(t *testing.T) {
	skipIfNotIntegrationTest(t)
	ctx, _ := createTestContextWithTimeout(t)

	inFile := "ricat_line_endings.txt"
	outFile := "ricat_line_endings.out"
	expectedFile := "ricat_line_endings.expected"
	writeTestFile(t, inFile, "Line 1\r\nLine 2\nLine 3 with no ending")
	writeTestFile(t, expectedFile, "Line 1$\nLine 2$\nLine 3 with no ending$\n")
	cleanupFiles(t, outFile)

	if _, _, err := runCommand(ctx, t, "", outFile, ricatBinary, ricatArgs("-d", inFile)...); err != nil {
		t.Fatal(err)
	}
	if err := compareFilesWithContext(ctx, t, expectedFile, outFile); err != nil {
		t.Error(err)
	}
}

func TestRicatSearch(t *testing.T) {
	skipIfNotIntegrationTest(t)
	ctx, _ := createTestContextWithTimeout(t)

	inFile := "ricat_search.txt"
	outFile := "ricat_search.out"
	expectedFile := "ricat_search.expected"
	writeTestFile(t, inFile, "INFO start\nERROR disk full\nINFO retry\nerror again\n")
	writeTestFile(t, expectedFile, "ERROR disk full\nerror again\n")
	cleanupFiles(t, outFile)

	code, _, err := runCommand(ctx, t, "", outFile, ricatBinary,
		ricatArgs("--search", "--text", "reg:^error", "-i", inFile)...)
	if err != nil {
		t.Fatal(err)
	}
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d", code)
	}
	if err := compareFilesContents(t, expectedFile, outFile); err != nil {
		t.Error(err)
	}
}

func TestRicatBase64RoundTrip(t *testing.T) {
	skipIfNotIntegrationTest(t)
	ctx, _ := createTestContextWithTimeout(t)

	inFile := "ricat_base64.txt"
	encodedFile := "ricat_base64.encoded"
	decodedFile := "ricat_base64.decoded"
	writeTestFile(t, inFile, "Line 1\nLine 2\n\nÜmlaut\tand tab\n")
	cleanupFiles(t, encodedFile, decodedFile)

	if _, _, err := runCommand(ctx, t, "", encodedFile, ricatBinary,
		ricatArgs("--encode-base64", inFile)...); err != nil {
		t.Fatal(err)
	}
	if err := fileContainsStr(t, encodedFile, "TGluZSAx"); err != nil {
		t.Error(err)
	}

	// Decode from standard input this time
	if _, _, err := runCommand(ctx, t, encodedFile, decodedFile, ricatBinary,
		ricatArgs("--decode-base64")...); err != nil {
		t.Fatal(err)
	}
	if err := compareFilesWithContext(ctx, t, inFile, decodedFile); err != nil {
		t.Error(err)
	}
}

func TestRicatGzip(t *testing.T) {
	skipIfNotIntegrationTest(t)
	ctx, _ := createTestContextWithTimeout(t)

	inFile := "ricat_gzip.txt.gz"
	outFile := "ricat_gzip.out"
	expectedFile := "ricat_gzip.expected"
	writeTestFile(t, expectedFile, "1 compressed\n2 content\n")
	cleanupFiles(t, inFile, outFile)

	fd, err := os.Create(inFile)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(fd)
	gz.Write([]byte("compressed\ncontent\n"))
	gz.Close()
	fd.Close()

	if _, _, err := runCommand(ctx, t, "", outFile, ricatBinary, ricatArgs("-n", inFile)...); err != nil {
		t.Fatal(err)
	}
	if err := compareFilesWithContext(ctx, t, expectedFile, outFile); err != nil {
		t.Error(err)
	}
}

func TestRicatExitCodes(t *testing.T) {
	skipIfNotIntegrationTest(t)
	ctx, _ := createTestContextWithTimeout(t)

	inFile := "ricat_exit_codes.txt"
	outFile := "ricat_exit_codes.out"
	writeTestFile(t, inFile, "not base64 at all\n")
	cleanupFiles(t, outFile)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing file", []string{"does_not_exist.txt"}, 1},
		{"usage", []string{"--search"}, 2},
		{"pattern", []string{"--search", "--text", "reg:(", inFile}, 3},
		{"decode", []string{"--decode-base64", inFile}, 4},
		{"conflict", []string{"--encode-base64", "--decode-base64", inFile}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stderr, err := runCommand(ctx, t, "", outFile, ricatBinary, ricatArgs(tt.args...)...)
			if err != nil {
				t.Fatal(err)
			}
			if code != tt.code {
				t.Errorf("Expected exit code %d, got %d", tt.code, code)
			}
			if !strings.HasPrefix(stderr, "ricat: ") {
				t.Errorf("Expected error message on stderr, got %q", stderr)
			}
		})
	}
}

// TestRicatInteractiveStdin checks that every line typed is echoed before
// the next one is written.
func TestRicatInteractiveStdin(t *testing.T) {
	skipIfNotIntegrationTest(t)
	ctx, _ := createTestContextWithTimeout(t)

	stdin, stdout, cmdErrCh, err := startCommand(ctx, t, ricatBinary, ricatArgs("-n")...)
	if err != nil {
		t.Fatal(err)
	}
	reader := bufio.NewReader(stdout)

	for i, input := range []string{"first", "second", "third"} {
		if _, err := stdin.Write([]byte(input + "\n")); err != nil {
			t.Fatal(err)
		}

		lineCh := make(chan string, 1)
		go func() {
			line, _ := reader.ReadString('\n')
			lineCh <- line
		}()

		select {
		case line := <-lineCh:
			expected := fmt.Sprintf("%d %s\n", i+1, input)
			if line != expected {
				t.Errorf("Expected %q, got %q", expected, line)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("No output for %q, stdin is not processed line by line", input)
		}
	}

	stdin.Close()
	if err := <-cmdErrCh; err != nil {
		t.Error(err)
	}
}
