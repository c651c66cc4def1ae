package dlog

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newBufferLogger(level string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(Config{Level: level, Format: FormatJSON, Out: &buf}), &buf
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newBufferLogger("warn")

	l.Debug("hidden")
	l.Info("hidden too")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug and info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("expected warn message in output, got %q", out)
	}
}

func TestInvalidLevelFallsBackToWarn(t *testing.T) {
	l, buf := newBufferLogger("loud")

	l.Info("hidden")
	l.Error("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("expected fallback level warn, got %q", buf.String())
	}
	if !l.Enabled(zerolog.WarnLevel) || l.Enabled(zerolog.InfoLevel) {
		t.Error("expected only warn and above to be enabled")
	}
}

func TestFieldsAndComponent(t *testing.T) {
	l, buf := newBufferLogger("debug")

	l.WithComponent("source").Debug("opened", Fields("path", "a.txt", "mmap", true, 7, "ignored"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON log entry, got %q: %v", buf.String(), err)
	}
	if entry[FieldComponent] != "source" {
		t.Errorf("expected component field, got %v", entry)
	}
	if entry["path"] != "a.txt" || entry["mmap"] != true {
		t.Errorf("expected path and mmap fields, got %v", entry)
	}
	if entry["message"] != "opened" {
		t.Errorf("expected message field, got %v", entry)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{Level: "warn", Format: FormatConsole}, false},
		{"json debug", Config{Level: "debug", Format: FormatJSON}, false},
		{"bad level", Config{Level: "loud", Format: FormatJSON}, true},
		{"empty level", Config{Format: FormatJSON}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestStartReplacesCommon(t *testing.T) {
	var buf bytes.Buffer
	old := Get()
	defer func() {
		mu.Lock()
		Common = old
		mu.Unlock()
	}()

	Start(Config{Level: "info", Format: FormatJSON, Out: &buf})
	Get().Info("hello")

	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected message from started logger, got %q", buf.String())
	}
}
