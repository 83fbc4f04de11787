package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.log")

	logger, closer, err := NewLogger(Options{File: path, Format: FormatJSON})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Info("task created", Store("memory"), PageID("id-1"))
	logger.Debug("hidden at info level")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), data)
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["msg"] != "task created" || rec[KeyStore] != "memory" || rec[KeyPageID] != "id-1" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	_, _, err := NewLogger(Options{Format: "xml"})
	if err == nil || !strings.Contains(err.Error(), "unsupported log format") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

func TestNewHandler_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	h, err := newHandler(&buf, Options{Debug: true})
	if err != nil {
		t.Fatalf("newHandler: %v", err)
	}
	slog.New(h).Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug record missing: %q", buf.String())
	}
}
