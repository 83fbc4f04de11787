package logging

import (
	"errors"
	"log/slog"
	"testing"
)

func TestAttrs(t *testing.T) {
	tests := []struct {
		name    string
		attr    slog.Attr
		wantKey string
		wantVal string
	}{
		{"operation", Operation("sync"), KeyOperation, "sync"},
		{"store", Store("notion"), KeyStore, "notion"},
		{"tool", Tool("add_task"), KeyTool, "add_task"},
		{"status", Status(StatusSuccess), KeyStatus, "success"},
		{"task", Task("buy milk"), KeyTask, "buy milk"},
		{"page id", PageID("id-1"), KeyPageID, "id-1"},
		{"collection", Collection("db-1"), KeyCollection, "db-1"},
		{"count", Count(3), KeyCount, "3"},
		{"error", Err(errors.New("boom")), KeyError, "boom"},
		{"token", Token("secret_abc"), "token", "[token:10 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.wantKey {
				t.Errorf("key = %q, want %q", tt.attr.Key, tt.wantKey)
			}
			if got := tt.attr.Value.String(); got != tt.wantVal {
				t.Errorf("value = %q, want %q", got, tt.wantVal)
			}
		})
	}
}

func TestErr_Nil(t *testing.T) {
	attr := Err(nil)
	if attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty", attr.Key)
	}
	if attr.Value.Kind() != slog.KindGroup || len(attr.Value.Group()) != 0 {
		t.Error("Err(nil) should be an empty group")
	}
}

func TestSanitizeToken(t *testing.T) {
	if got := SanitizeToken(""); got != "<empty>" {
		t.Errorf("SanitizeToken(\"\") = %q", got)
	}
	got := SanitizeToken("secret_1234567890")
	if got != "[token:17 chars]" {
		t.Errorf("SanitizeToken = %q", got)
	}
}

func TestWithHelpers(t *testing.T) {
	logger := slog.Default()
	if WithOperation(logger, "sync") == nil {
		t.Error("WithOperation returned nil")
	}
	if WithTool(logger, "add_task") == nil {
		t.Error("WithTool returned nil")
	}
	if WithStore(logger, "notion") == nil {
		t.Error("WithStore returned nil")
	}
}
