package instrumentation

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

const (
	testTraceID = "abc123def456"
	testTool    = "remove_task"
)

func TestToolInvocation_NewAndComplete(t *testing.T) {
	ti := NewToolInvocation(testTool)

	if ti.Tool != testTool {
		t.Errorf("Tool = %q, want %q", ti.Tool, testTool)
	}
	if ti.StartTime.IsZero() {
		t.Error("StartTime should not be zero")
	}

	ti.CompleteSuccess()

	if !ti.Success {
		t.Error("Success should be true")
	}
	if ti.Duration < 0 {
		t.Error("Duration should not be negative")
	}
	if ti.Status() != StatusSuccess {
		t.Errorf("Status() = %q, want %q", ti.Status(), StatusSuccess)
	}
}

func TestToolInvocation_CompleteWithError(t *testing.T) {
	ti := NewToolInvocation(testTool).WithStore("notion", OperationArchive)
	ti.CompleteWithError(errors.New("rate_limited"))

	if ti.Success {
		t.Error("Success should be false")
	}
	if ti.Error != "rate_limited" {
		t.Errorf("Error = %q, want rate_limited", ti.Error)
	}
	if ti.Status() != StatusError {
		t.Errorf("Status() = %q, want %q", ti.Status(), StatusError)
	}
}

func TestToolInvocation_LogAttrs(t *testing.T) {
	ti := NewToolInvocation(testTool).
		WithStore("notion", OperationArchive).
		WithArguments(map[string]string{"task": "buy milk"})
	ti.TraceID = testTraceID
	ti.CompleteSuccess()

	keys := map[string]bool{}
	for _, a := range ti.LogAttrs() {
		keys[a.Key] = true
	}
	for _, want := range []string{"tool", "duration", "success", "store", "operation", "trace_id"} {
		if !keys[want] {
			t.Errorf("LogAttrs missing %q", want)
		}
	}
	if keys["arguments"] {
		t.Error("LogAttrs must not include arguments")
	}

	keys = map[string]bool{}
	for _, a := range ti.LogAuditAttrs() {
		keys[a.Key] = true
	}
	if !keys["arguments"] {
		t.Error("LogAuditAttrs should include arguments")
	}
}

func TestAuditLogger_LogToolInvocation(t *testing.T) {
	tests := []struct {
		name          string
		config        AuditLoggingConfig
		success       bool
		wantOutput    bool
		wantArguments bool
		wantMessage   string
	}{
		{
			name:        "success without arguments",
			config:      AuditLoggingConfig{Enabled: true},
			success:     true,
			wantOutput:  true,
			wantMessage: "tool_executed",
		},
		{
			name:          "failure with arguments",
			config:        AuditLoggingConfig{Enabled: true, IncludeArguments: true},
			wantOutput:    true,
			wantArguments: true,
			wantMessage:   "tool_failed",
		},
		{
			name:    "disabled",
			config:  AuditLoggingConfig{Enabled: false},
			success: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			al := NewAuditLoggerWithConfig(logger, tt.config)

			ti := NewToolInvocation("add_task").WithArguments(map[string]string{"task": "walk dog"})
			if tt.success {
				ti.CompleteSuccess()
			} else {
				ti.CompleteWithError(errors.New("boom"))
			}
			al.LogToolInvocation(ti)

			out := buf.String()
			if !tt.wantOutput {
				if out != "" {
					t.Errorf("expected no output, got %q", out)
				}
				return
			}
			if !strings.Contains(out, tt.wantMessage) {
				t.Errorf("output %q missing %q", out, tt.wantMessage)
			}
			if got := strings.Contains(out, "walk dog"); got != tt.wantArguments {
				t.Errorf("arguments present = %v, want %v (output %q)", got, tt.wantArguments, out)
			}
		})
	}
}

func TestAuditLogger_Nil(t *testing.T) {
	var al *AuditLogger
	al.LogToolInvocation(NewToolInvocation(testTool).CompleteSuccess())
}

func TestNewAuditLogger_DefaultLogger(t *testing.T) {
	al := NewAuditLogger(nil)
	if al.logger == nil {
		t.Error("expected default logger")
	}
	if !al.enabled || al.includeArguments {
		t.Error("expected enabled logger without arguments")
	}
}
