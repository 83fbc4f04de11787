package logging

import (
	"fmt"
	"log/slog"
)

// Common log attribute keys.
const (
	KeyOperation  = "operation"
	KeyStore      = "store"
	KeyStatus     = "status"
	KeyError      = "error"
	KeyTool       = "tool"
	KeyTask       = "task"
	KeyPageID     = "page_id"
	KeyCollection = "collection_id"
	KeyCount      = "count"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithTool returns a logger with the tool attribute set.
func WithTool(logger *slog.Logger, tool string) *slog.Logger {
	return logger.With(slog.String(KeyTool, tool))
}

// WithStore returns a logger with the store attribute set.
func WithStore(logger *slog.Logger, store string) *slog.Logger {
	return logger.With(slog.String(KeyStore, store))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Store returns a slog attribute for the remote store backend.
func Store(store string) slog.Attr {
	return slog.String(KeyStore, store)
}

// Tool returns a slog attribute for the tool name.
func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Task returns a slog attribute for a task's display text.
func Task(task string) slog.Attr {
	return slog.String(KeyTask, task)
}

// PageID returns a slog attribute for a remote entry ID.
func PageID(id string) slog.Attr {
	return slog.String(KeyPageID, id)
}

// Collection returns a slog attribute for a remote collection ID.
func Collection(id string) slog.Attr {
	return slog.String(KeyCollection, id)
}

// Count returns a slog attribute for a number of items.
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from output.
//
//	logger.Info("operation", logging.Err(err))  // Safe even if err is nil
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// SanitizeToken returns a masked version of a token for logging.
// It returns a length indicator without exposing any token content.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}

// Token returns a slog attribute carrying SanitizeToken(token).
func Token(token string) slog.Attr {
	return slog.String("token", SanitizeToken(token))
}
