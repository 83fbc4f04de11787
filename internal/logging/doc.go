// Package logging provides structured logging utilities for the todo server.
//
// It centralizes attribute naming (tool, store, operation, task, page_id),
// the Logger interface consumed by the core packages, and construction of
// the process logger. Logs go to stderr by default since the stdio
// transport owns stdout; with a log file they go to a rotated file written
// through lumberjack.
//
//	logger, closer, err := logging.NewLogger(logging.Options{File: "todo.log", Format: logging.FormatJSON})
//	if err != nil {
//		return err
//	}
//	defer closer.Close()
//	logger.Info("task created", logging.Store("notion"), logging.PageID(id))
//
// Credentials are never logged; use SanitizeToken or Token.
package logging
