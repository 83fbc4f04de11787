package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log formats accepted by Options.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures the process logger.
type Options struct {
	// Debug selects slog.LevelDebug instead of slog.LevelInfo.
	Debug bool

	// Format is FormatText (default) or FormatJSON.
	Format string

	// File, when set, sends logs to a size-rotated file instead of stderr.
	// stdout is reserved for the stdio transport.
	File string

	// MaxSizeMB, MaxBackups and MaxAgeDays bound the rotated files.
	// Zero values use lumberjack's defaults.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewLogger builds a slog.Logger for opts. The returned io.Closer releases
// the log file and must be closed on shutdown.
func NewLogger(opts Options) (*slog.Logger, io.Closer, error) {
	var out io.WriteCloser = nopCloser{os.Stderr}
	if opts.File != "" {
		out = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
	}

	handler, err := newHandler(out, opts)
	if err != nil {
		_ = out.Close()
		return nil, nil, err
	}
	return slog.New(handler), out, nil
}

func newHandler(w io.Writer, opts Options) (slog.Handler, error) {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}

	switch opts.Format {
	case "", FormatText:
		return slog.NewTextHandler(w, hopts), nil
	case FormatJSON:
		return slog.NewJSONHandler(w, hopts), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q, must be one of: text, json", opts.Format)
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
