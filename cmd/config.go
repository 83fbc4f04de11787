package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teemow/mcp-todo-server/internal/notion"
	"github.com/teemow/mcp-todo-server/internal/store"
	"github.com/teemow/mcp-todo-server/internal/todo"
)

// Transports accepted by --transport.
const (
	transportStdio          = "stdio"
	transportStreamableHTTP = "streamable-http"
)

// serveConfig holds the resolved serve settings. Every field comes from a
// flag, or from its environment variable when the flag was not set.
type serveConfig struct {
	Transport        string
	HTTPAddr         string
	DisableStreaming bool

	Backend         string
	NotionRateLimit float64
	RemoteTimeout   time.Duration

	Debug     bool
	LogFile   string
	LogFormat string

	MetricsEnabled bool
	MetricsAddr    string
}

// envBindings maps serve flags to the environment variables that can set them.
var envBindings = map[string]string{
	"transport":         "MCP_TRANSPORT",
	"http-addr":         "HTTP_ADDR",
	"disable-streaming": "DISABLE_STREAMING",
	"backend":           "TODO_BACKEND",
	"notion-rate-limit": "NOTION_RATE_LIMIT",
	"remote-timeout":    "REMOTE_TIMEOUT",
	"debug":             "DEBUG",
	"log-file":          "LOG_FILE",
	"log-format":        "LOG_FORMAT",
	"metrics-enabled":   "METRICS_ENABLED",
	"metrics-addr":      "METRICS_ADDR",
}

// loadEnvFile loads path into the process environment. Variables that are
// already set win over the file. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// loadServeConfig resolves the serve flags of cmd. An explicitly set flag
// wins over the environment, which wins over the flag default.
func loadServeConfig(cmd *cobra.Command) (serveConfig, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return serveConfig{}, fmt.Errorf("failed to bind flags: %w", err)
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return serveConfig{}, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	cfg := serveConfig{
		Transport:        v.GetString("transport"),
		HTTPAddr:         v.GetString("http-addr"),
		DisableStreaming: v.GetBool("disable-streaming"),
		Backend:          v.GetString("backend"),
		NotionRateLimit:  v.GetFloat64("notion-rate-limit"),
		RemoteTimeout:    v.GetDuration("remote-timeout"),
		Debug:            v.GetBool("debug"),
		LogFile:          v.GetString("log-file"),
		LogFormat:        v.GetString("log-format"),
		MetricsEnabled:   v.GetBool("metrics-enabled"),
		MetricsAddr:      v.GetString("metrics-addr"),
	}
	return cfg, cfg.validate()
}

func (c serveConfig) validate() error {
	switch c.Transport {
	case transportStdio, transportStreamableHTTP:
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: %s, %s)", c.Transport, transportStdio, transportStreamableHTTP)
	}
	switch c.Backend {
	case notion.BackendKey, store.BackendMemory, tasksBackendKey:
	default:
		return fmt.Errorf("unsupported backend: %s (supported: %s, %s, %s)", c.Backend, notion.BackendKey, tasksBackendKey, store.BackendMemory)
	}
	if c.NotionRateLimit < 0 {
		return fmt.Errorf("notion rate limit must not be negative, got %v", c.NotionRateLimit)
	}
	if c.RemoteTimeout < 0 {
		return fmt.Errorf("remote timeout must not be negative, got %s", c.RemoteTimeout)
	}
	return nil
}

// envSettings reads the startup credential and collection ID of b from the
// environment.
func envSettings(b store.Backend) todo.Settings {
	v := viper.New()
	v.AutomaticEnv()
	return todo.Settings{
		Credential:   v.GetString(b.CredentialEnv),
		CollectionID: v.GetString(b.CollectionEnv),
	}
}
