package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/teemow/mcp-todo-server/internal/instrumentation"
	"github.com/teemow/mcp-todo-server/internal/logging"
	"github.com/teemow/mcp-todo-server/internal/resources"
	"github.com/teemow/mcp-todo-server/internal/server"
	"github.com/teemow/mcp-todo-server/internal/todo"
	"github.com/teemow/mcp-todo-server/internal/tools/todo_tools"
)

const (
	serverName = "mcp-todo-server"

	startupTimeout = 5 * time.Second
)

func newServeCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the MCP server that manages an in-memory task list and mirrors it
to a remote store on demand.

The remote store defaults to Notion. NOTION_TOKEN and NOTION_DATABASE_ID
seed its configuration at startup; the setup_notion tool replaces it at run
time. Every flag can also be set through the environment variable named in
its help text, and a .env file is loaded first when present.

Supports multiple transports:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP with /healthz and /readyz endpoints`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnvFile(envFile); err != nil {
				return err
			}
			cfg, err := loadServeConfig(cmd)
			if err != nil {
				return err
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before the configuration is read. Missing files are ignored.")
	cmd.Flags().String("transport", transportStdio, "Transport type: stdio or streamable-http. Can also use MCP_TRANSPORT env var.")
	cmd.Flags().String("http-addr", server.DefaultHTTPAddr, "HTTP server address (for streamable-http transport). Can also use HTTP_ADDR env var.")
	cmd.Flags().Bool("disable-streaming", false, "Disable streaming for HTTP transport (for compatibility with certain clients). Can also use DISABLE_STREAMING env var.")
	cmd.Flags().String("backend", "notion", "Remote store: notion, google-tasks or memory. Can also use TODO_BACKEND env var.")
	cmd.Flags().Float64("notion-rate-limit", 3, "Maximum Notion API calls per second, 0 disables the limit. Can also use NOTION_RATE_LIMIT env var.")
	cmd.Flags().Duration("remote-timeout", 30*time.Second, "Deadline for each sync or remote archive, 0 disables it. Can also use REMOTE_TIMEOUT env var.")
	cmd.Flags().Bool("debug", false, "Enable debug logging. Can also use DEBUG env var.")
	cmd.Flags().String("log-file", "", "Write logs to a size-rotated file instead of stderr. Can also use LOG_FILE env var.")
	cmd.Flags().String("log-format", logging.FormatText, "Log format: text or json. Can also use LOG_FORMAT env var.")
	cmd.Flags().Bool("metrics-enabled", true, "Enable the metrics server on a dedicated port (streamable-http only). Can also use METRICS_ENABLED env var.")
	cmd.Flags().String("metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(cfg serveConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger, logCloser, err := logging.NewLogger(logging.Options{
		Debug:  cfg.Debug,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logCloser.Close() }()
	slog.SetDefault(logger)

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logger.Warn("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	var metrics *instrumentation.Metrics
	if provider.Enabled() {
		metrics = provider.Metrics()
	}

	backend, err := newBackend(cfg, http.DefaultClient, metrics)
	if err != nil {
		return err
	}

	defaults := envSettings(backend)
	svc, err := todo.NewService(backend, defaults,
		todo.WithLogger(logging.NewSlogAdapter(logger)),
		todo.WithMetrics(metrics),
		todo.WithRemoteTimeout(cfg.RemoteTimeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create task service: %w", err)
	}

	serverContext, err := server.NewServerContext(shutdownCtx, svc)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() { _ = serverContext.Shutdown() }()

	if provider.Enabled() {
		serverContext.SetMetrics(metrics)
		serverContext.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(logger, instrConfig.AuditLogging))
	}

	mcpSrv, err := newMCPServer(serverContext)
	if err != nil {
		return err
	}

	logger.Info("starting server",
		slog.String("transport", cfg.Transport),
		logging.Store(backend.Key),
		slog.Bool("configured", defaults.Configured()))
	if !defaults.Configured() {
		logger.Info(fmt.Sprintf("%s is not configured; set %s and %s or call setup_notion",
			backend.Name, backend.CredentialEnv, backend.CollectionEnv))
	}

	switch cfg.Transport {
	case transportStdio:
		return runStdioServer(mcpSrv, logger)
	case transportStreamableHTTP:
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, cfg, provider, logger)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: %s, %s)", cfg.Transport, transportStdio, transportStreamableHTTP)
	}
}

// newMCPServer creates the MCP server with every tool and resource registered.
func newMCPServer(sc *server.ServerContext) (*mcpserver.MCPServer, error) {
	mcpSrv := mcpserver.NewMCPServer(serverName, version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false), // Subscribe and listChanged
	)

	registrations := []struct {
		name     string
		register func() error
	}{
		{name: "Todo tools", register: func() error { return todo_tools.RegisterTodoTools(mcpSrv, sc) }},
		{name: "Todo resources", register: func() error { return resources.RegisterTodoResources(mcpSrv, sc) }},
	}
	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}
	return mcpSrv, nil
}

// runStdioServer serves mcpSrv on stdin/stdout until the client disconnects
// or the process is signalled. stdout carries protocol messages only.
func runStdioServer(mcpSrv *mcpserver.MCPServer, logger *slog.Logger) error {
	errLogger := slog.NewLogLogger(logger.Handler(), slog.LevelError)

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv, mcpserver.WithErrorLogger(errLogger)); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, cfg serveConfig, provider *instrumentation.Provider, logger *slog.Logger) error {
	if cfg.MetricsEnabled && provider.Enabled() && provider.ExportsPrometheus() {
		metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    cfg.MetricsAddr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		if err := startAndWait(metricsServer.StartWithReadySignal); err != nil {
			return fmt.Errorf("metrics server failed to start: %w", err)
		}
		logger.Info("metrics server started", slog.String("addr", metricsServer.Addr()))
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("metrics server shutdown failed", logging.Err(err))
			}
		}()
	}

	httpServer, err := server.NewHTTPServer(mcpSrv, sc, server.HTTPConfig{
		Addr:             cfg.HTTPAddr,
		DisableStreaming: cfg.DisableStreaming,
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	serverDone := make(chan error, 1)
	ready := make(chan struct{})
	go func() {
		defer close(serverDone)
		if err := httpServer.StartWithReadySignal(ready); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverDone <- err
		}
	}()

	select {
	case <-ready:
	case err := <-serverDone:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(startupTimeout):
		return fmt.Errorf("HTTP server startup timed out")
	}

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
	}

	logger.Info("HTTP server stopped")
	return nil
}

// startAndWait runs start in a goroutine and waits until it signals
// readiness, fails, or startupTimeout elapses.
func startAndWait(start func(ready chan<- struct{}) error) error {
	ready := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		if err := start(ready); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ready:
		return nil
	case err := <-errCh:
		if err == nil {
			return fmt.Errorf("server stopped before it was ready")
		}
		return err
	case <-time.After(startupTimeout):
		return fmt.Errorf("startup timed out")
	}
}
