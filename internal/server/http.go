package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

const (
	// MCPEndpointPath is where the streamable HTTP transport is mounted.
	MCPEndpointPath = "/mcp"

	// DefaultHTTPAddr is the default listen address of the MCP HTTP server.
	DefaultHTTPAddr = ":8080"
)

// HTTPConfig configures the MCP HTTP server.
type HTTPConfig struct {
	Addr string

	// DisableStreaming answers every request with a single JSON response
	// instead of an SSE stream.
	DisableStreaming bool
}

// HTTPServer serves the MCP streamable HTTP transport next to the health
// endpoints. Every request is counted in http_requests_total when the
// server context carries metrics.
type HTTPServer struct {
	mcpServer     *mcpserver.MCPServer
	serverContext *ServerContext
	health        *HealthChecker
	config        HTTPConfig
	httpServer    *http.Server
	listenAddr    string
}

// NewHTTPServer creates an HTTP server for mcpServer.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, sc *ServerContext, config HTTPConfig) (*HTTPServer, error) {
	if mcpServer == nil {
		return nil, fmt.Errorf("mcp server is required")
	}
	if sc == nil {
		return nil, fmt.Errorf("server context is required")
	}
	if config.Addr == "" {
		config.Addr = DefaultHTTPAddr
	}

	return &HTTPServer{
		mcpServer:     mcpServer,
		serverContext: sc,
		health:        NewHealthChecker(sc),
		config:        config,
	}, nil
}

// Health returns the health checker, so callers can flip readiness during shutdown.
func (s *HTTPServer) Health() *HealthChecker {
	return s.health
}

// Handler builds the request mux.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	s.health.RegisterHealthEndpoints(mux)

	opts := []mcpserver.StreamableHTTPOption{
		mcpserver.WithEndpointPath(MCPEndpointPath),
	}
	if s.config.DisableStreaming {
		opts = append(opts, mcpserver.WithDisableStreaming(true))
	}
	mux.Handle(MCPEndpointPath, mcpserver.NewStreamableHTTPServer(s.mcpServer, opts...))

	return s.metricsMiddleware(mux)
}

// Start listens on the configured address and serves until Shutdown.
func (s *HTTPServer) Start() error {
	return s.StartWithReadySignal(nil)
}

// StartWithReadySignal is Start, closing ready (if non-nil) once the port is bound.
func (s *HTTPServer) StartWithReadySignal(ready chan<- struct{}) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	s.listenAddr = ln.Addr().String()

	slog.Info("starting MCP HTTP server",
		"addr", s.listenAddr,
		"endpoint", MCPEndpointPath,
		"streaming", !s.config.DisableStreaming)
	if ready != nil {
		close(ready)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown marks the server not ready and drains in-flight requests.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.health.SetReady(false)
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// Addr returns the bound address once started, else the configured one.
func (s *HTTPServer) Addr() string {
	if s.listenAddr != "" {
		return s.listenAddr
	}
	return s.config.Addr
}

func (s *HTTPServer) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics := s.serverContext.Metrics()
		if metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.RecordHTTPRequest(r.Context(), r.Method, routeLabel(r.URL.Path), rec.status, time.Since(start))
	})
}

// routeLabel maps a request path to a bounded set of metric labels.
func routeLabel(path string) string {
	switch path {
	case MCPEndpointPath, "/healthz", "/readyz", "/healthz/detailed":
		return path
	default:
		return "other"
	}
}

// statusRecorder captures the response status. It forwards Flush so SSE
// streaming keeps working through the middleware.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

