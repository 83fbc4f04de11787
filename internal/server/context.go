package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/teemow/mcp-todo-server/internal/instrumentation"
	"github.com/teemow/mcp-todo-server/internal/todo"
)

// ServerContext holds the state shared by tool handlers, resources and the
// HTTP surfaces.
type ServerContext struct {
	ctx         context.Context
	cancel      context.CancelFunc
	service     *todo.Service
	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger
	mu          sync.RWMutex
	shutdown    bool
}

// NewServerContext creates a server context around service.
func NewServerContext(ctx context.Context, service *todo.Service) (*ServerContext, error) {
	if service == nil {
		return nil, fmt.Errorf("todo service is required")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:     shutdownCtx,
		cancel:  cancel,
		service: service,
	}, nil
}

// Context returns the server context. It is cancelled by Shutdown.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Service returns the task service.
func (sc *ServerContext) Service() *todo.Service {
	return sc.service
}

// Metrics returns the metrics recorder, or nil when instrumentation is off.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder used by tool handlers.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// AuditLogger returns the audit logger, or nil when auditing is off.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetAuditLogger sets the audit logger used by tool handlers.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context. Calling it twice is a no-op.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
