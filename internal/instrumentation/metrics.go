package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrOperation = "operation"
	attrStore     = "store"
	attrResult    = "result"
	attrTool      = "tool"
)

// Metrics records the server's metrics. The zero value is a no-op recorder.
type Metrics struct {
	// HTTP transport
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	// Remote store
	storeOperationsTotal   metric.Int64Counter
	storeOperationDuration metric.Float64Histogram

	// Sync orchestrator
	syncRunsTotal    metric.Int64Counter
	tasksSyncedTotal metric.Int64Counter

	// MCP tools
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram
}

// NewMetrics creates every instrument on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.storeOperationsTotal, err = meter.Int64Counter(
		"remote_store_operations_total",
		metric.WithDescription("Total number of remote store operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote_store_operations_total counter: %w", err)
	}

	m.storeOperationDuration, err = meter.Float64Histogram(
		"remote_store_operation_duration_seconds",
		metric.WithDescription("Remote store operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote_store_operation_duration_seconds histogram: %w", err)
	}

	m.syncRunsTotal, err = meter.Int64Counter(
		"todo_sync_runs_total",
		metric.WithDescription("Total number of full resync runs by result"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo_sync_runs_total counter: %w", err)
	}

	m.tasksSyncedTotal, err = meter.Int64Counter(
		"todo_tasks_synced_total",
		metric.WithDescription("Total number of tasks created in the remote store by resync"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo_tasks_synced_total counter: %w", err)
	}

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m == nil || m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	)
	m.httpRequestsTotal.Add(ctx, 1, attrs)
	m.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordStoreOperation records one remote store call.
//
// Parameters:
//   - store: backend key (notion, google-tasks, memory)
//   - operation: open, create or archive
//   - status: "success" or "error"
func (m *Metrics) RecordStoreOperation(ctx context.Context, store, operation, status string, duration time.Duration) {
	if m == nil || m.storeOperationsTotal == nil || m.storeOperationDuration == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrStore, store),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.storeOperationsTotal.Add(ctx, 1, attrs)
	m.storeOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordSync records the outcome of one full resync and the number of tasks
// created during it. Tasks created before a failure are counted too: they
// exist in the remote store even though the run aborted.
func (m *Metrics) RecordSync(ctx context.Context, result string, created int) {
	if m == nil || m.syncRunsTotal == nil || m.tasksSyncedTotal == nil {
		return
	}

	m.syncRunsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
	if created > 0 {
		m.tasksSyncedTotal.Add(ctx, int64(created))
	}
}

// RecordToolInvocation records an MCP tool invocation with tool name, status, and duration.
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m == nil || m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	)
	m.toolInvocationsTotal.Add(ctx, 1, attrs)
	m.toolDuration.Record(ctx, duration.Seconds(), attrs)
}
