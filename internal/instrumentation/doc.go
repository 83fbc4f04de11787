// Package instrumentation provides OpenTelemetry metrics, tracing and
// audit logging for the todo MCP server.
//
// # Metrics
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// Remote Store Metrics:
//   - remote_store_operations_total: Counter of store calls by store, operation, status
//   - remote_store_operation_duration_seconds: Histogram of store call durations
//
// Sync Metrics:
//   - todo_sync_runs_total: Counter of full resync runs by result (synced, failed, not_configured)
//   - todo_tasks_synced_total: Counter of tasks created by resync
//
// MCP Tool Metrics:
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//
// # Tracing
//
// Spans are created for MCP tool invocations (tool.<name>) and remote store
// calls (store.<backend>.<operation>).
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: prometheus, otlp or stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: mcp-todo-server)
//   - AUDIT_LOGGING_ENABLED, AUDIT_LOGGING_INCLUDE_ARGUMENTS
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordStoreOperation(ctx, "notion", "create", "success", time.Since(start))
//	recorder.RecordToolInvocation(ctx, "add_task", "success", time.Since(start))
package instrumentation
