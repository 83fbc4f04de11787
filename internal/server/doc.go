// Package server provides the MCP server context and the HTTP surfaces of
// the todo server.
//
// # Key Components
//
// ServerContext carries the todo.Service together with the optional metrics
// recorder and audit logger consumed by tool handlers.
//
// HTTPServer mounts the streamable HTTP transport at /mcp next to the health
// endpoints:
//   - /healthz: liveness
//   - /readyz: readiness, failing once shutdown has started
//   - /healthz/detailed: uptime, backend, task and link counts, configured flag
//
// MetricsServer exposes Prometheus metrics on a dedicated port.
package server
