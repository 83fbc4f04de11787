// Package common provides helpers shared by the MCP tool packages.
//
// InstrumentedToolHandler and InstrumentedToolHandlerWithStore wrap a tool
// handler so that every call opens a "tool.<name>" span, is counted in
// mcp_tool_invocations_total and mcp_tool_duration_seconds, and is written
// to the audit log. Credential arguments are redacted before they reach the
// audit log.
package common
