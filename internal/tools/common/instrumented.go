package common

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/mcp-todo-server/internal/instrumentation"
	"github.com/teemow/mcp-todo-server/internal/logging"
	"github.com/teemow/mcp-todo-server/internal/server"
)

// credentialArguments are never written to the audit log in clear text.
var credentialArguments = map[string]bool{
	"token": true,
}

// InstrumentedToolHandler wraps a tool handler with a tracing span, metrics
// and audit logging.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return instrument(toolName, "", sc, handler)
}

// InstrumentedToolHandlerWithStore is like InstrumentedToolHandler but also
// records the selected remote store and the operation the tool performs
// against it in the audit log.
func InstrumentedToolHandlerWithStore(toolName, operation string, sc *server.ServerContext, handler mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return instrument(toolName, operation, sc, handler)
}

func instrument(toolName, operation string, sc *server.ServerContext, handler mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, span := instrumentation.StartToolSpan(ctx, toolName)
		defer span.End()

		metrics := sc.Metrics()
		auditLogger := sc.AuditLogger()

		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx).
			WithArguments(auditArguments(request.GetArguments()))
		if operation != "" {
			invocation.WithStore(sc.Service().Backend().Key, operation)
		}

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		switch {
		case err != nil:
			status = instrumentation.StatusError
			invocation.CompleteWithError(err)
			instrumentation.SetSpanError(span, err)
		case result != nil && result.IsError:
			status = instrumentation.StatusError
			invocation.Complete(false, nil)
			instrumentation.SetSpanError(span, fmt.Errorf("tool %s returned an error result", toolName))
		default:
			invocation.CompleteSuccess()
			instrumentation.SetSpanSuccess(span)
		}

		metrics.RecordToolInvocation(ctx, toolName, status, duration)
		auditLogger.LogToolInvocation(invocation)

		return result, err
	}
}

// auditArguments flattens string arguments for the audit log, replacing
// credentials with a length indicator.
func auditArguments(args map[string]any) map[string]string {
	if len(args) == 0 {
		return nil
	}

	out := make(map[string]string, len(args))
	for k, v := range args {
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprintf("%v", v)
		}
		if credentialArguments[k] {
			s = logging.SanitizeToken(s)
		}
		out[k] = s
	}
	return out
}
