package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/mcp-todo-server/internal/server"
)

const (
	// TasksURI serves the local task list in insertion order.
	TasksURI = "todo://tasks"
	// LinksURI serves the task to remote item table.
	LinksURI = "todo://links"
)

// RegisterTodoResources registers the read-only task resources.
func RegisterTodoResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	tasksResource := mcp.NewResource(
		TasksURI,
		"Task List",
		mcp.WithResourceDescription("The local task list, in the order the tasks were added"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(tasksResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleTasks(ctx, request, sc)
	})

	backendName := sc.Service().Backend().Name
	linksResource := mcp.NewResource(
		LinksURI,
		"Remote Links",
		mcp.WithResourceDescription(fmt.Sprintf("Mapping from task text to the %s item created by the last sync", backendName)),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(linksResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleLinks(ctx, request, sc)
	})

	return nil
}

func handleTasks(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	todos := sc.Service().List()

	data := map[string]interface{}{
		"todos": todos,
		"count": len(todos),
	}
	return jsonContents(request.Params.URI, data)
}

func handleLinks(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	stats, links := sc.Service().LinkState()

	// The credential never leaves the service; only whether one is set.
	data := map[string]interface{}{
		"backend":    stats.Backend,
		"configured": stats.Configured,
		"links":      links,
	}
	return jsonContents(request.Params.URI, data)
}

func jsonContents(uri string, data interface{}) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
