package todo_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/mcp-todo-server/internal/instrumentation"
	"github.com/teemow/mcp-todo-server/internal/server"
	"github.com/teemow/mcp-todo-server/internal/tools/common"
)

// Tool names. They are part of the public surface and do not change with
// the selected backend.
const (
	ToolAddTask      = "add_task"
	ToolListTasks    = "list_tasks"
	ToolRemoveTask   = "remove_task"
	ToolSyncToNotion = "sync_to_notion"
	ToolSetupNotion  = "setup_notion"
)

type listResponse struct {
	Todos []string `json:"todos"`
}

// RegisterTodoTools registers the task tools with the MCP server
func RegisterTodoTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	backend := sc.Service().Backend()

	addTaskTool := mcp.NewTool(ToolAddTask,
		mcp.WithDescription("Add a task to the local task list"),
		mcp.WithString("task",
			mcp.Required(),
			mcp.Description("The task text"),
		),
	)
	s.AddTool(addTaskTool, common.InstrumentedToolHandler(ToolAddTask, sc, handleAddTask(sc)))

	listTasksTool := mcp.NewTool(ToolListTasks,
		mcp.WithDescription("List all tasks in the order they were added"),
	)
	s.AddTool(listTasksTool, common.InstrumentedToolHandler(ToolListTasks, sc, handleListTasks(sc)))

	removeTaskTool := mcp.NewTool(ToolRemoveTask,
		mcp.WithDescription(fmt.Sprintf("Remove the first task matching the given text. A task created in %s by the last sync is archived there too.", backend.Name)),
		mcp.WithString("task",
			mcp.Required(),
			mcp.Description("The exact task text to remove"),
		),
	)
	s.AddTool(removeTaskTool, common.InstrumentedToolHandlerWithStore(ToolRemoveTask, instrumentation.OperationArchive, sc, handleRemoveTask(sc)))

	syncTool := mcp.NewTool(ToolSyncToNotion,
		mcp.WithDescription(fmt.Sprintf("Create one %s item per local task. Every call creates new items; earlier ones are not updated.", backend.Name)),
	)
	s.AddTool(syncTool, common.InstrumentedToolHandlerWithStore(ToolSyncToNotion, instrumentation.OperationSync, sc, handleSyncToNotion(sc)))

	setupTool := mcp.NewTool(ToolSetupNotion,
		mcp.WithDescription(fmt.Sprintf("Configure the %s credential and target collection used by sync and remove", backend.Name)),
		mcp.WithString("token",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("%s API token", backend.Name)),
		),
		mcp.WithString("database_id",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("%s collection that receives synced tasks", backend.Name)),
		),
	)
	s.AddTool(setupTool, common.InstrumentedToolHandlerWithStore(ToolSetupNotion, instrumentation.OperationSetup, sc, handleSetupNotion(sc)))

	return nil
}

func handleAddTask(sc *server.ServerContext) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in, err := parseTaskInput(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(sc.Service().Add(in.Task))
	}
}

func handleListTasks(sc *server.ServerContext) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(listResponse{Todos: sc.Service().List()})
	}
}

func handleRemoveTask(sc *server.ServerContext) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in, err := parseTaskInput(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(sc.Service().Remove(ctx, in.Task))
	}
}

func handleSyncToNotion(sc *server.ServerContext) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(sc.Service().SyncAll(ctx))
	}
}

func handleSetupNotion(sc *server.ServerContext) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in, err := parseSetupInput(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(sc.Service().Setup(in.Token, in.DatabaseID))
	}
}

// jsonResult returns v as JSON text content. Remote failures are ordinary
// results whose message describes the failure.
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
