package todo_tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/mcp-todo-server/internal/server"
	"github.com/teemow/mcp-todo-server/internal/store"
	"github.com/teemow/mcp-todo-server/internal/todo"
)

// stubStore hands out sequential IDs and can be told to fail archive.
type stubStore struct {
	next       int
	created    []string
	archived   []string
	archiveErr error
}

func (s *stubStore) Create(_ context.Context, _ string, fields store.Fields) (string, error) {
	s.next++
	s.created = append(s.created, fields.Name)
	return fmt.Sprintf("id-%d", s.next), nil
}

func (s *stubStore) Archive(_ context.Context, id string) error {
	if s.archiveErr != nil {
		return s.archiveErr
	}
	s.archived = append(s.archived, id)
	return nil
}

func notionLikeBackend(st *stubStore) store.Backend {
	return store.Backend{
		Key:           "notion",
		Name:          "Notion",
		CredentialEnv: "NOTION_TOKEN",
		CollectionEnv: "NOTION_DATABASE_ID",
		Open: func(context.Context, string) (store.Store, error) {
			return st, nil
		},
	}
}

func newServerContext(t *testing.T, st *stubStore) *server.ServerContext {
	t.Helper()

	svc, err := todo.NewService(notionLikeBackend(st), todo.Settings{})
	require.NoError(t, err)
	sc, err := server.NewServerContext(context.Background(), svc)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func call(t *testing.T, handler mcpserver.ToolHandlerFunc, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func message(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.False(t, result.IsError, resultText(t, result))
	var out struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	return out.Message
}

func todos(t *testing.T, sc *server.ServerContext) []string {
	t.Helper()

	result := call(t, handleListTasks(sc), nil)
	require.False(t, result.IsError)

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	require.Contains(t, out, "todos")

	var list []string
	require.NoError(t, json.Unmarshal(out["todos"], &list))
	return list
}

func TestRegisterTodoTools(t *testing.T) {
	sc := newServerContext(t, &stubStore{})
	s := mcpserver.NewMCPServer("test", "0.0.0", mcpserver.WithToolCapabilities(false))

	require.NoError(t, RegisterTodoTools(s, sc))

	registered := s.ListTools()
	assert.Len(t, registered, 5)
	for _, name := range []string{ToolAddTask, ToolListTasks, ToolRemoveTask, ToolSyncToNotion, ToolSetupNotion} {
		assert.Contains(t, registered, name)
	}
	assert.Equal(t, []string{"token", "database_id"}, registered[ToolSetupNotion].Tool.InputSchema.Required)
}

func TestListTasks_EmptyIsArray(t *testing.T) {
	sc := newServerContext(t, &stubStore{})

	result := call(t, handleListTasks(sc), nil)
	assert.JSONEq(t, `{"todos":[]}`, resultText(t, result))
}

func TestAddTask(t *testing.T) {
	sc := newServerContext(t, &stubStore{})

	assert.Equal(t, "Task added: buy milk", message(t, call(t, handleAddTask(sc), map[string]any{"task": "buy milk"})))
	assert.Equal(t, "Task added: buy milk", message(t, call(t, handleAddTask(sc), map[string]any{"task": "buy milk"})))
	assert.Equal(t, []string{"buy milk", "buy milk"}, todos(t, sc))
}

func TestRequiredArguments(t *testing.T) {
	tests := []struct {
		name    string
		handler func(*server.ServerContext) mcpserver.ToolHandlerFunc
		args    map[string]any
		wantErr string
	}{
		{name: "add_task missing task", handler: handleAddTask, args: nil, wantErr: "task is required"},
		{name: "add_task empty task", handler: handleAddTask, args: map[string]any{"task": ""}, wantErr: "task is required"},
		{name: "add_task non-string task", handler: handleAddTask, args: map[string]any{"task": 42}, wantErr: "task is required"},
		{name: "remove_task missing task", handler: handleRemoveTask, args: map[string]any{}, wantErr: "task is required"},
		{name: "setup_notion missing token", handler: handleSetupNotion, args: map[string]any{"database_id": "db1"}, wantErr: "token is required"},
		{name: "setup_notion missing both", handler: handleSetupNotion, args: map[string]any{}, wantErr: "token is required; database_id is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newServerContext(t, &stubStore{})

			result := call(t, tt.handler(sc), tt.args)
			assert.True(t, result.IsError)
			assert.Equal(t, tt.wantErr, resultText(t, result))
			assert.Empty(t, todos(t, sc))
			assert.False(t, sc.Service().Stats().Configured)
		})
	}
}

func TestRemoveTask_NotFound(t *testing.T) {
	sc := newServerContext(t, &stubStore{})

	assert.Equal(t, "Task not found", message(t, call(t, handleRemoveTask(sc), map[string]any{"task": "nothing"})))
}

func TestSyncToNotion_NotConfigured(t *testing.T) {
	st := &stubStore{}
	sc := newServerContext(t, st)
	call(t, handleAddTask(sc), map[string]any{"task": "buy milk"})

	msg := message(t, call(t, handleSyncToNotion(sc), nil))
	assert.Equal(t, "Notion not configured. Set NOTION_TOKEN and NOTION_DATABASE_ID environment variables.", msg)
	assert.Empty(t, st.created)
}

func TestToolScenario(t *testing.T) {
	st := &stubStore{}
	sc := newServerContext(t, st)

	call(t, handleAddTask(sc), map[string]any{"task": "buy milk"})
	call(t, handleAddTask(sc), map[string]any{"task": "walk dog"})

	msg := message(t, call(t, handleSetupNotion(sc), map[string]any{"token": "tok", "database_id": "db1"}))
	assert.Equal(t, "Notion integration configured successfully", msg)

	msg = message(t, call(t, handleSyncToNotion(sc), nil))
	assert.Equal(t, "Successfully synced 2 tasks to Notion", msg)
	assert.Equal(t, map[string]string{"buy milk": "id-1", "walk dog": "id-2"}, sc.Service().Links())

	msg = message(t, call(t, handleRemoveTask(sc), map[string]any{"task": "buy milk"}))
	assert.Equal(t, "Task removed: buy milk (also deleted from Notion)", msg)
	assert.Equal(t, []string{"id-1"}, st.archived)
	assert.Equal(t, []string{"walk dog"}, todos(t, sc))
	assert.Equal(t, map[string]string{"walk dog": "id-2"}, sc.Service().Links())
}

func TestRemoveTask_ArchiveFails(t *testing.T) {
	st := &stubStore{}
	sc := newServerContext(t, st)

	call(t, handleAddTask(sc), map[string]any{"task": "buy milk"})
	call(t, handleSetupNotion(sc), map[string]any{"token": "tok", "database_id": "db1"})
	call(t, handleSyncToNotion(sc), nil)

	st.archiveErr = errors.New("object_not_found")
	result := call(t, handleRemoveTask(sc), map[string]any{"task": "buy milk"})

	// Remote failures are reported in the message, not as tool errors.
	assert.False(t, result.IsError)
	assert.Equal(t, "Task removed locally: buy milk (Notion deletion failed: object_not_found)", message(t, result))
	assert.Empty(t, todos(t, sc))
	assert.Equal(t, map[string]string{"buy milk": "id-1"}, sc.Service().Links())
}
