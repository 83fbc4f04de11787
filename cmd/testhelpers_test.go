package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teemow/mcp-todo-server/internal/server"
	"github.com/teemow/mcp-todo-server/internal/store"
	"github.com/teemow/mcp-todo-server/internal/todo"
)

func newTestServerContext(t *testing.T, backend store.Backend) *server.ServerContext {
	t.Helper()

	svc, err := todo.NewService(backend, todo.Settings{})
	require.NoError(t, err)
	sc, err := server.NewServerContext(context.Background(), svc)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}
