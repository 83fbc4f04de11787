package server

import (
	"context"
	"testing"

	"github.com/teemow/mcp-todo-server/internal/store"
	"github.com/teemow/mcp-todo-server/internal/todo"
)

func newTestServerContext(t *testing.T, defaults todo.Settings) *ServerContext {
	t.Helper()

	svc, err := todo.NewService(store.MemoryBackend(store.NewMemory()), defaults)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	sc, err := NewServerContext(context.Background(), svc)
	if err != nil {
		t.Fatalf("NewServerContext: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}
