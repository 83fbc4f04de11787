package cmd

import (
	"fmt"
	"net/http"

	"github.com/teemow/mcp-todo-server/internal/instrumentation"
	"github.com/teemow/mcp-todo-server/internal/notion"
	"github.com/teemow/mcp-todo-server/internal/store"
	"github.com/teemow/mcp-todo-server/internal/tasks"
)

const tasksBackendKey = tasks.BackendKey

// newBackend returns the backend selected by cfg. Remote calls are traced
// and counted in metrics; Notion calls are also throttled to
// cfg.NotionRateLimit per second.
func newBackend(cfg serveConfig, httpClient *http.Client, metrics *instrumentation.Metrics) (store.Backend, error) {
	var backend store.Backend
	switch cfg.Backend {
	case notion.BackendKey:
		backend = notion.Backend(httpClient)
	case tasks.BackendKey:
		backend = tasks.Backend(httpClient)
	case store.BackendMemory:
		backend = store.MemoryBackend(store.NewMemory())
	default:
		return store.Backend{}, fmt.Errorf("unsupported backend: %s", cfg.Backend)
	}

	// The limiter wraps the instrumented opener so that time spent waiting
	// is not reported as remote latency.
	open := store.Instrument(backend.Key, backend.Open, metrics)
	if backend.Key == notion.BackendKey {
		open = store.RateLimit(open, store.NewLimiter(cfg.NotionRateLimit))
	}
	backend.Open = open

	if err := backend.Validate(); err != nil {
		return store.Backend{}, err
	}
	return backend, nil
}
