package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// BackendMemory is the key of the in-process backend.
const BackendMemory = "memory"

// Page is an entry held by a Memory store.
type Page struct {
	ID           string `json:"id"`
	CollectionID string `json:"collection_id"`
	Name         string `json:"name"`
	Archived     bool   `json:"archived"`
}

// Memory is an in-process Store. It accepts any credential and keeps pages
// for the lifetime of the process, which makes it useful for local runs
// without a remote account.
type Memory struct {
	mu    sync.Mutex
	pages map[string]*Page
	order []string
}

// NewMemory creates an empty memory store.
func NewMemory() *Memory {
	return &Memory{
		pages: make(map[string]*Page),
	}
}

// Open implements Opener. The credential is ignored.
func (m *Memory) Open(_ context.Context, _ string) (Store, error) {
	return m, nil
}

// Create stores a new page under a random UUID.
func (m *Memory) Create(_ context.Context, collectionID string, fields Fields) (string, error) {
	if collectionID == "" {
		return "", fmt.Errorf("collection ID is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.pages[id] = &Page{
		ID:           id,
		CollectionID: collectionID,
		Name:         fields.Name,
	}
	m.order = append(m.order, id)
	return id, nil
}

// Archive flags the page as archived. Archiving an archived page is a no-op.
func (m *Memory) Archive(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	page, ok := m.pages[id]
	if !ok {
		return fmt.Errorf("page %s not found", id)
	}
	page.Archived = true
	return nil
}

// Pages returns a copy of every page in creation order.
func (m *Memory) Pages() []Page {
	m.mu.Lock()
	defer m.mu.Unlock()

	pages := make([]Page, 0, len(m.order))
	for _, id := range m.order {
		pages = append(pages, *m.pages[id])
	}
	return pages
}

// MemoryBackend returns a Backend serving pages from m.
func MemoryBackend(m *Memory) Backend {
	return Backend{
		Key:           BackendMemory,
		Name:          "Memory store",
		CredentialEnv: "TODO_MEMORY_TOKEN",
		CollectionEnv: "TODO_MEMORY_COLLECTION",
		Open:          m.Open,
	}
}
