package store

import (
	"context"
	"fmt"
)

// Fields holds the properties written for a new entry. Tasks carry a single
// display string, stored in the collection's Name (title) property.
type Fields struct {
	Name string
}

// Store is the remote store capability. Errors are opaque and carry a
// human-readable reason; no error codes are modeled.
type Store interface {
	// Create adds one entry to collectionID and returns its ID.
	Create(ctx context.Context, collectionID string, fields Fields) (string, error)

	// Archive soft-deletes the entry with the given ID.
	Archive(ctx context.Context, id string) error
}

// Opener returns a Store authenticated with credential.
type Opener func(ctx context.Context, credential string) (Store, error)

// Backend describes a selectable remote store.
type Backend struct {
	// Key is the value accepted by the --backend flag.
	Key string

	// Name is the display name used in tool messages (e.g. "Notion").
	Name string

	// CredentialEnv and CollectionEnv name the environment variables that
	// seed the credential and the collection ID at startup.
	CredentialEnv string
	CollectionEnv string

	// Open builds a client for the current credential.
	Open Opener
}

// Validate checks that the backend can be used.
func (b Backend) Validate() error {
	if b.Key == "" {
		return fmt.Errorf("backend key is required")
	}
	if b.Name == "" {
		return fmt.Errorf("backend %q has no display name", b.Key)
	}
	if b.Open == nil {
		return fmt.Errorf("backend %q has no opener", b.Key)
	}
	return nil
}
