package tasks

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"github.com/teemow/mcp-todo-server/internal/store"
)

// BackendKey is the --backend value selecting Google Tasks.
const BackendKey = "google-tasks"

// DefaultList is the alias Google Tasks accepts for the user's default list.
const DefaultList = "@default"

// Client wraps the Google Tasks service as a store.Store. The collection ID
// is a task list ID; entry IDs have the form "<listID>/<taskID>" so that
// Archive can address the task without knowing the list.
type Client struct {
	svc *tasks.Service
}

// NewClient creates a Tasks client authorized with an OAuth2 access token.
// base, when non-nil, carries the requests under the token transport.
// Extra options are passed to the service constructor.
func NewClient(ctx context.Context, accessToken string, base *http.Client, opts ...option.ClientOption) (*Client, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("google access token is required")
	}

	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	all := append([]option.ClientOption{option.WithHTTPClient(oauth2.NewClient(ctx, ts))}, opts...)

	svc, err := tasks.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Tasks service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Create inserts a task titled fields.Name into taskListID.
func (c *Client) Create(ctx context.Context, taskListID string, fields store.Fields) (string, error) {
	created, err := c.svc.Tasks.Insert(taskListID, &tasks.Task{Title: fields.Name}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create task: %w", err)
	}
	return joinID(taskListID, created.Id), nil
}

// Archive deletes the task. Google Tasks keeps deleted tasks flagged as
// deleted rather than purging them.
func (c *Client) Archive(ctx context.Context, id string) error {
	listID, taskID, err := splitID(id)
	if err != nil {
		return err
	}
	if err := c.svc.Tasks.Delete(listID, taskID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func joinID(listID, taskID string) string {
	return listID + "/" + taskID
}

func splitID(id string) (listID, taskID string, err error) {
	listID, taskID, ok := strings.Cut(id, "/")
	if !ok || listID == "" || taskID == "" {
		return "", "", fmt.Errorf("invalid task id %q, expected <list>/<task>", id)
	}
	return listID, taskID, nil
}

// Opener returns a store.Opener building clients over base with opts applied.
func Opener(base *http.Client, opts ...option.ClientOption) store.Opener {
	return func(ctx context.Context, accessToken string) (store.Store, error) {
		return NewClient(ctx, accessToken, base, opts...)
	}
}

// Backend describes the Google Tasks backend. GOOGLE_TASKS_TOKEN and
// GOOGLE_TASKS_LIST_ID seed its settings.
func Backend(base *http.Client, opts ...option.ClientOption) store.Backend {
	return store.Backend{
		Key:           BackendKey,
		Name:          "Google Tasks",
		CredentialEnv: "GOOGLE_TASKS_TOKEN",
		CollectionEnv: "GOOGLE_TASKS_LIST_ID",
		Open:          Opener(base, opts...),
	}
}
