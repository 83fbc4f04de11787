package notion

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jomei/notionapi"

	"github.com/teemow/mcp-todo-server/internal/store"
)

// BackendKey is the --backend value selecting Notion.
const BackendKey = "notion"

// TitleProperty is the database property that receives the task text.
const TitleProperty = "Name"

// Client is a store.Store backed by the Notion pages API. Tasks become
// pages in a database; archiving a task archives its page.
type Client struct {
	api *notionapi.Client
}

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient sets the HTTP client used for API calls. A nil client
// keeps http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// NewClient creates a client authenticated with an integration token.
// A 429 response is returned as an error rather than retried.
func NewClient(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("notion token is required")
	}

	o := options{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(&o)
	}

	api := notionapi.NewClient(notionapi.Token(token),
		notionapi.WithHTTPClient(o.httpClient),
		notionapi.WithRetry(1),
	)
	return &Client{api: api}, nil
}

// Create adds a page with a single title property to the database
// databaseID and returns the page ID.
func (c *Client) Create(ctx context.Context, databaseID string, fields store.Fields) (string, error) {
	page, err := c.api.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(databaseID),
		},
		Properties: notionapi.Properties{
			TitleProperty: notionapi.TitleProperty{
				Title: []notionapi.RichText{
					{Text: &notionapi.Text{Content: fields.Name}},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}
	return string(page.ID), nil
}

// Archive sets archived=true on the page.
func (c *Client) Archive(ctx context.Context, pageID string) error {
	_, err := c.api.Page.Update(ctx, notionapi.PageID(pageID), &notionapi.PageUpdateRequest{
		Archived:   true,
		Properties: notionapi.Properties{},
	})
	return err
}

// Opener returns a store.Opener creating Notion clients that share httpClient.
func Opener(httpClient *http.Client) store.Opener {
	return func(_ context.Context, token string) (store.Store, error) {
		return NewClient(token, WithHTTPClient(httpClient))
	}
}

// Backend describes the Notion backend. NOTION_TOKEN and NOTION_DATABASE_ID
// seed its settings.
func Backend(httpClient *http.Client) store.Backend {
	return store.Backend{
		Key:           BackendKey,
		Name:          "Notion",
		CredentialEnv: "NOTION_TOKEN",
		CollectionEnv: "NOTION_DATABASE_ID",
		Open:          Opener(httpClient),
	}
}
