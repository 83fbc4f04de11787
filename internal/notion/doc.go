// Package notion adapts the Notion pages API to the store.Store capability.
//
// Each task is written as a page whose "Name" title property holds the task
// text, inside the database configured as the collection ID. Archive uses
// Notion's soft delete (archived=true).
package notion
