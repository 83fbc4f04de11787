// Package todo implements the task list and its one-way mirror to a remote
// page store.
//
// Service owns three pieces of process-lifetime state: the ordered task
// Registry, the Links table mapping task text to remote entry IDs, and the
// Settings (credential and collection ID). Tool handlers call Service
// methods and render the returned Result.
//
// A task's remote linkage moves Unlinked -> Linked when SyncAll creates its
// entry, and back to Unlinked when Remove archives the entry or the next
// SyncAll clears the table. Remote failures never escape as errors; they are
// folded into Result.Message.
//
// Task text is the task's identity. Two equal tasks share a single link, so
// after a resync the table can hold fewer entries than the registry.
package todo
