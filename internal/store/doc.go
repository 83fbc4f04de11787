// Package store defines the remote page store capability used to mirror
// local tasks.
//
// A remote store offers exactly two operations:
//   - Create: add one entry to a collection and return its opaque ID
//   - Archive: soft-delete one entry by ID
//
// Concrete stores live in their own packages (internal/notion,
// internal/tasks) or here (Memory). Because the credential can change at
// run time, callers obtain a Store through an Opener each time they need
// one.
//
// # Decorators
//
// Instrument and RateLimit wrap an Opener so every Store it returns records
// metrics and spans, or waits on a shared limiter before each remote call.
// Neither decorator retries: a failed call is reported once.
package store
