// Package resources provides read-only MCP resources over the task service.
//
// todo://tasks returns the local list and todo://links returns the link
// table built by the last sync together with the selected backend and
// whether it is configured.
package resources
