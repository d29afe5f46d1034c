// Package ws streams desktop state changes to connected clients.
//
// A single handler subscribes to file-system change events and fans
// them out to every open connection, letting file manager windows and
// the desktop surface refresh without polling.
//
// Message types (client to server):
//   - ping: keep-alive
//   - stats: request a stats snapshot
//
// Message types (server to client):
//   - system: connection established
//   - fs_change: a file-system mutation happened
//   - stats: file-system and window statistics
//   - pong, error
package ws
