// Command server runs the desktop backend: a virtual file system,
// window manager and application launcher behind an HTTP and WebSocket
// API. Configuration comes from environment variables, see
// internal/infrastructure/config.
package main
