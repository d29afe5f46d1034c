// Package opener decides which application opens an entity and with what
// parameters, composing the file-system service, the app registry and
// the window manager. It holds no state of its own.
package opener
