// Package types provides shared data structures for the desktop backend.
//
// This package defines core types used across all backend components,
// ensuring type safety and consistent data structures.
//
// Core Types:
//   - Entity: Virtual file-system node (file, directory, link)
//   - State: Persisted file-system aggregate (root id)
//   - Window: Open window state owned by the window manager
//   - WindowSpec: Caller-supplied subset of Window used to open one
//   - AppInfo: Registered application metadata
//   - Result: Standard operation result for the API boundary
//
// Example Usage:
//
//	entity := types.NewFile(string(id.NewFileID()), "notes.txt", parentID, "hello", "text/plain")
//	window := types.Window{Title: "Notepad", Component: "notepad"}
package types
