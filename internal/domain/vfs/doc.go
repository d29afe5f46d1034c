// Package vfs implements the hierarchical virtual file-system service.
//
// The service owns all file-system semantics above raw storage: entity
// creation, path resolution, link indirection, rename/move/delete, and
// metadata updates. It depends only on a storage.Store and (optionally)
// an application catalog used to seed link shortcuts on first run.
//
// Invariants enforced here:
//   - Exactly one root directory, ParentID nil, never deleted or renamed
//   - Sibling uniqueness: no two children of a directory share a name
//   - No cycles: a directory can never become its own descendant
//   - Deletes of directories cascade depth-first through all descendants
//   - Metadata merges are shallow and additive
//
// Every operation validates before mutating; a rejected operation leaves
// the file system unchanged. Validation failures and storage faults are
// both reported as typed *Error values, never panics.
package vfs
