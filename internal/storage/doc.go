// Package storage provides durable persistence for file-system entities.
//
// The Store interface is a pure storage adapter: keyed entity records plus
// a single-slot aggregate state. Two implementations are provided:
//   - SQLite: gorm over the pure-Go glebarez/sqlite driver, for real runs
//   - Memory: map-backed, for tests and ephemeral sessions
//
// Stores hold no file-system semantics; validation and hierarchy rules
// live in the vfs service above them.
package storage
