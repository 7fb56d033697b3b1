// Package storage provides the local key/value storage Folio persists UI
// state into.
//
// Every backend implements Storage:
//
//   - File: one TOML document of string keys, default
//     ~/.local/share/folio/storage.toml. Missing files read as empty.
//   - SQLite: a local_storage table in ~/.local/share/folio/storage.db.
//   - Memory: process lifetime only.
//   - Disabled: every call fails with ErrUnavailable, the equivalent of a
//     browser with storage turned off.
//
// Callers that must keep working without storage (the UI store) treat every
// error as "storage unavailable" and continue in memory.
package storage
