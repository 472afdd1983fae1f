// Package sqlite stores comparison results in a SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. A Store is both an export sink and a reader for exported runs:
//
//   - Exporter: writes a comparison (runs, summary_rows, morphemes, iterations)
//   - RunStore: lists and reads back stored runs
//
// The engine never reads this database. It exists so results of many runs
// can be queried with ordinary SQL tools.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
