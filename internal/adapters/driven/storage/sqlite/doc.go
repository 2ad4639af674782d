// Package sqlite provides the SQLite-backed implementation of the driven ports.
//
// It uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. One database file serves every store:
//
//   - StateStore: sync state (cursor and open set) as JSON values in kv_state
//   - RunLocker: a single-row run_lock table so only one run proceeds at a time
//   - AdvisorySink: the latest record per pull request in advisories
//
// # Schema
//
// The schema is managed through numbered migrations embedded from the
// migrations/ directory. Applied versions are tracked in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.sectrack/data/state.db
package sqlite
