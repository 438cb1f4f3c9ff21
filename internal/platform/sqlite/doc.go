// Package sqlite provides SQLite implementations of the store interfaces on
// top of the pure-Go modernc.org/sqlite driver. It serves single-node
// deployments, the compatctl CLI and tests that need a real database without
// a PostgreSQL server.
//
// Timestamps are stored as Unix nanoseconds so that ordering by column is
// exact.
package sqlite
