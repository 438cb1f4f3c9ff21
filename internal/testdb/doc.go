// Package testdb provides database fixtures for tests: a migrated PostgreSQL
// connection gated on DATABASE_URL, a file-backed SQLite store, and
// per-test transactions that always roll back.
package testdb
