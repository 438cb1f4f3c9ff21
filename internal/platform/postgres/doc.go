// Package postgres provides PostgreSQL implementations of the store
// interfaces, using pgx through database/sql. Schema migrations are embedded
// and applied with goose.
package postgres
