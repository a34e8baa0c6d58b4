// Package postgres provides PostgreSQL-backed implementations of the
// store interfaces, using the pgx driver through database/sql. Each store
// operates over a store.DBTX so it works equally against a connection
// pool or an open transaction.
package postgres
