// Package store holds the typed persistence layer. Each collection gets
// its own store over database/sql; every store supports insert, point
// get (nil when absent), get-all, upsert, idempotent delete, and
// equality lookups on its declared indexes.
package store

import "database/sql"

// DBTX is the subset of *sql.DB and *sql.Tx the stores use. Composite
// operations bind a store to an open transaction via WithTx so all
// writes for one logical action share a single commit.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}
