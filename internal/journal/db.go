package journal

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB and *sql.Tx the queries need.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// NewQueries binds the journal queries to a database handle.
func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries runs the journal SQL statements.
type Queries struct {
	db DBTX
}
