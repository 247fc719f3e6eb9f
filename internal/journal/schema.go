package journal

import "context"

const schemaDefinition = `
CREATE TABLE IF NOT EXISTS operation (
	id INTEGER PRIMARY KEY,
	run_id TEXT NOT NULL,
	op TEXT NOT NULL,
	path TEXT NOT NULL,
	dest TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL,
	detail TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_operation_run_id ON operation (run_id);
`

// InitializeDatabase creates the journal tables if they do not exist.
func (q *Queries) InitializeDatabase(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, schemaDefinition)
	return err
}
