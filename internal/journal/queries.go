package journal

import (
	"context"
	"database/sql"
)

const createEntry = `-- name: CreateEntry :one
INSERT INTO operation (
    run_id, op, path, dest, outcome, detail, created_at
) VALUES (
    ?, ?, ?, ?, ?, ?, ?
)
RETURNING id, run_id, op, path, dest, outcome, detail, created_at
`

func (q *Queries) CreateEntry(ctx context.Context, arg *Entry) (*Entry, error) {
	row := q.db.QueryRowContext(ctx, createEntry,
		arg.RunID,
		arg.Op,
		arg.Path,
		arg.Dest,
		arg.Outcome,
		arg.Detail,
		arg.CreatedAt,
	)
	var i Entry
	err := row.Scan(
		&i.ID,
		&i.RunID,
		&i.Op,
		&i.Path,
		&i.Dest,
		&i.Outcome,
		&i.Detail,
		&i.CreatedAt,
	)
	return &i, err
}

const entriesByRun = `-- name: EntriesByRun :many
SELECT id, run_id, op, path, dest, outcome, detail, created_at
FROM operation
WHERE run_id = ?
ORDER BY id DESC
LIMIT ?
`

func (q *Queries) EntriesByRun(ctx context.Context, runID string, limit int) ([]*Entry, error) {
	rows, err := q.db.QueryContext(ctx, entriesByRun, runID, limit)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

const recentEntries = `-- name: RecentEntries :many
SELECT id, run_id, op, path, dest, outcome, detail, created_at
FROM operation
ORDER BY id DESC
LIMIT ?
`

func (q *Queries) RecentEntries(ctx context.Context, limit int) ([]*Entry, error) {
	rows, err := q.db.QueryContext(ctx, recentEntries, limit)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]*Entry, error) {
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		var i Entry
		if err := rows.Scan(
			&i.ID,
			&i.RunID,
			&i.Op,
			&i.Path,
			&i.Dest,
			&i.Outcome,
			&i.Detail,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
