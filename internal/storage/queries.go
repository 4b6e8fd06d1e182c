package storage

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

const getValue = `-- name: GetValue :one
SELECT value FROM kv WHERE key = ?
`

func (q *Queries) GetValue(ctx context.Context, key string) (string, error) {
	row := q.db.QueryRowContext(ctx, getValue, key)
	var value string
	err := row.Scan(&value)
	return value, err
}

const upsertValue = `-- name: UpsertValue :exec
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`

type UpsertValueParams struct {
	Key   string
	Value string
}

func (q *Queries) UpsertValue(ctx context.Context, arg UpsertValueParams) error {
	_, err := q.db.ExecContext(ctx, upsertValue, arg.Key, arg.Value)
	return err
}
