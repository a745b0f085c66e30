package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type Snapshot struct {
	Domain      string
	RunID       string
	Outcome     string
	RecordCount int64
	FetchedAt   int64
	Data        []byte
}

type RefreshRun struct {
	ID          int64
	RunID       string
	Domain      string
	Outcome     string
	RecordCount int64
	StartedAt   int64
	DurationMs  int64
}

const upsertSnapshot = `
INSERT INTO snapshots (domain, run_id, outcome, record_count, fetched_at, data)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (domain) DO UPDATE SET
    run_id = excluded.run_id,
    outcome = excluded.outcome,
    record_count = excluded.record_count,
    fetched_at = excluded.fetched_at,
    data = excluded.data
`

type UpsertSnapshotParams struct {
	Domain      string
	RunID       string
	Outcome     string
	RecordCount int64
	FetchedAt   int64
	Data        []byte
}

func (q *Queries) UpsertSnapshot(ctx context.Context, arg UpsertSnapshotParams) error {
	_, err := q.db.ExecContext(ctx, upsertSnapshot,
		arg.Domain,
		arg.RunID,
		arg.Outcome,
		arg.RecordCount,
		arg.FetchedAt,
		arg.Data,
	)
	return err
}

const getSnapshot = `
SELECT domain, run_id, outcome, record_count, fetched_at, data
FROM snapshots
WHERE domain = ?
`

func (q *Queries) GetSnapshot(ctx context.Context, domain string) (Snapshot, error) {
	row := q.db.QueryRowContext(ctx, getSnapshot, domain)
	var i Snapshot
	err := row.Scan(
		&i.Domain,
		&i.RunID,
		&i.Outcome,
		&i.RecordCount,
		&i.FetchedAt,
		&i.Data,
	)
	return i, err
}

const getAllSnapshots = `
SELECT domain, run_id, outcome, record_count, fetched_at, data
FROM snapshots
ORDER BY domain
`

func (q *Queries) GetAllSnapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := q.db.QueryContext(ctx, getAllSnapshots)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Snapshot
	for rows.Next() {
		var i Snapshot
		err := rows.Scan(
			&i.Domain,
			&i.RunID,
			&i.Outcome,
			&i.RecordCount,
			&i.FetchedAt,
			&i.Data,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createRefreshRun = `
INSERT INTO refresh_runs (run_id, domain, outcome, record_count, started_at, duration_ms)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateRefreshRunParams struct {
	RunID       string
	Domain      string
	Outcome     string
	RecordCount int64
	StartedAt   int64
	DurationMs  int64
}

func (q *Queries) CreateRefreshRun(ctx context.Context, arg CreateRefreshRunParams) error {
	_, err := q.db.ExecContext(ctx, createRefreshRun,
		arg.RunID,
		arg.Domain,
		arg.Outcome,
		arg.RecordCount,
		arg.StartedAt,
		arg.DurationMs,
	)
	return err
}

const getRecentRefreshRuns = `
SELECT id, run_id, domain, outcome, record_count, started_at, duration_ms
FROM refresh_runs
ORDER BY started_at DESC, id DESC
LIMIT ?
`

func (q *Queries) GetRecentRefreshRuns(ctx context.Context, limit int64) ([]RefreshRun, error) {
	rows, err := q.db.QueryContext(ctx, getRecentRefreshRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []RefreshRun
	for rows.Next() {
		var i RefreshRun
		err := rows.Scan(
			&i.ID,
			&i.RunID,
			&i.Domain,
			&i.Outcome,
			&i.RecordCount,
			&i.StartedAt,
			&i.DurationMs,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
