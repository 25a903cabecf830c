package stocklog

import (
	"context"
	"database/sql"
)

// Execer is satisfied by both *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// InsertTx appends a log entry using the caller's transaction handle.
func InsertTx(ctx context.Context, q Execer, e *Entry) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO stock_logs (action_by, action_type, item_name, location, change_amount, new_qty, unit)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		e.ActionBy, e.ActionType, e.ItemName, e.Location, e.ChangeAmount, e.NewQty, e.Unit)
	return err
}

type postgresRepository struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL stock log repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) List(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, action_by, action_type, item_name, location, change_amount, new_qty, unit, logged_at
		FROM stock_logs ORDER BY logged_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.ID, &e.ActionBy, &e.ActionType, &e.ItemName, &e.Location,
			&e.ChangeAmount, &e.NewQty, &e.Unit, &e.LoggedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
