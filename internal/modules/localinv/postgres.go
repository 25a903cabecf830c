package localinv

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound means no branch record exists for the (region, item) key.
var ErrNotFound = errors.New("local inventory record not found")

// Execer is satisfied by both *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// AddQuantityTx credits delta onto the (region, item) record using the
// caller's transaction handle, so issuance can keep the credit inside
// the same transaction as the central debit.
func AddQuantityTx(ctx context.Context, q Execer, region, itemName string, delta int, updatedBy string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO local_inventory (region, item_name, qty, updated_by, last_updated)
		VALUES ($1,$2,$3,$4,NOW())
		ON CONFLICT (region, item_name)
		DO UPDATE SET qty = local_inventory.qty + EXCLUDED.qty, updated_by = EXCLUDED.updated_by, last_updated = NOW()`,
		region, itemName, delta, updatedBy)
	return err
}

type postgresRepository struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL branch inventory repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) AddQuantity(ctx context.Context, region, itemName string, delta int, updatedBy string) error {
	return AddQuantityTx(ctx, r.db, region, itemName, delta, updatedBy)
}

func (r *postgresRepository) SetQuantity(ctx context.Context, region, itemName string, qty int, updatedBy string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO local_inventory (region, item_name, qty, updated_by, last_updated)
		VALUES ($1,$2,$3,$4,NOW())
		ON CONFLICT (region, item_name)
		DO UPDATE SET qty = EXCLUDED.qty, updated_by = EXCLUDED.updated_by, last_updated = NOW()`,
		region, itemName, qty, updatedBy)
	return err
}

func (r *postgresRepository) GetRecord(ctx context.Context, region, itemName string) (*Record, error) {
	rec := &Record{}
	err := r.db.QueryRowContext(ctx, `
		SELECT region, item_name, qty, updated_by, last_updated
		FROM local_inventory WHERE region=$1 AND item_name=$2`, region, itemName).
		Scan(&rec.Region, &rec.ItemName, &rec.Quantity, &rec.UpdatedBy, &rec.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *postgresRepository) ListByRegion(ctx context.Context, region string) ([]*Record, error) {
	return r.list(ctx, `
		SELECT region, item_name, qty, updated_by, last_updated
		FROM local_inventory WHERE region=$1 ORDER BY item_name`, region)
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]*Record, error) {
	return r.list(ctx, `
		SELECT region, item_name, qty, updated_by, last_updated
		FROM local_inventory ORDER BY region, item_name`)
}

func (r *postgresRepository) list(ctx context.Context, query string, args ...interface{}) ([]*Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec := &Record{}
		if err := rows.Scan(&rec.Region, &rec.ItemName, &rec.Quantity, &rec.UpdatedBy, &rec.LastUpdated); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
