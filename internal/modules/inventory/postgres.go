package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aalshehri/wms-backend/internal/modules/stocklog"
	"github.com/google/uuid"
)

type postgresRepository struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL central inventory repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const itemColumns = `id, name_en, name_ar, category, unit, location, qty, status, created_at, updated_at`

func scanItem(row interface{ Scan(...interface{}) error }) (*Item, error) {
	item := &Item{}
	var nameAR sql.NullString
	err := row.Scan(&item.ID, &item.NameEN, &nameAR, &item.Category, &item.Unit,
		&item.Location, &item.Quantity, &item.Status, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.NameAR = nameAR.String
	return item, nil
}

func (r *postgresRepository) CreateItem(ctx context.Context, item *Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory (id, name_en, name_ar, category, unit, location, qty, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		item.ID, item.NameEN, nullable(item.NameAR), item.Category, item.Unit,
		item.Location, item.Quantity, item.Status)
	if err != nil && (strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key")) {
		return ErrDuplicate
	}
	return err
}

func (r *postgresRepository) GetItem(ctx context.Context, nameEN, location string) (*Item, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+` FROM inventory WHERE name_en=$1 AND location=$2`, nameEN, location)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *postgresRepository) ListByLocation(ctx context.Context, location string) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+itemColumns+` FROM inventory WHERE location=$1 ORDER BY name_en`, location)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepository) AdjustQuantity(ctx context.Context, p AdjustParams) (*Item, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT `+itemColumns+` FROM inventory
		WHERE name_en=$1 AND location=$2 FOR UPDATE`, p.NameEN, p.Location)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	newQty := item.Quantity + p.Delta
	if newQty < 0 {
		newQty = 0
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE inventory SET qty=$1, updated_at=NOW() WHERE id=$2`, newQty, item.ID); err != nil {
		return nil, fmt.Errorf("update inventory: %w", err)
	}

	entry := &stocklog.Entry{
		ActionBy:     p.ActionBy,
		ActionType:   p.Description,
		ItemName:     item.NameEN,
		Location:     item.Location,
		ChangeAmount: p.Delta,
		NewQty:       newQty,
		Unit:         item.Unit,
	}
	if err := stocklog.InsertTx(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("insert stock log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	item.Quantity = newQty
	return item, nil
}

func (r *postgresRepository) Transfer(ctx context.Context, p TransferParams) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT `+itemColumns+` FROM inventory
		WHERE name_en=$1 AND location=$2 FOR UPDATE`, p.NameEN, p.From)
	src, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if src.Quantity < p.Qty {
		return ErrInsufficientStock
	}

	newSrcQty := src.Quantity - p.Qty
	if _, err := tx.ExecContext(ctx,
		`UPDATE inventory SET qty=$1, updated_at=NOW() WHERE id=$2`, newSrcQty, src.ID); err != nil {
		return fmt.Errorf("debit source: %w", err)
	}
	if err := stocklog.InsertTx(ctx, tx, &stocklog.Entry{
		ActionBy:     p.ActionBy,
		ActionType:   "Transfer Out to " + p.To,
		ItemName:     src.NameEN,
		Location:     p.From,
		ChangeAmount: -p.Qty,
		NewQty:       newSrcQty,
		Unit:         src.Unit,
	}); err != nil {
		return fmt.Errorf("log transfer out: %w", err)
	}

	// Destination side: credit when the item exists there, otherwise
	// seed it with the source's category and unit.
	row = tx.QueryRowContext(ctx, `
		SELECT `+itemColumns+` FROM inventory
		WHERE name_en=$1 AND location=$2 FOR UPDATE`, p.NameEN, p.To)
	dst, err := scanItem(row)
	var newDstQty int
	switch {
	case errors.Is(err, sql.ErrNoRows):
		newDstQty = p.Qty
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO inventory (id, name_en, name_ar, category, unit, location, qty, status)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			uuid.New(), src.NameEN, nullable(src.NameAR), src.Category, src.Unit,
			p.To, newDstQty, StatusAvailable); err != nil {
			return fmt.Errorf("create destination item: %w", err)
		}
	case err != nil:
		return err
	default:
		newDstQty = dst.Quantity + p.Qty
		if _, err := tx.ExecContext(ctx,
			`UPDATE inventory SET qty=$1, updated_at=NOW() WHERE id=$2`, newDstQty, dst.ID); err != nil {
			return fmt.Errorf("credit destination: %w", err)
		}
	}
	if err := stocklog.InsertTx(ctx, tx, &stocklog.Entry{
		ActionBy:     p.ActionBy,
		ActionType:   "Transfer In from " + p.From,
		ItemName:     src.NameEN,
		Location:     p.To,
		ChangeAmount: p.Qty,
		NewQty:       newDstQty,
		Unit:         src.Unit,
	}); err != nil {
		return fmt.Errorf("log transfer in: %w", err)
	}

	return tx.Commit()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
