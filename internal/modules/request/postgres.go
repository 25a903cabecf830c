package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aalshehri/wms-backend/internal/modules/localinv"
	"github.com/aalshehri/wms-backend/internal/modules/stocklog"
)

type postgresRepository struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL request repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const requestColumns = `req_id, requester_name, region, item_name, item_name_ar, category, qty, unit,
	source_location, source_note, status, reason, notes, requested_at, updated_at`

func scanRequest(row interface{ Scan(...interface{}) error }) (*Request, error) {
	req := &Request{}
	var nameAR, note, reason, notes sql.NullString
	err := row.Scan(&req.ID, &req.RequesterName, &req.Region, &req.ItemName, &nameAR,
		&req.Category, &req.Qty, &req.Unit, &req.SourceLocation, &note,
		&req.Status, &reason, &notes, &req.RequestedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	req.ItemNameAR = nameAR.String
	req.SourceNote = note.String
	req.Reason = reason.String
	req.Notes = notes.String
	return req, nil
}

func (r *postgresRepository) CreateRequest(ctx context.Context, req *Request) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO requests (req_id, requester_name, region, item_name, item_name_ar, category,
			qty, unit, source_location, source_note, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		req.ID, req.RequesterName, req.Region, req.ItemName, nullable(req.ItemNameAR),
		req.Category, req.Qty, req.Unit, req.SourceLocation, nullable(req.SourceNote), req.Status)
	return err
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*Request, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+requestColumns+` FROM requests WHERE req_id=$1`, id)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *postgresRepository) ListByStatus(ctx context.Context, status Status) ([]*Request, error) {
	return r.list(ctx, `
		SELECT `+requestColumns+` FROM requests WHERE status=$1 ORDER BY requested_at DESC`, string(status))
}

func (r *postgresRepository) ListByRequester(ctx context.Context, requesterName string) ([]*Request, error) {
	return r.list(ctx, `
		SELECT `+requestColumns+` FROM requests WHERE requester_name=$1 ORDER BY requested_at DESC`, requesterName)
}

func (r *postgresRepository) list(ctx context.Context, query string, args ...interface{}) ([]*Request, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *postgresRepository) Approve(ctx context.Context, id string, qty int, notes string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE requests SET status=$1, qty=$2, notes=$3, updated_at=NOW()
		WHERE req_id=$4 AND status=$5`,
		string(StatusApproved), qty, nullable(notes), id, string(StatusPending))
	return guardResult(res, err)
}

func (r *postgresRepository) Reject(ctx context.Context, id string, reason string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE requests SET status=$1, reason=$2, updated_at=NOW()
		WHERE req_id=$3 AND status=$4`,
		string(StatusRejected), reason, id, string(StatusPending))
	return guardResult(res, err)
}

// Issue runs the four issuance steps as one transaction. The source
// row is locked first, so two storekeepers issuing against the same
// item serialize; the whole sequence commits or nothing does.
func (r *postgresRepository) Issue(ctx context.Context, req *Request, issueQty int, actionBy string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var current int
	var unit string
	err = tx.QueryRowContext(ctx, `
		SELECT qty, unit FROM inventory
		WHERE name_en=$1 AND location=$2 FOR UPDATE`,
		req.ItemName, req.SourceLocation).Scan(&current, &unit)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrItemGone
	}
	if err != nil {
		return err
	}
	if current < issueQty {
		return ErrInsufficientStock
	}

	newQty := current - issueQty
	if _, err := tx.ExecContext(ctx, `
		UPDATE inventory SET qty=$1, updated_at=NOW() WHERE name_en=$2 AND location=$3`,
		newQty, req.ItemName, req.SourceLocation); err != nil {
		return fmt.Errorf("debit central stock: %w", err)
	}

	if err := stocklog.InsertTx(ctx, tx, &stocklog.Entry{
		ActionBy:     actionBy,
		ActionType:   "Issued to " + req.Region,
		ItemName:     req.ItemName,
		Location:     req.SourceLocation,
		ChangeAmount: -issueQty,
		NewQty:       newQty,
		Unit:         unit,
	}); err != nil {
		return fmt.Errorf("insert stock log: %w", err)
	}

	if err := localinv.AddQuantityTx(ctx, tx, req.Region, req.ItemName, issueQty, actionBy); err != nil {
		return fmt.Errorf("credit branch inventory: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE requests SET status=$1, qty=$2, updated_at=NOW()
		WHERE req_id=$3 AND status=$4`,
		string(StatusIssued), issueQty, req.ID, string(StatusApproved))
	if err := guardResult(res, err); err != nil {
		return err
	}

	return tx.Commit()
}

// guardResult maps a zero-row guarded update to ErrInvalidTransition:
// the request either disappeared or was already decided by someone else.
func guardResult(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
