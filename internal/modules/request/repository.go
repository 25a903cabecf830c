package request

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means no request exists for the id.
	ErrNotFound = errors.New("request not found")

	// ErrInvalidTransition means the request is not in a state the
	// operation accepts. Also returned when a guarded update loses a
	// race and finds the row already moved on.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInsufficientStock means the source warehouse holds less than
	// the issue quantity. Issuance rejects outright: no clamp, no log
	// row, no ledger change, status stays Approved.
	ErrInsufficientStock = errors.New("insufficient stock at source warehouse")

	// ErrItemGone means the inventory record for the request's item no
	// longer exists at the source location.
	ErrItemGone = errors.New("item record not found at source warehouse")
)

// Repository defines request data storage. Approve and Reject guard on
// the current status in SQL so concurrent decisions cannot both land.
// Issue performs the whole issuance sequence in one transaction:
// conditional central debit, movement-log append, branch credit, and
// the status flip to Issued.
type Repository interface {
	CreateRequest(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id string) (*Request, error)
	ListByStatus(ctx context.Context, status Status) ([]*Request, error)
	ListByRequester(ctx context.Context, requesterName string) ([]*Request, error)

	// Approve moves a Pending request to Approved, storing the
	// (possibly trimmed) quantity and optional notes.
	Approve(ctx context.Context, id string, qty int, notes string) error

	// Reject moves a Pending request to Rejected with the reason.
	Reject(ctx context.Context, id string, reason string) error

	// Issue atomically debits central stock at req.SourceLocation by
	// issueQty, appends the log entry, credits the request's region in
	// branch inventory, and marks the request Issued with issueQty.
	Issue(ctx context.Context, req *Request, issueQty int, actionBy string) error
}
