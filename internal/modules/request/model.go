package request

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of an item request.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
	StatusIssued   Status = "Issued"
)

// Request is an ask for items from central stock, subject to manager
// approval and storekeeper issuance. Item name, category and unit are
// snapshotted from the inventory record at creation time. After
// issuance Qty holds the actually issued quantity.
type Request struct {
	ID             uuid.UUID `json:"req_id"`
	RequesterName  string    `json:"requester_name"`
	Region         string    `json:"region"`
	ItemName       string    `json:"item_name"`
	ItemNameAR     string    `json:"item_name_ar,omitempty"`
	Category       string    `json:"category"`
	Qty            int       `json:"qty"`
	Unit           string    `json:"unit"`
	SourceLocation string    `json:"source_location"`
	SourceNote     string    `json:"source_note,omitempty"`
	Status         Status    `json:"status"`
	Reason         string    `json:"reason,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	RequestedAt    time.Time `json:"requested_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateRequest is the payload for opening a request.
type CreateRequest struct {
	ItemName string `json:"item_name" validate:"required"`
	Qty      int    `json:"qty" validate:"gt=0"`
	Source   string `json:"source,omitempty"` // storekeeper only; supervisors are pinned to NTCC
}

// ApproveRequest is the manager's payload; Qty may trim the requested
// quantity before approval.
type ApproveRequest struct {
	Qty   int    `json:"qty,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// RejectRequest is the manager's payload; Reason is mandatory.
type RejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// IssueRequest is the storekeeper's payload; Qty defaults to the
// approved quantity when zero.
type IssueRequest struct {
	Qty int `json:"qty,omitempty"`
}
