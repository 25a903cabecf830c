package request

import (
	"context"
	"errors"

	"github.com/aalshehri/wms-backend/internal/modules/inventory"
	"github.com/aalshehri/wms-backend/internal/modules/policy"
	"github.com/aalshehri/wms-backend/internal/modules/session"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNotPermitted means the session's role may not perform the action.
	ErrNotPermitted = errors.New("action not permitted for role")

	// ErrValidation marks a payload that failed a field check.
	ErrValidation = errors.New("invalid request input")

	// ErrReasonRequired means a rejection came without a reason.
	ErrReasonRequired = errors.New("rejection reason is required")

	// ErrItemNotFound means the requested item does not exist at the
	// chosen source warehouse.
	ErrItemNotFound = errors.New("item not found in source warehouse")
)

// Service defines the request workflow business logic.
type Service interface {
	// Create opens a Pending request. Supervisors are pinned to NTCC
	// and their own region; storekeepers may source from either
	// warehouse. No stock is reserved at creation.
	Create(ctx context.Context, sess session.Session, req CreateRequest) (*Request, error)

	// Get retrieves a request by UUID.
	Get(ctx context.Context, id string) (*Request, error)

	// ListPending returns requests awaiting a manager decision.
	ListPending(ctx context.Context, sess session.Session) ([]*Request, error)

	// ListApproved returns requests awaiting issuance.
	ListApproved(ctx context.Context, sess session.Session) ([]*Request, error)

	// ListMine returns the session user's own requests.
	ListMine(ctx context.Context, sess session.Session) ([]*Request, error)

	// Approve moves a Pending request to Approved. Manager only.
	Approve(ctx context.Context, sess session.Session, id string, req ApproveRequest) (*Request, error)

	// Reject moves a Pending request to Rejected. Manager only; the
	// reason is mandatory.
	Reject(ctx context.Context, sess session.Session, id string, req RejectRequest) (*Request, error)

	// Issue releases an Approved request: central stock is debited at
	// the source warehouse, the movement is logged, the request's
	// region is credited, and the request becomes Issued — all in one
	// transaction. Storekeeper only. Fails without side effects when
	// stock is insufficient.
	Issue(ctx context.Context, sess session.Session, id string, req IssueRequest) (*Request, error)
}

// validTransitions defines the allowed status state machine.
var validTransitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusIssued},
	StatusRejected: {},
	StatusIssued:   {},
}

func canTransition(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type service struct {
	repo    Repository
	invRepo inventory.Repository
	log     *logrus.Logger
}

// NewService creates a new request workflow service. The inventory
// repository supplies the item snapshot taken at request creation.
func NewService(repo Repository, invRepo inventory.Repository, log *logrus.Logger) Service {
	return &service{repo: repo, invRepo: invRepo, log: log}
}

func (s *service) Create(ctx context.Context, sess session.Session, req CreateRequest) (*Request, error) {
	if !policy.CanCreateRequest(sess.Role) {
		return nil, ErrNotPermitted
	}
	if req.Qty <= 0 || req.ItemName == "" {
		return nil, ErrValidation
	}

	source := req.Source
	if source == "" {
		source = policy.LocationNTCC
	}
	if !policy.RequestSourceAllowed(sess.Role, source) {
		return nil, ErrNotPermitted
	}

	item, err := s.invRepo.GetItem(ctx, req.ItemName, source)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	var sourceNote string
	if sess.Role == policy.RoleStorekeeper {
		sourceNote = "Storekeeper pull from " + source
	}

	request := &Request{
		ID:             uuid.New(),
		RequesterName:  sess.FullName,
		Region:         sess.Region,
		ItemName:       item.NameEN,
		ItemNameAR:     item.NameAR,
		Category:       item.Category,
		Qty:            req.Qty,
		Unit:           item.Unit,
		SourceLocation: source,
		SourceNote:     sourceNote,
		Status:         StatusPending,
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"module": "request",
		"req_id": request.ID,
		"item":   request.ItemName,
		"qty":    request.Qty,
		"region": request.Region,
		"source": source,
		"by":     sess.Username,
	}).Info("request created")
	return request, nil
}

func (s *service) Get(ctx context.Context, id string) (*Request, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListPending(ctx context.Context, sess session.Session) ([]*Request, error) {
	if !policy.CanApprove(sess.Role) {
		return nil, ErrNotPermitted
	}
	return s.repo.ListByStatus(ctx, StatusPending)
}

func (s *service) ListApproved(ctx context.Context, sess session.Session) ([]*Request, error) {
	if !policy.CanIssue(sess.Role) {
		return nil, ErrNotPermitted
	}
	return s.repo.ListByStatus(ctx, StatusApproved)
}

func (s *service) ListMine(ctx context.Context, sess session.Session) ([]*Request, error) {
	return s.repo.ListByRequester(ctx, sess.FullName)
}

func (s *service) Approve(ctx context.Context, sess session.Session, id string, req ApproveRequest) (*Request, error) {
	if !policy.CanApprove(sess.Role) {
		return nil, ErrNotPermitted
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(r.Status, StatusApproved) {
		return nil, ErrInvalidTransition
	}

	qty := r.Qty
	if req.Qty > 0 {
		qty = req.Qty
	}

	if err := s.repo.Approve(ctx, id, qty, req.Notes); err != nil {
		return nil, err
	}

	r.Status = StatusApproved
	r.Qty = qty
	r.Notes = req.Notes
	s.log.WithFields(logrus.Fields{
		"module": "request",
		"req_id": id,
		"qty":    qty,
		"by":     sess.Username,
	}).Info("request approved")
	return r, nil
}

func (s *service) Reject(ctx context.Context, sess session.Session, id string, req RejectRequest) (*Request, error) {
	if !policy.CanReject(sess.Role) {
		return nil, ErrNotPermitted
	}
	if req.Reason == "" {
		return nil, ErrReasonRequired
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(r.Status, StatusRejected) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.Reject(ctx, id, req.Reason); err != nil {
		return nil, err
	}

	r.Status = StatusRejected
	r.Reason = req.Reason
	s.log.WithFields(logrus.Fields{
		"module": "request",
		"req_id": id,
		"reason": req.Reason,
		"by":     sess.Username,
	}).Info("request rejected")
	return r, nil
}

func (s *service) Issue(ctx context.Context, sess session.Session, id string, req IssueRequest) (*Request, error) {
	if !policy.CanIssue(sess.Role) {
		return nil, ErrNotPermitted
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(r.Status, StatusIssued) {
		return nil, ErrInvalidTransition
	}

	issueQty := req.Qty
	if issueQty == 0 {
		issueQty = r.Qty
	}
	if issueQty <= 0 {
		return nil, ErrValidation
	}

	if err := s.repo.Issue(ctx, r, issueQty, sess.FullName); err != nil {
		return nil, err
	}

	r.Status = StatusIssued
	r.Qty = issueQty
	s.log.WithFields(logrus.Fields{
		"module": "request",
		"req_id": id,
		"item":   r.ItemName,
		"qty":    issueQty,
		"region": r.Region,
		"by":     sess.Username,
	}).Info("request issued")
	return r, nil
}
