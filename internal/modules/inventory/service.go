package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/aalshehri/wms-backend/internal/modules/policy"
	"github.com/aalshehri/wms-backend/internal/modules/session"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrNotPermitted means the session's role may not perform the action.
var ErrNotPermitted = errors.New("action not permitted for role")

// ErrValidation marks a payload that failed a field check.
var ErrValidation = errors.New("invalid inventory input")

// Service defines central inventory business logic.
type Service interface {
	// CreateItem adds a new stock record. Manager only.
	CreateItem(ctx context.Context, sess session.Session, req CreateItemRequest) (*Item, error)

	// GetItem looks up one record by its (name, location) key within
	// the session's visible locations.
	GetItem(ctx context.Context, sess session.Session, nameEN, location string) (*Item, error)

	// ListLocation returns the stock at one warehouse, subject to the
	// session's location visibility.
	ListLocation(ctx context.Context, sess session.Session, location string) ([]*Item, error)

	// Adjust runs a stock-take: a signed delta with a description,
	// clamped at zero, always logged. Manager or storekeeper.
	Adjust(ctx context.Context, sess session.Session, req AdjustRequest) (*Item, error)

	// Transfer moves stock between the two warehouses. Manager or
	// storekeeper.
	Transfer(ctx context.Context, sess session.Session, req TransferRequest) error
}

// CreateItemRequest holds data for creating a stock record.
type CreateItemRequest struct {
	NameEN     string `json:"name_en" validate:"required"`
	NameAR     string `json:"name_ar"`
	Category   string `json:"category" validate:"required"`
	Unit       string `json:"unit" validate:"required"`
	Location   string `json:"location" validate:"required"`
	InitialQty int    `json:"qty" validate:"gte=0"`
}

// AdjustRequest holds data for a central stock-take.
type AdjustRequest struct {
	NameEN      string `json:"name_en" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Delta       int    `json:"delta"`
	Description string `json:"description" validate:"required"`
}

// TransferRequest holds data for a warehouse-to-warehouse move.
type TransferRequest struct {
	NameEN string `json:"name_en" validate:"required"`
	From   string `json:"from" validate:"required"`
	To     string `json:"to" validate:"required"`
	Qty    int    `json:"qty" validate:"gt=0"`
}

type service struct {
	repo Repository
	log  *logrus.Logger
}

// NewService creates a new central inventory service.
func NewService(repo Repository, log *logrus.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) CreateItem(ctx context.Context, sess session.Session, req CreateItemRequest) (*Item, error) {
	if !policy.CanCreateItem(sess.Role) {
		return nil, ErrNotPermitted
	}
	req.NameEN = strings.TrimSpace(req.NameEN)
	if req.NameEN == "" || !ValidCategory(req.Category) || !ValidUnit(req.Unit) ||
		!policy.ValidLocation(req.Location) || req.InitialQty < 0 {
		return nil, ErrValidation
	}

	item := &Item{
		ID:       uuid.New(),
		NameEN:   req.NameEN,
		NameAR:   strings.TrimSpace(req.NameAR),
		Category: req.Category,
		Unit:     req.Unit,
		Location: req.Location,
		Quantity: req.InitialQty,
		Status:   StatusAvailable,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"module":   "inventory",
		"item":     item.NameEN,
		"location": item.Location,
		"qty":      item.Quantity,
		"by":       sess.Username,
	}).Info("item created")
	return item, nil
}

func (s *service) GetItem(ctx context.Context, sess session.Session, nameEN, location string) (*Item, error) {
	if !policy.CanSeeLocation(sess.Role, location) {
		return nil, ErrNotPermitted
	}
	return s.repo.GetItem(ctx, nameEN, location)
}

func (s *service) ListLocation(ctx context.Context, sess session.Session, location string) ([]*Item, error) {
	if !policy.ValidLocation(location) {
		return nil, ErrValidation
	}
	if !policy.CanSeeLocation(sess.Role, location) {
		return nil, ErrNotPermitted
	}
	return s.repo.ListByLocation(ctx, location)
}

func (s *service) Adjust(ctx context.Context, sess session.Session, req AdjustRequest) (*Item, error) {
	if !policy.CanAdjustCentral(sess.Role) {
		return nil, ErrNotPermitted
	}
	if strings.TrimSpace(req.Description) == "" || !policy.ValidLocation(req.Location) || req.Delta == 0 {
		return nil, ErrValidation
	}

	item, err := s.repo.AdjustQuantity(ctx, AdjustParams{
		ActionBy:    sess.FullName,
		NameEN:      req.NameEN,
		Location:    req.Location,
		Delta:       req.Delta,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"module":   "inventory",
		"item":     req.NameEN,
		"location": req.Location,
		"delta":    req.Delta,
		"new_qty":  item.Quantity,
		"by":       sess.Username,
	}).Info("stock adjusted")
	return item, nil
}

func (s *service) Transfer(ctx context.Context, sess session.Session, req TransferRequest) error {
	if !policy.CanTransfer(sess.Role) {
		return ErrNotPermitted
	}
	if req.Qty <= 0 || !policy.ValidLocation(req.From) || !policy.ValidLocation(req.To) || req.From == req.To {
		return ErrValidation
	}

	err := s.repo.Transfer(ctx, TransferParams{
		ActionBy: sess.FullName,
		NameEN:   req.NameEN,
		From:     req.From,
		To:       req.To,
		Qty:      req.Qty,
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"module": "inventory",
		"item":   req.NameEN,
		"from":   req.From,
		"to":     req.To,
		"qty":    req.Qty,
		"by":     sess.Username,
	}).Info("stock transferred")
	return nil
}
