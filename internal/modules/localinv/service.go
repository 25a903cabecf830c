package localinv

import (
	"context"
	"errors"

	"github.com/aalshehri/wms-backend/internal/modules/policy"
	"github.com/aalshehri/wms-backend/internal/modules/session"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNotPermitted means the session's role may not perform the action.
	ErrNotPermitted = errors.New("action not permitted for role")

	// ErrValidation marks a payload that failed a field check.
	ErrValidation = errors.New("invalid local inventory input")
)

// Service defines branch inventory business logic.
type Service interface {
	// SetCount files a supervisor's absolute stock-take for an item in
	// their own region. The counted value overwrites whatever the
	// record held, including issuance credits.
	SetCount(ctx context.Context, sess session.Session, itemName string, qty int) (*Record, error)

	// ListRegion returns one region's branch inventory, subject to the
	// session's region visibility.
	ListRegion(ctx context.Context, sess session.Session, region string) ([]*Record, error)

	// ListAll returns every region's branch inventory. Manager only.
	ListAll(ctx context.Context, sess session.Session) ([]*Record, error)
}

type service struct {
	repo Repository
	log  *logrus.Logger
}

// NewService creates a new branch inventory service.
func NewService(repo Repository, log *logrus.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) SetCount(ctx context.Context, sess session.Session, itemName string, qty int) (*Record, error) {
	if !policy.CanSetLocalCount(sess.Role) {
		return nil, ErrNotPermitted
	}
	if itemName == "" || qty < 0 {
		return nil, ErrValidation
	}

	if err := s.repo.SetQuantity(ctx, sess.Region, itemName, qty, sess.FullName); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"module": "localinv",
		"region": sess.Region,
		"item":   itemName,
		"qty":    qty,
		"by":     sess.Username,
	}).Info("branch count filed")

	return s.repo.GetRecord(ctx, sess.Region, itemName)
}

func (s *service) ListRegion(ctx context.Context, sess session.Session, region string) ([]*Record, error) {
	if region == "" {
		region = sess.Region
	}
	if !policy.CanSeeRegion(sess.Role, sess.Region, region) {
		return nil, ErrNotPermitted
	}
	return s.repo.ListByRegion(ctx, region)
}

func (s *service) ListAll(ctx context.Context, sess session.Session) ([]*Record, error) {
	if sess.Role != policy.RoleManager {
		return nil, ErrNotPermitted
	}
	return s.repo.ListAll(ctx)
}
