package user

import (
	"context"
	"errors"
	"strings"

	"github.com/aalshehri/wms-backend/internal/modules/policy"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrValidation marks a registration or profile-edit payload that
// failed a field check.
var ErrValidation = errors.New("invalid user input")

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RegisterUser(ctx context.Context, username, password, fullName, region string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || strings.TrimSpace(fullName) == "" {
		return nil, ErrValidation
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hashedPassword),
		FullName:     strings.TrimSpace(fullName),
		Role:         policy.RoleSupervisor,
		Region:       region,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, username, newFullName, newPassword string) (*User, error) {
	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	fullName := u.FullName
	if strings.TrimSpace(newFullName) != "" {
		fullName = strings.TrimSpace(newFullName)
	}

	passwordHash := u.PasswordHash
	if newPassword != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		passwordHash = string(hashed)
	}

	if err := s.repo.UpdateProfile(ctx, username, fullName, passwordHash); err != nil {
		return nil, err
	}

	u.FullName = fullName
	u.PasswordHash = passwordHash
	return u, nil
}
