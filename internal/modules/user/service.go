package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	// RegisterUser creates a supervisor account for the given region.
	RegisterUser(ctx context.Context, username, password, fullName, region string) (*User, error)

	// GetUser retrieves a user by UUID.
	GetUser(ctx context.Context, id string) (*User, error)

	// UpdateProfile lets a user change their display name and/or
	// password. Empty fields are left unchanged; role and region are
	// immutable through this path.
	UpdateProfile(ctx context.Context, username, newFullName, newPassword string) (*User, error)
}
