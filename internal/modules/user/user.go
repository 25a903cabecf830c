package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a warehouse system account. Role is one of the
// policy roles (manager, supervisor, storekeeper); Region is the
// branch area the account belongs to.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	Region       string    `json:"region"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
