package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by (normalized) email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByResetToken finds the user holding a password reset token
	FindByResetToken(ctx context.Context, token string) (*User, error)

	// ExistsVerifiedByEmail reports whether a verified user owns the email
	ExistsVerifiedByEmail(ctx context.Context, email string) (bool, error)

	// ExistsVerifiedByContact reports whether a verified user owns the contact number
	ExistsVerifiedByContact(ctx context.Context, contact string) (bool, error)
}
