package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the credential store contract.
// Implementations must return ErrUserNotFound for missing rows and
// ErrUsernameTaken on unique-constraint violations.
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, u *User) error

	// Delete hard-deletes the row. The schema cascades onto the
	// user's books (see migrations).
	Delete(ctx context.Context, id uuid.UUID) error
}
