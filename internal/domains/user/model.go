package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the domain entity backing the users table.
type User struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Username string    `db:"username" json:"username"`

	// Never serialized outward.
	PasswordHash string `db:"password_hash" json:"-"`

	// Display name used to attribute authored books.
	// Defaults to the username at registration.
	Pseudonym string `db:"author_pseudonym" json:"author_pseudonym"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
