package user

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest creates a new account. The pseudonym defaults to the
// username; it can be changed later via profile update.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 64).Error("username must be 3-64 characters"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			// bcrypt rejects inputs over 72 bytes; reject here so the
			// failure is a validation error, not a hashing error.
			validation.Length(8, 72).Error("password must be 8-72 characters"),
		),
	)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse carries the bearer token and nothing else; the profile
// lives behind GET /users/me. No expiry field: tokens are valid until
// the signing secret rotates.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// ========================================
// PROFILE DTOs
// ========================================

// UpdateProfileRequest is a partial update; nil fields stay untouched.
type UpdateProfileRequest struct {
	Username  *string `json:"username,omitempty"`
	Password  *string `json:"password,omitempty"`
	Pseudonym *string `json:"author_pseudonym,omitempty"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.NilOrNotEmpty.Error("username cannot be empty"),
			validation.Length(3, 64).Error("username must be 3-64 characters"),
		),
		validation.Field(&r.Password,
			validation.NilOrNotEmpty.Error("password cannot be empty"),
			validation.Length(8, 72).Error("password must be 8-72 characters"),
		),
		validation.Field(&r.Pseudonym,
			validation.NilOrNotEmpty.Error("author_pseudonym cannot be empty"),
			validation.Length(1, 100),
		),
	)
}

// UserDTO is the public user representation, safe to expose.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Pseudonym string    `json:"author_pseudonym"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDTO converts the entity to its public representation.
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Pseudonym: u.Pseudonym,
		CreatedAt: u.CreatedAt,
	}
}
