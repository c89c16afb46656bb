package book

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ForbiddenAuthor is the one hard-coded business rule: this username may
// never publish a book. Exact, case-sensitive match, checked at creation
// time only.
const ForbiddenAuthor = "Darth Vader"

// Book is the domain entity backing the books table.
// A book always has exactly one author, set from the authenticated
// creator and never reassignable. Deletion is a soft state transition:
// the published flag flips to false, the row stays.
type Book struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Title       string          `db:"title" json:"title"`
	Description *string         `db:"description" json:"description,omitempty"`
	CoverImage  *string         `db:"cover_image" json:"cover_image,omitempty"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Published   bool            `db:"published" json:"published"`

	AuthorID uuid.UUID `db:"author_id" json:"author_id"`
	// Author is populated on read paths that join the users table.
	Author *Author `db:"-" json:"author,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Author is the public slice of a user attached to returned books.
type Author struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Pseudonym string    `json:"author_pseudonym"`
}
