package book

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the book store contract.
// Implementations must return ErrBookNotFound for missing rows.
type Repository interface {
	Create(ctx context.Context, b *Book) error

	// FindByID returns the book with its author resolved.
	FindByID(ctx context.Context, id uuid.UUID) (*Book, error)

	// Update persists the mutable fields (title, description, price,
	// cover image, published). It never touches author_id.
	Update(ctx context.Context, b *Book) error

	// FindAll is the simple listing path: with an empty search term it
	// returns all published books; with a term it returns books whose
	// title or description EXACTLY equals the term, regardless of the
	// publication flag.
	FindAll(ctx context.Context, search string) ([]Book, error)

	// FindWithFilters is the filtered listing path: a conjunction of
	// the present predicates, substring matching, and no published-only
	// default when the filter is empty.
	FindWithFilters(ctx context.Context, filter Filter) ([]Book, error)
}
