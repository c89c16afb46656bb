package book

import (
	"context"

	"github.com/google/uuid"
)

// Service is the book business-logic contract. All mutations run the
// access policy (ownership, forbidden author) before touching the store.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, req CreateBookRequest) (*Book, error)
	Get(ctx context.Context, id uuid.UUID) (*Book, error)
	ListAll(ctx context.Context, search string) ([]Book, error)
	ListFiltered(ctx context.Context, filter Filter) ([]Book, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req UpdateBookRequest) (*Book, error)

	// Unpublish is the deletion endpoint: owner-only, idempotent,
	// flips published to false and keeps the row.
	Unpublish(ctx context.Context, actorID, id uuid.UUID) (*Book, error)

	// UploadCover stores a new cover image for an owned book and
	// schedules deletion of the replaced object.
	UploadCover(ctx context.Context, actorID, id uuid.UUID, data []byte, contentType string) (*Book, error)
}
