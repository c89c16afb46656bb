package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"wookie-books-backend/internal/domains/book"
	"wookie-books-backend/internal/domains/user"
	"wookie-books-backend/internal/infrastructure/queue"
	"wookie-books-backend/internal/infrastructure/storage"
)

// bookService implements book.Service. The access policy lives here:
// every mutation resolves ownership before the store is touched.
type bookService struct {
	repo     book.Repository
	users    user.Repository
	storage  storage.ObjectStorage
	enqueuer queue.Enqueuer
}

// NewBookService creates the service.
func NewBookService(
	repo book.Repository,
	users user.Repository,
	objectStorage storage.ObjectStorage,
	enqueuer queue.Enqueuer,
) book.Service {
	return &bookService{
		repo:     repo,
		users:    users,
		storage:  objectStorage,
		enqueuer: enqueuer,
	}
}

// ========================================
// MUTATIONS (access policy applies)
// ========================================

// Create resolves the acting user and enforces the forbidden-author
// rule. The token subject may reference a user deleted after issuance;
// that surfaces as ErrUserNotFound, not an internal error.
func (s *bookService) Create(ctx context.Context, actorID uuid.UUID, req book.CreateBookRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	// The one global business rule. Enforced at creation only.
	if author.Username == book.ForbiddenAuthor {
		return nil, book.ErrAuthorForbidden
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	now := time.Now()
	b := &book.Book{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Price:       req.Price,
		Published:   published,
		AuthorID:    author.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	b.Author = &book.Author{
		ID:        author.ID,
		Username:  author.Username,
		Pseudonym: author.Pseudonym,
	}
	return b, nil
}

// Update applies the supplied partial field set to an owned book.
// The author never changes through this path.
func (s *bookService) Update(ctx context.Context, actorID, id uuid.UUID, req book.UpdateBookRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.ownedBook(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Description != nil {
		b.Description = req.Description
	}
	if req.CoverImage != nil {
		b.CoverImage = req.CoverImage
	}
	if req.Price != nil {
		b.Price = *req.Price
	}
	if req.Published != nil {
		b.Published = *req.Published
	}
	b.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// Unpublish flips the publication flag to false and keeps the row.
// Idempotent: unpublishing an already-unpublished book succeeds.
func (s *bookService) Unpublish(ctx context.Context, actorID, id uuid.UUID) (*book.Book, error) {
	b, err := s.ownedBook(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	b.Published = false
	b.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// UploadCover stores a new cover object and swaps the book's cover URL.
// The replaced object is deleted asynchronously by the worker.
func (s *bookService) UploadCover(ctx context.Context, actorID, id uuid.UUID, data []byte, contentType string) (*book.Book, error) {
	ext, ok := coverExtension(contentType)
	if !ok {
		return nil, book.ErrUnsupportedCoverType
	}

	b, err := s.ownedBook(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	oldCover := b.CoverImage

	key := fmt.Sprintf("covers/%s/%s%s", b.ID, uuid.New(), ext)
	coverURL, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload cover: %w", err)
	}

	b.CoverImage = &coverURL
	b.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	if oldCover != nil {
		if oldKey := coverObjectKey(*oldCover); oldKey != "" {
			s.enqueuer.EnqueueCoverDelete(ctx, b.ID.String(), oldKey)
		}
	}

	return b, nil
}

// ========================================
// READS (public)
// ========================================

func (s *bookService) Get(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *bookService) ListAll(ctx context.Context, search string) ([]book.Book, error) {
	return s.repo.FindAll(ctx, search)
}

func (s *bookService) ListFiltered(ctx context.Context, filter book.Filter) ([]book.Book, error) {
	return s.repo.FindWithFilters(ctx, filter)
}

// ========================================
// HELPERS
// ========================================

// ownedBook fetches a book and checks the acting user owns it.
func (s *bookService) ownedBook(ctx context.Context, actorID, id uuid.UUID) (*book.Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.AuthorID != actorID {
		return nil, book.ErrNotBookOwner
	}

	return b, nil
}

func coverExtension(contentType string) (string, bool) {
	switch contentType {
	case "image/jpeg":
		return ".jpg", true
	case "image/png":
		return ".png", true
	case "image/webp":
		return ".webp", true
	default:
		return "", false
	}
}

// coverObjectKey recovers the object key from a stored cover URL
// (http://host/bucket/key). Returns "" for URLs this service did not
// produce, e.g. covers set directly through the JSON API.
func coverObjectKey(coverURL string) string {
	u, err := url.Parse(coverURL)
	if err != nil {
		return ""
	}

	parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
	if len(parts) != 2 || !strings.HasPrefix(parts[1], "covers/") {
		return ""
	}
	return parts[1]
}
