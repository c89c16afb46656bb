package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wookie-books-backend/internal/domains/book"
	"wookie-books-backend/pkg/cache"
	"wookie-books-backend/pkg/logger"
)

const bookCacheTTL = 10 * time.Minute

// selectColumns is shared by every read path so author resolution
// stays consistent.
const selectColumns = `
	b.id, b.title, b.description, b.cover_image, b.price, b.published,
	b.author_id, b.created_at, b.updated_at,
	u.id, u.username, u.author_pseudonym
`

// postgresRepository implements book.Repository with raw SQL on pgxpool
// and a Redis cache-aside layer for by-id lookups.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates the repository.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) book.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func bookCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("book:%s", id)
}

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) error {
	query := `
		INSERT INTO books (id, title, description, cover_image, price, published, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Title,
		b.Description,
		b.CoverImage,
		b.Price,
		b.Published,
		b.AuthorID,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	cacheKey := bookCacheKey(id)

	var cached book.Book
	found, err := r.cache.Get(ctx, cacheKey, &cached)
	if err == nil && found {
		return &cached, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		LEFT JOIN users u ON u.id = b.author_id
		WHERE b.id = $1
	`, selectColumns)

	row := r.pool.QueryRow(ctx, query, id)
	b, err := scanBook(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, book.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select book by id: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, b, bookCacheTTL); err != nil {
		logger.Error("cache book", err)
	}

	return b, nil
}

// Update persists the mutable fields. author_id is deliberately absent
// from the SET list.
func (r *postgresRepository) Update(ctx context.Context, b *book.Book) error {
	query := `
		UPDATE books
		SET title = $2, description = $3, cover_image = $4, price = $5, published = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Title,
		b.Description,
		b.CoverImage,
		b.Price,
		b.Published,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	if err := r.cache.Delete(ctx, bookCacheKey(b.ID)); err != nil {
		logger.Error("invalidate book cache", err)
	}

	return nil
}

// FindAll is the simple listing path. No search term: published books
// only. With a term: exact title/description match, any publication
// state. The exact-match fallback is intentional and must not be
// unified with the substring filters below.
func (r *postgresRepository) FindAll(ctx context.Context, search string) ([]book.Book, error) {
	base := fmt.Sprintf(`
		SELECT %s
		FROM books b
		LEFT JOIN users u ON u.id = b.author_id
	`, selectColumns)

	var (
		query string
		args  []interface{}
	)
	if search == "" {
		query = base + ` WHERE b.published = true ORDER BY b.created_at DESC`
	} else {
		query = base + ` WHERE (b.title = $1 OR b.description = $1) ORDER BY b.created_at DESC`
		args = append(args, search)
	}

	return r.queryBooks(ctx, query, args)
}

// FindWithFilters is the filtered listing path. An empty filter returns
// every row, unpublished ones included.
func (r *postgresRepository) FindWithFilters(ctx context.Context, filter book.Filter) ([]book.Book, error) {
	whereClause, args := buildWhereClause(filter)

	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		LEFT JOIN users u ON u.id = b.author_id
		%s
		ORDER BY b.created_at DESC
	`, selectColumns, whereClause)

	return r.queryBooks(ctx, query, args)
}

// ========================================
// HELPERS
// ========================================

// buildWhereClause composes a conjunction of the present predicates
// with positional args. Returns an empty clause for an empty filter.
func buildWhereClause(filter book.Filter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.Title != nil {
		conditions = append(conditions, fmt.Sprintf("b.title LIKE $%d", argIndex))
		args = append(args, "%"+*filter.Title+"%")
		argIndex++
	}

	if filter.AuthorPseudonym != nil {
		conditions = append(conditions, fmt.Sprintf("(b.author_id IS NOT NULL AND u.author_pseudonym LIKE $%d)", argIndex))
		args = append(args, "%"+*filter.AuthorPseudonym+"%")
		argIndex++
	}

	if filter.Published != nil {
		conditions = append(conditions, fmt.Sprintf("b.published = $%d", argIndex))
		args = append(args, *filter.Published)
		argIndex++
	}

	// Inclusive window, only when both bounds are present.
	if filter.HasPriceRange() {
		conditions = append(conditions, fmt.Sprintf("b.price >= $%d", argIndex))
		args = append(args, *filter.MinPrice)
		argIndex++
		conditions = append(conditions, fmt.Sprintf("b.price <= $%d", argIndex))
		args = append(args, *filter.MaxPrice)
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *postgresRepository) queryBooks(ctx context.Context, query string, args []interface{}) ([]book.Book, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]book.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return books, nil
}

func scanBook(row pgx.Row) (*book.Book, error) {
	var b book.Book
	var authorID *uuid.UUID
	var authorUsername, authorPseudonym *string

	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Description,
		&b.CoverImage,
		&b.Price,
		&b.Published,
		&b.AuthorID,
		&b.CreatedAt,
		&b.UpdatedAt,
		&authorID,
		&authorUsername,
		&authorPseudonym,
	)
	if err != nil {
		return nil, err
	}

	if authorID != nil {
		b.Author = &book.Author{
			ID:        *authorID,
			Username:  *authorUsername,
			Pseudonym: *authorPseudonym,
		}
	}

	return &b, nil
}
