package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"wookie-books-backend/internal/domains/book"
	"wookie-books-backend/internal/domains/user"
	"wookie-books-backend/internal/shared/middleware"
	"wookie-books-backend/internal/shared/response"
	"wookie-books-backend/pkg/logger"
)

// maxCoverSize bounds cover uploads to 5 MiB.
const maxCoverSize = 5 << 20

// BookHandler translates HTTP requests into book.Service calls.
type BookHandler struct {
	service book.Service
}

// NewBookHandler creates the handler.
func NewBookHandler(service book.Service) *BookHandler {
	return &BookHandler{service: service}
}

// ========================================
// PUBLIC READS
// ========================================

// List handles GET /books. With any structured filter present the
// request goes down the filtered path (substring matching, no
// published-only default); otherwise the simple path runs (published
// books, or exact title/description match on ?search=). The two paths
// behave differently on purpose.
func (h *BookHandler) List(c *gin.Context) {
	filter, hasFilters, ok := h.parseFilter(c)
	if !ok {
		return
	}

	var (
		books []book.Book
		err   error
	)
	if hasFilters {
		books, err = h.service.ListFiltered(c.Request.Context(), filter)
	} else {
		books, err = h.service.ListAll(c.Request.Context(), c.Query("search"))
	}
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, books)
}

// Get handles GET /books/:id.
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := h.bookID(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// ========================================
// PROTECTED MUTATIONS
// ========================================

// Create handles POST /books.
func (h *BookHandler) Create(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthenticated(c, "missing authentication")
		return
	}

	var req book.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/books/"+b.ID.String())
	response.Success(c, http.StatusCreated, b)
}

// Update handles PATCH /books/:id.
func (h *BookHandler) Update(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthenticated(c, "missing authentication")
		return
	}

	id, ok := h.bookID(c)
	if !ok {
		return
	}

	var req book.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	b, err := h.service.Update(c.Request.Context(), actorID, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// Unpublish handles DELETE /books/:id. Soft delete: the book is
// withdrawn from the public listing, the row stays.
func (h *BookHandler) Unpublish(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthenticated(c, "missing authentication")
		return
	}

	id, ok := h.bookID(c)
	if !ok {
		return
	}

	b, err := h.service.Unpublish(c.Request.Context(), actorID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// UploadCover handles POST /books/:id/cover (multipart, field "cover").
func (h *BookHandler) UploadCover(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthenticated(c, "missing authentication")
		return
	}

	id, ok := h.bookID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		response.BadRequest(c, "cover file is required")
		return
	}
	if fileHeader.Size > maxCoverSize {
		response.BadRequest(c, "cover file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot read cover file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "cannot read cover file")
		return
	}

	b, err := h.service.UploadCover(c.Request.Context(), actorID, id, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// ========================================
// HELPERS
// ========================================

// bookID parses the :id path parameter. A malformed or nil UUID is a
// validation failure, not a 404.
func (h *BookHandler) bookID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil || id == uuid.Nil {
		response.BadRequest(c, "invalid book id")
		return uuid.Nil, false
	}
	return id, true
}

// parseFilter reads the structured query parameters. Returns
// hasFilters=false when none are present, steering List to the simple
// path.
func (h *BookHandler) parseFilter(c *gin.Context) (book.Filter, bool, bool) {
	var filter book.Filter
	hasFilters := false

	if title, ok := c.GetQuery("title"); ok {
		filter.Title = &title
		hasFilters = true
	}

	if pseudonym, ok := c.GetQuery("authorPseudonym"); ok {
		filter.AuthorPseudonym = &pseudonym
		hasFilters = true
	}

	if published, ok := c.GetQuery("isPublished"); ok {
		// Only the literal "true" selects published rows; every other
		// value, "false" included, selects unpublished ones.
		val := published == "true"
		filter.Published = &val
		hasFilters = true
	}

	minStr, hasMin := c.GetQuery("minPrice")
	maxStr, hasMax := c.GetQuery("maxPrice")
	if hasMin || hasMax {
		hasFilters = true
	}
	// The window applies only when both bounds are present; a single
	// bound is ignored.
	if hasMin && hasMax {
		minPrice, err := decimal.NewFromString(minStr)
		if err != nil {
			response.BadRequest(c, "invalid minPrice")
			return filter, false, false
		}
		maxPrice, err := decimal.NewFromString(maxStr)
		if err != nil {
			response.BadRequest(c, "invalid maxPrice")
			return filter, false, false
		}
		filter.MinPrice = &minPrice
		filter.MaxPrice = &maxPrice
	}

	return filter, hasFilters, true
}

func (h *BookHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationError(c, "validation failed", verrs)

	case errors.Is(err, book.ErrUnsupportedCoverType):
		response.BadRequest(c, err.Error())

	case errors.Is(err, book.ErrNotBookOwner):
		response.NotOwner(c, err.Error())

	case errors.Is(err, book.ErrAuthorForbidden):
		response.Forbidden(c, err.Error())

	case errors.Is(err, book.ErrBookNotFound), errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, err.Error())

	default:
		logger.Error("book handler internal error", err)
		response.InternalServerError(c)
	}
}
