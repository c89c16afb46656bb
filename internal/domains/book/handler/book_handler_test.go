package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wookie-books-backend/internal/domains/book"
	"wookie-books-backend/internal/shared/middleware"
	"wookie-books-backend/internal/shared/response"
)

// fakeService records how the handler dispatched a request. Each
// method returns the configured error, or an empty success otherwise.
type fakeService struct {
	err error

	listAllCalled    bool
	listAllSearch    string
	listFilteredWith *book.Filter
	unpublishedID    uuid.UUID
}

func (s *fakeService) Create(_ context.Context, actorID uuid.UUID, req book.CreateBookRequest) (*book.Book, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &book.Book{ID: uuid.New(), Title: req.Title, AuthorID: actorID, Published: true}, nil
}

func (s *fakeService) Get(_ context.Context, id uuid.UUID) (*book.Book, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &book.Book{ID: id, Title: "found"}, nil
}

func (s *fakeService) ListAll(_ context.Context, search string) ([]book.Book, error) {
	s.listAllCalled = true
	s.listAllSearch = search
	return []book.Book{}, s.err
}

func (s *fakeService) ListFiltered(_ context.Context, filter book.Filter) ([]book.Book, error) {
	s.listFilteredWith = &filter
	return []book.Book{}, s.err
}

func (s *fakeService) Update(_ context.Context, _, id uuid.UUID, _ book.UpdateBookRequest) (*book.Book, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &book.Book{ID: id}, nil
}

func (s *fakeService) Unpublish(_ context.Context, _, id uuid.UUID) (*book.Book, error) {
	s.unpublishedID = id
	if s.err != nil {
		return nil, s.err
	}
	return &book.Book{ID: id, Published: false}, nil
}

func (s *fakeService) UploadCover(_ context.Context, _, id uuid.UUID, _ []byte, _ string) (*book.Book, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &book.Book{ID: id}, nil
}

// newTestRouter wires the handler the same way the real router does,
// with a stub auth layer that injects the given user id.
func newTestRouter(svc book.Service, actorID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookHandler(svc)

	r := gin.New()
	r.GET("/books", h.List)
	r.GET("/books/:id", h.Get)

	authed := r.Group("")
	if actorID != uuid.Nil {
		authed.Use(func(c *gin.Context) {
			c.Set(middleware.ContextUserIDKey, actorID)
		})
	}
	authed.POST("/books", h.Create)
	authed.PATCH("/books/:id", h.Update)
	authed.DELETE("/books/:id", h.Unpublish)

	return r
}

func doRequest(router *gin.Engine, method, target string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return body.Error.Code
}

// ========================================
// PATH PARAMETER VALIDATION
// ========================================

func TestGetRejectsBadID(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"not a uuid", "42"},
		{"garbage", "not-a-uuid"},
		{"nil uuid", uuid.Nil.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeService{}, uuid.Nil)
			rec := doRequest(router, http.MethodGet, "/books/"+tt.id, nil)

			// Malformed ids are a validation failure, never a 404.
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
		})
	}
}

func TestGetMissingBook(t *testing.T) {
	router := newTestRouter(&fakeService{err: book.ErrBookNotFound}, uuid.Nil)
	rec := doRequest(router, http.MethodGet, "/books/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

// ========================================
// LISTING DISPATCH
// ========================================

func TestListSimplePath(t *testing.T) {
	t.Run("no parameters", func(t *testing.T) {
		svc := &fakeService{}
		router := newTestRouter(svc, uuid.Nil)
		rec := doRequest(router, http.MethodGet, "/books", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, svc.listAllCalled)
		assert.Empty(t, svc.listAllSearch)
		assert.Nil(t, svc.listFilteredWith)
	})

	t.Run("search term", func(t *testing.T) {
		svc := &fakeService{}
		router := newTestRouter(svc, uuid.Nil)
		rec := doRequest(router, http.MethodGet, "/books?search=Hyperdrive", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, svc.listAllCalled)
		assert.Equal(t, "Hyperdrive", svc.listAllSearch)
	})
}

func TestListFilteredPath(t *testing.T) {
	t.Run("title filter", func(t *testing.T) {
		svc := &fakeService{}
		router := newTestRouter(svc, uuid.Nil)
		rec := doRequest(router, http.MethodGet, "/books?title=Guide", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, svc.listAllCalled)
		require.NotNil(t, svc.listFilteredWith)
		require.NotNil(t, svc.listFilteredWith.Title)
		assert.Equal(t, "Guide", *svc.listFilteredWith.Title)
	})

	t.Run("isPublished literal true", func(t *testing.T) {
		svc := &fakeService{}
		router := newTestRouter(svc, uuid.Nil)
		doRequest(router, http.MethodGet, "/books?isPublished=true", nil)

		require.NotNil(t, svc.listFilteredWith)
		require.NotNil(t, svc.listFilteredWith.Published)
		assert.True(t, *svc.listFilteredWith.Published)
	})

	t.Run("isPublished anything else means false", func(t *testing.T) {
		for _, val := range []string{"false", "TRUE", "1", "yes", ""} {
			svc := &fakeService{}
			router := newTestRouter(svc, uuid.Nil)
			doRequest(router, http.MethodGet, "/books?isPublished="+val, nil)

			require.NotNil(t, svc.listFilteredWith, "value %q", val)
			require.NotNil(t, svc.listFilteredWith.Published, "value %q", val)
			assert.False(t, *svc.listFilteredWith.Published, "value %q", val)
		}
	})

	t.Run("price window needs both bounds", func(t *testing.T) {
		svc := &fakeService{}
		router := newTestRouter(svc, uuid.Nil)
		rec := doRequest(router, http.MethodGet, "/books?minPrice=10", nil)

		// A lone bound still selects the filtered path but no window.
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.listFilteredWith)
		assert.Nil(t, svc.listFilteredWith.MinPrice)
		assert.Nil(t, svc.listFilteredWith.MaxPrice)
	})

	t.Run("both bounds present", func(t *testing.T) {
		svc := &fakeService{}
		router := newTestRouter(svc, uuid.Nil)
		rec := doRequest(router, http.MethodGet, "/books?minPrice=10&maxPrice=50.5", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.listFilteredWith)
		require.True(t, svc.listFilteredWith.HasPriceRange())
		assert.True(t, svc.listFilteredWith.MinPrice.Equal(decimal.NewFromInt(10)))
		assert.True(t, svc.listFilteredWith.MaxPrice.Equal(decimal.RequireFromString("50.5")))
	})

	t.Run("unparsable bound", func(t *testing.T) {
		svc := &fakeService{}
		router := newTestRouter(svc, uuid.Nil)
		rec := doRequest(router, http.MethodGet, "/books?minPrice=cheap&maxPrice=50", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
	})
}

// ========================================
// MUTATION ERROR MAPPING
// ========================================

func TestCreateWithoutAuth(t *testing.T) {
	router := newTestRouter(&fakeService{}, uuid.Nil)
	rec := doRequest(router, http.MethodPost, "/books", gin.H{"title": "X", "price": "10"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, rec))
}

func TestCreateForbiddenAuthor(t *testing.T) {
	router := newTestRouter(&fakeService{err: book.ErrAuthorForbidden}, uuid.New())
	rec := doRequest(router, http.MethodPost, "/books", gin.H{"title": "X", "price": "10"})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, rec))
}

func TestUpdateByNonOwner(t *testing.T) {
	router := newTestRouter(&fakeService{err: book.ErrNotBookOwner}, uuid.New())
	rec := doRequest(router, http.MethodPatch, "/books/"+uuid.NewString(), gin.H{"title": "X"})

	// Same transport status as a missing token, distinct code.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "NOT_OWNER", errorCode(t, rec))
}

func TestUnpublishReturnsBook(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc, uuid.New())
	id := uuid.New()
	rec := doRequest(router, http.MethodDelete, "/books/"+id.String(), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, svc.unpublishedID)

	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
}
