package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"wookie-books-backend/internal/domains/user"
	"wookie-books-backend/internal/shared/middleware"
	"wookie-books-backend/internal/shared/response"
	"wookie-books-backend/pkg/logger"
)

// UserHandler translates HTTP requests into user.Service calls.
// Stateless; only holds dependencies.
type UserHandler struct {
	service user.Service
}

// NewUserHandler creates the handler.
func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register handles POST /users.
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if !h.bind(c, &req) {
		return
	}

	userDTO, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/users/"+userDTO.ID.String())
	response.Success(c, http.StatusCreated, userDTO)
}

// Login handles POST /auth/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if !h.bind(c, &req) {
		return
	}

	loginResp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, loginResp)
}

// ========================================
// PROFILE ENDPOINTS (protected)
// ========================================

// GetProfile handles GET /users/me.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthenticated(c, "missing authentication")
		return
	}

	userDTO, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, userDTO)
}

// UpdateProfile handles PATCH /users/me.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthenticated(c, "missing authentication")
		return
	}

	var req user.UpdateProfileRequest
	if !h.bind(c, &req) {
		return
	}

	userDTO, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, userDTO)
}

// DeleteAccount handles DELETE /users/me.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthenticated(c, "missing authentication")
		return
	}

	if err := h.service.DeleteAccount(c.Request.Context(), userID); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ========================================
// HELPERS
// ========================================

func (h *UserHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "invalid request body")
		return false
	}
	return true
}

// handleError maps domain errors onto the response taxonomy.
// Anything unrecognized becomes a generic 500; detail stays in the logs.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationError(c, "validation failed", verrs)

	case errors.Is(err, user.ErrInvalidCredentials):
		response.Unauthenticated(c, err.Error())

	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, err.Error())

	case errors.Is(err, user.ErrUsernameTaken):
		response.Conflict(c, err.Error())

	default:
		logger.Error("user handler internal error", err)
		response.InternalServerError(c)
	}
}
