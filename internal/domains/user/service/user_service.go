package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"wookie-books-backend/internal/domains/user"
	"wookie-books-backend/internal/infrastructure/queue"
	"wookie-books-backend/pkg/jwt"
)

// bcrypt cost 12: balance between security and login latency.
const bcryptCost = 12

// userService implements user.Service.
type userService struct {
	repo       user.Repository
	jwtManager *jwt.Manager
	enqueuer   queue.Enqueuer
}

// NewUserService creates the service. Dependencies come in through the
// constructor; there is no global registry.
func NewUserService(repo user.Repository, jwtManager *jwt.Manager, enqueuer queue.Enqueuer) user.Service {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
		enqueuer:   enqueuer,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register creates a new account. The pseudonym defaults to the username.
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	newUser := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: string(passwordHash),
		Pseudonym:    req.Username,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		// ErrUsernameTaken passes through untouched for the handler.
		return nil, err
	}

	dto := newUser.ToDTO()
	return &dto, nil
}

// Login authenticates a username/password pair and issues a token.
// Unknown username and wrong password are indistinguishable to the
// caller; only unexpected store/signing failures surface differently.
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateToken(u.ID, u.Username)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &user.LoginResponse{AccessToken: accessToken}, nil
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

// UpdateProfile applies the supplied partial field set.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req user.UpdateProfileRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Pseudonym != nil {
		u.Pseudonym = *req.Pseudonym
	}
	if req.Password != nil {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(passwordHash)
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	// Cached books embed the author's username and pseudonym; drop them
	// when either changes so reads don't serve a stale author.
	if req.Username != nil || req.Pseudonym != nil {
		s.enqueuer.EnqueueCachePurge(ctx, "book:*")
	}

	dto := u.ToDTO()
	return &dto, nil
}

// DeleteAccount hard-deletes the user; the schema cascades onto the
// user's books. Cached entries are purged asynchronously.
func (s *userService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.enqueuer.EnqueueCachePurge(ctx, fmt.Sprintf("user:%s", id), "book:*")
	return nil
}
