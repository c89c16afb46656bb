package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wookie-books-backend/internal/shared/response"
	"wookie-books-backend/pkg/jwt"
)

// ContextUserIDKey is where the auth middleware stores the caller's id.
const ContextUserIDKey = "userID"

// Auth guards protected routes. It extracts and verifies the bearer
// token and attaches the subject's user id to the request context.
// It deliberately does NOT hit the credential store: the subject may
// reference a user deleted after the token was issued, and downstream
// handlers must tolerate that.
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthenticated(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthenticated(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.ValidateToken(parts[1])
		if err != nil {
			response.Unauthenticated(c, "invalid token")
			c.Abort()
			return
		}

		userID, err := claims.SubjectID()
		if err != nil {
			response.Unauthenticated(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// UserID reads the authenticated user's id from the gin context.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
