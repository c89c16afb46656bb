package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wookie-books-backend/internal/shared/response"
	"wookie-books-backend/pkg/jwt"
)

func authTestRouter(manager *jwt.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(manager), func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id.String()})
	})
	return r
}

func TestAuthRejectsBadHeaders(t *testing.T) {
	manager := jwt.NewManager("test-secret")
	router := authTestRouter(manager)

	otherSecretToken, err := jwt.NewManager("other-secret").GenerateToken(uuid.New(), "chewbacca")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", "some-token"},
		{"wrong scheme", "Basic some-token"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + otherSecretToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var body response.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, "UNAUTHENTICATED", body.Error.Code)
		})
	}
}

func TestAuthAcceptsValidToken(t *testing.T) {
	manager := jwt.NewManager("test-secret")
	router := authTestRouter(manager)

	userID := uuid.New()
	token, err := manager.GenerateToken(userID, "chewbacca")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body["user_id"])
}

// Tokens carry no expiry claim; a token minted long ago still verifies.
func TestAuthDoesNotExpireTokens(t *testing.T) {
	manager := jwt.NewManager("test-secret")

	claims, err := manager.ValidateToken(mustToken(t, manager))
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func mustToken(t *testing.T, manager *jwt.Manager) string {
	t.Helper()
	token, err := manager.GenerateToken(uuid.New(), "chewbacca")
	require.NoError(t, err)
	return token
}
