package jwt

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	m := NewManager("test-secret")
	userID := uuid.New()

	token, err := m.GenerateToken(userID, "luke")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "luke", claims.Username)
	assert.Equal(t, userID.String(), claims.Subject)

	// Tokens are issued without expiry.
	assert.Nil(t, claims.ExpiresAt)

	sub, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, userID, sub)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a").GenerateToken(uuid.New(), "leia")
	require.NoError(t, err)

	_, err = NewManager("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenMalformed(t *testing.T) {
	m := NewManager("test-secret")

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.ValidateToken(tok)
		assert.Error(t, err, "token %q should not validate", tok)
	}
}
