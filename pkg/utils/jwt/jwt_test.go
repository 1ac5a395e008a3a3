package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghiblify_backend/pkg/utils/jwt"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := jwt.GenerateToken(42, "totoro@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwt.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "totoro@example.com", claims.Email)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestValidateToken_Garbage(t *testing.T) {
	claims, err := jwt.ValidateToken("not-a-token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := jwt.GenerateToken(7, "kiki@example.com")
	require.NoError(t, err)

	jwt.Init("a-completely-different-secret")
	defer jwt.Init("ghiblify-super-secret-key-2025")

	claims, err := jwt.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
