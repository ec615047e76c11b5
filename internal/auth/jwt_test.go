package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(1, "alice@test.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, uint(1), claims.UserID)
	require.Equal(t, "alice@test.com", claims.Email)
}

func TestValidateToken_Invalid(t *testing.T) {
	_, err := ValidateToken("invalid.token")
	require.Error(t, err)
}

func TestGenerateToken_SignsWithRuntimeSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-set-after-startup")

	token, err := GenerateToken(1, "alice@test.com")
	require.NoError(t, err)

	// The signature must verify against the secret present in the
	// environment at signing time, not any compiled-in default.
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("secret-set-after-startup"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateToken(1, "alice@test.com")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "rotated-secret")
	_, err = ValidateToken(token)
	require.Error(t, err)
}
