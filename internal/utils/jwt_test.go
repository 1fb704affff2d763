package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTUtil_GenerateToken(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", time.Hour)

	tokenString, err := jwtUtil.GenerateToken("alice@example.com", "Alice")

	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := jwtUtil.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, "Alice", claims.Name)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTUtil_GenerateToken_DefaultTTL(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", 0)

	tokenString, err := jwtUtil.GenerateToken("alice@example.com", "Alice")
	require.NoError(t, err)

	claims, err := jwtUtil.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTUtil_ValidateToken_InvalidToken(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", time.Hour)

	_, err := jwtUtil.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTUtil_ValidateToken_ExpiredToken(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", time.Hour)
	jwtUtil.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tokenString, err := jwtUtil.GenerateToken("alice@example.com", "Alice")
	require.NoError(t, err)

	jwtUtil.now = time.Now
	_, err = jwtUtil.ValidateToken(tokenString)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestJWTUtil_ValidateToken_BeforeExpiry(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", time.Hour)
	issuedAt := time.Now()
	jwtUtil.now = func() time.Time { return issuedAt }

	tokenString, err := jwtUtil.GenerateToken("alice@example.com", "Alice")
	require.NoError(t, err)

	jwtUtil.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	claims, err := jwtUtil.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)

	jwtUtil.now = func() time.Time { return issuedAt.Add(61 * time.Minute) }
	_, err = jwtUtil.ValidateToken(tokenString)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTUtil_ValidateToken_WrongSecret(t *testing.T) {
	jwtUtil1 := NewJWTUtil("secret1", time.Hour)
	jwtUtil2 := NewJWTUtil("secret2", time.Hour)

	tokenString, _ := jwtUtil1.GenerateToken("alice@example.com", "Alice")

	_, err := jwtUtil2.ValidateToken(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTUtil_ValidateToken_MissingSubject(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", time.Hour)

	tokenString, err := jwtUtil.GenerateToken("", "Alice")
	require.NoError(t, err)

	_, err = jwtUtil.ValidateToken(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTUtil_ValidateToken_InvalidSigningMethod(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", time.Hour)
	// Create a token with a different signing method (HS384 instead of HS256)
	claims := &JWTClaims{
		Name: "Alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS384, claims)
	tokenString, _ := token.SignedString([]byte("secret"))

	_, err := jwtUtil.ValidateToken(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
