package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kamyarmaaf/plan1/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTProvider_ValidToken(t *testing.T) {
	p := NewJWTProvider("secret", internal.NopLogger{})
	token := signToken(t, "secret", &Claims{
		UserID: "u42",
		Name:   "Jamie",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	user, err := p.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u42", user.ID)
	assert.Equal(t, "Jamie", user.Name)
}

func TestJWTProvider_WrongSecret(t *testing.T) {
	p := NewJWTProvider("secret", internal.NopLogger{})
	token := signToken(t, "other-secret", &Claims{UserID: "u42"})

	_, err := p.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTProvider_ExpiredToken(t *testing.T) {
	p := NewJWTProvider("secret", internal.NopLogger{})
	token := signToken(t, "secret", &Claims{
		UserID: "u42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := p.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTProvider_MissingUserID(t *testing.T) {
	p := NewJWTProvider("secret", internal.NopLogger{})
	token := signToken(t, "secret", &Claims{})

	_, err := p.ValidateToken(token)
	assert.Error(t, err)
}

func TestLocalProvider(t *testing.T) {
	p := NewLocalProvider("dev-token", internal.NopLogger{})

	user, err := p.ValidateToken("dev-token")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	_, err = p.ValidateToken("nope")
	assert.Error(t, err)
}
