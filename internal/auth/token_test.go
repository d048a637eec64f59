package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iot-kit/sensor-gateway/internal/domain"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.GenerateToken("user1", domain.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user1", claims.Subject)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)

	claim := claims.Claim()
	assert.Equal(t, domain.Claim{Subject: "user1", Role: domain.RoleAdmin}, claim)
}

func TestTokenManagerDistinctTokens(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	first, _, err := tm.GenerateToken("user1", domain.RoleAdmin)
	require.NoError(t, err)
	second, _, err := tm.GenerateToken("user1", domain.RoleAdmin)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenManagerRejectsForeignSignature(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	other := NewTokenManager("other-secret", 60)

	token, _, err := other.GenerateToken("user1", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenManagerRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role: domain.RoleOwner,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user2",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	})
	tokenStr, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tm.ParseToken(tokenStr)
	assert.Error(t, err)
}

func TestTokenManagerRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	_, err := tm.ParseToken("not-a-jwt")
	assert.Error(t, err)
}
