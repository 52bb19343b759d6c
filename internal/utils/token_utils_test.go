package utils

import (
	"testing"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, expiresAt, err := GenerateJWT("jefa", domain.RoleOwner, "secret", time.Hour, "shop-ledger")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "jefa", claims.Subject)
	assert.Equal(t, domain.RoleOwner, claims.Role)
	assert.Equal(t, "shop-ledger", claims.Issuer)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	token, _, err := GenerateJWT("caja1", domain.RoleEmployee, "secret", time.Hour, "shop-ledger")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)

	expired, _, err := GenerateJWT("caja1", domain.RoleEmployee, "secret", -time.Minute, "shop-ledger")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = ParseAndValidateJWT("not-a-token", "secret")
	assert.Error(t, err)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
