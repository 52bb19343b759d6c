package config

import (
	"testing"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAuthUsers(t *testing.T) {
	users, err := ParseAuthUsers("caja1:employee:$2a$10$abc, jefa:OWNER:$2a$10$def ,")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "caja1", users[0].Username)
	assert.Equal(t, domain.RoleEmployee, users[0].Role)
	assert.Equal(t, "$2a$10$abc", users[0].PasswordHash)
	assert.Equal(t, domain.RoleOwner, users[1].Role)

	_, err = ParseAuthUsers("broken")
	assert.Error(t, err)
	_, err = ParseAuthUsers("a:ADMIN:hash")
	assert.Error(t, err)
	_, err = ParseAuthUsers("a:DEV:h1,a:DEV:h2")
	assert.Error(t, err)

	users, err = ParseAuthUsers("")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("LEDGER_VOID_POLICY", "Forensic")
	t.Setenv("SHOP_TIMEZONE", "America/Argentina/Buenos_Aires")
	t.Setenv("RESTRICTED_HISTORY_LIMIT", "5")
	t.Setenv("JWT_EXPIRY_DURATION", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("AUTH_USERS", "dev:DEV:$2a$10$x")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, domain.VoidPolicyForensic, cfg.VoidPolicy)
	assert.Equal(t, "America/Argentina/Buenos_Aires", cfg.ShopLocation.String())
	assert.Equal(t, 5, cfg.RestrictedHistoryLimit)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Len(t, cfg.Users, 1)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("LEDGER_VOID_POLICY", "partial")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("LEDGER_VOID_POLICY", "full")
	t.Setenv("SHOP_TIMEZONE", "Mars/Olympus")
	_, err = LoadConfig()
	assert.Error(t, err)

	t.Setenv("SHOP_TIMEZONE", "UTC")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("JWT_SECRET", "")
	_, err = LoadConfig()
	assert.Error(t, err)
}
