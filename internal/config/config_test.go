package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadJWTExpire(t *testing.T) {
	t.Setenv("JWT_EXPIRE_DAYS", "7")
	cfg := Load()
	require.Equal(t, 7*24*time.Hour, cfg.JWTExpire)
}

func TestLoadJWTExpireDefault(t *testing.T) {
	t.Setenv("JWT_EXPIRE_DAYS", "")
	cfg := Load()
	require.Equal(t, 30*24*time.Hour, cfg.JWTExpire)
}

func TestLoadJWTExpireInvalid(t *testing.T) {
	for _, value := range []string{"zero", "-1", "0"} {
		t.Setenv("JWT_EXPIRE_DAYS", value)
		cfg := Load()
		require.Equal(t, 30*24*time.Hour, cfg.JWTExpire)
	}
}
