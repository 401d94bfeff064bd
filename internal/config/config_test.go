package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBackendConfig(t *testing.T) {
	t.Run("missing base URL", func(t *testing.T) {
		t.Setenv("BACKEND_BASE_URL", "")
		_, err := NewBackendConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BACKEND_BASE_URL")
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("BACKEND_BASE_URL", "http://backend.local/api")
		cfg, err := NewBackendConfig()
		require.NoError(t, err)
		assert.Equal(t, "http://backend.local/api", cfg.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
	})

	t.Run("invalid timeout", func(t *testing.T) {
		t.Setenv("BACKEND_BASE_URL", "http://backend.local/api")
		t.Setenv("BACKEND_TIMEOUT_SECONDS", "zero")
		_, err := NewBackendConfig()
		assert.Error(t, err)
	})
}

func TestNewLocationConfig(t *testing.T) {
	t.Run("neither source set", func(t *testing.T) {
		t.Setenv("LOCATION_DATA_PATH", "")
		t.Setenv("LOCATION_DATA_URL", "")
		_, err := NewLocationConfig()
		assert.Error(t, err)
	})

	t.Run("both sources set", func(t *testing.T) {
		t.Setenv("LOCATION_DATA_PATH", "/data/india.json")
		t.Setenv("LOCATION_DATA_URL", "http://cdn.local/india.json")
		_, err := NewLocationConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
	})

	t.Run("path only", func(t *testing.T) {
		t.Setenv("LOCATION_DATA_PATH", "/data/india.json")
		t.Setenv("LOCATION_DATA_URL", "")
		cfg, err := NewLocationConfig()
		require.NoError(t, err)
		assert.Equal(t, "/data/india.json", cfg.Path)
	})

	t.Run("optional service URL", func(t *testing.T) {
		t.Setenv("LOCATION_DATA_PATH", "/data/india.json")
		t.Setenv("LOCATION_DATA_URL", "")
		t.Setenv("LOCATION_SERVICE_URL", "https://india-location-hub.in/api")
		cfg, err := NewLocationConfig()
		require.NoError(t, err)
		assert.Equal(t, "https://india-location-hub.in/api", cfg.ServiceURL)
	})
}

func TestNewRedisConfig(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_DB", "")
	cfg, err := NewRedisConfig()
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.Addr)
	assert.Equal(t, 0, cfg.DB)
}

func TestNewTokenConfig(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := NewTokenConfig()
		assert.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("VERIFICATION_TOKEN_MINUTES", "")
		cfg, err := NewTokenConfig()
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.ExpirationMinutes)
	})

	t.Run("expiration below minimum", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("VERIFICATION_TOKEN_MINUTES", "0")
		_, err := NewTokenConfig()
		assert.Error(t, err)
	})
}

func TestNewOTPConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("OTP_BCRYPT_COST", "")
		t.Setenv("OTP_TTL_MINUTES", "")
		t.Setenv("OTP_CODE_LENGTH", "")
		cfg, err := NewOTPConfig()
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.BcryptCost)
		assert.Equal(t, 5*time.Minute, cfg.TTL)
		assert.Equal(t, 6, cfg.CodeLength)
	})

	t.Run("cost out of range", func(t *testing.T) {
		t.Setenv("OTP_BCRYPT_COST", "20")
		_, err := NewOTPConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")
	})

	t.Run("code length out of range", func(t *testing.T) {
		t.Setenv("OTP_BCRYPT_COST", "")
		t.Setenv("OTP_CODE_LENGTH", "12")
		_, err := NewOTPConfig()
		assert.Error(t, err)
	})
}
