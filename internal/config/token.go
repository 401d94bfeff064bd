// Package config provides configuration loading and validation for the intake service.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// TokenConfig holds configuration for email verification token generation
// and validation.
type TokenConfig struct {
	Secret            string
	ExpirationMinutes int
}

// NewTokenConfig creates a new token configuration from environment variables.
// It reads JWT_SECRET (required) and VERIFICATION_TOKEN_MINUTES (default: 30).
func NewTokenConfig() (*TokenConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	expirationStr := os.Getenv("VERIFICATION_TOKEN_MINUTES")
	if expirationStr == "" {
		expirationStr = "30"
	}

	expirationMinutes, err := strconv.Atoi(expirationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid VERIFICATION_TOKEN_MINUTES: %v", err)
	}

	config := &TokenConfig{
		Secret:            secret,
		ExpirationMinutes: expirationMinutes,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *TokenConfig) normalize() error {
	if c.ExpirationMinutes < 1 {
		return fmt.Errorf("VERIFICATION_TOKEN_MINUTES must be at least 1, got: %d", c.ExpirationMinutes)
	}
	return nil
}
