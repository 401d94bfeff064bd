// Package config provides configuration loading and validation for the intake service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// OTPConfig holds configuration for one-time code generation and storage.
type OTPConfig struct {
	BcryptCost int
	TTL        time.Duration
	CodeLength int
}

// NewOTPConfig creates OTP configuration from environment variables.
// It reads OTP_BCRYPT_COST (default: 10), OTP_TTL_MINUTES (default: 5)
// and OTP_CODE_LENGTH (default: 6).
func NewOTPConfig() (*OTPConfig, error) {
	costStr := os.Getenv("OTP_BCRYPT_COST")
	if costStr == "" {
		costStr = "10"
	}
	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP_BCRYPT_COST: %v", err)
	}

	ttlStr := os.Getenv("OTP_TTL_MINUTES")
	if ttlStr == "" {
		ttlStr = "5"
	}
	ttlMinutes, err := strconv.Atoi(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP_TTL_MINUTES: %v", err)
	}

	lengthStr := os.Getenv("OTP_CODE_LENGTH")
	if lengthStr == "" {
		lengthStr = "6"
	}
	length, err := strconv.Atoi(lengthStr)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP_CODE_LENGTH: %v", err)
	}

	config := &OTPConfig{
		BcryptCost: cost,
		TTL:        time.Duration(ttlMinutes) * time.Minute,
		CodeLength: length,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *OTPConfig) normalize() error {
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 4-14)", c.BcryptCost)
	}
	if c.TTL < time.Minute {
		return fmt.Errorf("OTP TTL too short: %s (must be at least 1m)", c.TTL)
	}
	if c.CodeLength < 4 || c.CodeLength > 8 {
		return fmt.Errorf("OTP code length out of range: %d (must be 4-8)", c.CodeLength)
	}
	return nil
}
