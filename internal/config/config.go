// Package config provides configuration loading and validation for the intake service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// BackendConfig holds the location of the external persistence backend.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewBackendConfig creates backend configuration from environment variables.
// It reads BACKEND_BASE_URL (required) and BACKEND_TIMEOUT_SECONDS (default: 30).
func NewBackendConfig() (*BackendConfig, error) {
	baseURL := os.Getenv("BACKEND_BASE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required but not set")
	}

	timeoutStr := os.Getenv("BACKEND_TIMEOUT_SECONDS")
	if timeoutStr == "" {
		timeoutStr = "30"
	}
	timeoutSecs, err := strconv.Atoi(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT_SECONDS: %v", err)
	}
	if timeoutSecs < 1 {
		return nil, fmt.Errorf("BACKEND_TIMEOUT_SECONDS must be at least 1, got: %d", timeoutSecs)
	}

	return &BackendConfig{
		BaseURL: baseURL,
		Timeout: time.Duration(timeoutSecs) * time.Second,
	}, nil
}

// LocationConfig holds the source of the location hierarchy document.
// Exactly one of Path or URL must be set. ServiceURL optionally points
// at an upstream location service queried per request instead of the
// preloaded index.
type LocationConfig struct {
	Path       string
	URL        string
	ServiceURL string
}

// NewLocationConfig creates location-data configuration from environment
// variables. It reads LOCATION_DATA_PATH or LOCATION_DATA_URL, plus the
// optional LOCATION_SERVICE_URL.
func NewLocationConfig() (*LocationConfig, error) {
	cfg := &LocationConfig{
		Path:       os.Getenv("LOCATION_DATA_PATH"),
		URL:        os.Getenv("LOCATION_DATA_URL"),
		ServiceURL: os.Getenv("LOCATION_SERVICE_URL"),
	}

	if cfg.Path == "" && cfg.URL == "" {
		return nil, fmt.Errorf("one of LOCATION_DATA_PATH or LOCATION_DATA_URL is required")
	}
	if cfg.Path != "" && cfg.URL != "" {
		return nil, fmt.Errorf("LOCATION_DATA_PATH and LOCATION_DATA_URL are mutually exclusive")
	}

	return cfg, nil
}

// RedisConfig holds connection settings for the OTP code store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisConfig creates Redis configuration from environment variables.
// It reads REDIS_ADDR (default: localhost:6379), REDIS_PASSWORD and REDIS_DB.
func NewRedisConfig() (*RedisConfig, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	dbStr := os.Getenv("REDIS_DB")
	if dbStr == "" {
		dbStr = "0"
	}
	db, err := strconv.Atoi(dbStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %v", err)
	}

	return &RedisConfig{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	}, nil
}

// MailConfig holds settings for the OTP email sender.
type MailConfig struct {
	AWSRegion string
	Sender    string
}

// NewMailConfig creates mail configuration from environment variables.
// It reads AWS_REGION (default: ap-south-1) and OTP_SENDER_EMAIL (required).
func NewMailConfig() (*MailConfig, error) {
	sender := os.Getenv("OTP_SENDER_EMAIL")
	if sender == "" {
		return nil, fmt.Errorf("OTP_SENDER_EMAIL is required but not set")
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "ap-south-1"
	}

	return &MailConfig{AWSRegion: region, Sender: sender}, nil
}
