package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule is the rate-limit policy for one endpoint. A trailing "/" in
// Path makes it a prefix rule.
type Rule struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds limiter-wide settings plus the per-endpoint rules.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Trusted         map[string]bool
	Blocked         map[string]bool
	Rules           []Rule
}

func defaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Trusted:         map[string]bool{},
		Blocked:         map[string]bool{},
		Rules:           DefaultRules(),
	}
}

// LoadConfig builds the limiter configuration from RATE_LIMIT_*
// environment variables, falling back to the intake defaults.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	cfg := defaultConfig()
	cfg.DefaultLimit = envInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = envDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = envDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Trusted = splitIPList(os.Getenv("RATE_LIMIT_TRUSTED"))
	cfg.Blocked = splitIPList(os.Getenv("RATE_LIMIT_BLOCKED"))
	return cfg
}

// DefaultRules returns the endpoint tiers for the intake API. OTP
// sending is the strictest tier since every request produces an email;
// submissions and uploads are moderate; location reads fire on every
// selector change and stay lenient. Health and metrics are exempted in
// the matcher.
func DefaultRules() []Rule {
	return []Rule{
		{Path: "/api/send-otp", Method: "POST", Limit: 5, Window: 5 * time.Minute, Burst: 2},
		{Path: "/api/verify-otp", Method: "POST", Limit: 15, Window: 5 * time.Minute, Burst: 5},

		{Path: "/api/resume", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/api/upload-photo", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},

		{Path: "/api/location/", Method: "GET", Limit: 300, Window: time.Minute, Burst: 60},
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitIPList(list string) map[string]bool {
	out := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			out[ip] = true
		}
	}
	return out
}
