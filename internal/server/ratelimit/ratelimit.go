// Package ratelimit provides per-client token-bucket rate limiting for
// the intake API.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a single token bucket. Tokens refill continuously at a
// fixed per-second rate up to the burst capacity.
type bucket struct {
	mu       sync.Mutex
	capacity float64
	perSec   float64
	tokens   float64
	last     time.Time
}

func newBucket(capacity int, perSec float64) *bucket {
	return &bucket{
		capacity: float64(capacity),
		perSec:   perSec,
		tokens:   float64(capacity),
		last:     time.Now(),
	}
}

// take refills the bucket for elapsed time and consumes one token if
// available. It reports the post-consumption remaining count and the
// time at which the bucket is full again.
func (b *bucket) take() (ok bool, remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.last).Seconds() * b.perSec
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		ok = true
	}

	remaining = int(b.tokens)
	reset = now
	if b.tokens < b.capacity {
		deficit := b.capacity - b.tokens
		reset = now.Add(time.Duration(deficit / b.perSec * float64(time.Second)))
	}
	return ok, remaining, reset
}

// Info describes the rate-limit state reported back to the client in
// X-RateLimit-* headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter manages one bucket per client+endpoint+method combination.
type Limiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	lastSeen map[string]time.Time
	config   *Config
	janitor  *time.Ticker
	done     chan struct{}
}

// NewLimiter creates a limiter from the given configuration. A nil
// config falls back to the defaults of LoadConfig without the
// environment applied.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = defaultConfig()
	}

	l := &Limiter{
		buckets:  make(map[string]*bucket),
		lastSeen: make(map[string]time.Time),
		config:   config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.janitor = time.NewTicker(config.CleanupInterval)
		l.done = make(chan struct{})
		go l.sweep()
	}

	return l
}

// Allow reports whether a request from clientID to the given path and
// method may proceed, consuming a token if so.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Trusted[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blocked[clientID] {
		return false, Info{}
	}

	rule := Match(path, method, l.config.Rules)
	if rule == nil {
		rule = &Rule{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if rule.Limit <= 0 {
		// Unlimited endpoint.
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + path + ":" + method
	ok, remaining, reset := l.bucketFor(key, rule).take()

	info := Info{
		Allowed:   ok,
		Limit:     rule.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !ok {
		if retry := time.Until(reset); retry > 0 {
			info.RetryAfter = retry
		}
	}
	return ok, info
}

func (l *Limiter) bucketFor(key string, rule *Rule) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastSeen[key] = time.Now()
	if b, ok := l.buckets[key]; ok {
		return b
	}

	burst := rule.Burst
	if burst <= 0 {
		burst = rule.Limit
	}
	b := newBucket(burst, float64(rule.Limit)/rule.Window.Seconds())
	l.buckets[key] = b
	return b
}

// sweep drops buckets idle for over an hour.
func (l *Limiter) sweep() {
	for {
		select {
		case <-l.janitor.C:
			cutoff := time.Now().Add(-time.Hour)
			l.mu.Lock()
			for key, seen := range l.lastSeen {
				if seen.Before(cutoff) {
					delete(l.buckets, key)
					delete(l.lastSeen, key)
				}
			}
			l.mu.Unlock()
		case <-l.done:
			return
		}
	}
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.janitor != nil {
		l.janitor.Stop()
	}
	if l.done != nil {
		close(l.done)
	}
}
