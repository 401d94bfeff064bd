// Package otp implements the email verification sub-flow: code
// generation and delivery, hashed storage with TTL eviction, and the
// verification token issued on success.
package otp

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates no code is stored for the email, either because
// none was sent or because it expired.
var ErrNotFound = errors.New("otp code not found")

// Store holds one bcrypt-hashed code per email with TTL eviction. The
// store is owned and injected explicitly; expiry is the store's own
// responsibility, never a side effect of a request.
type Store interface {
	Set(ctx context.Context, email, hash string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
	Close() error
}
