package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rojgari/candidate-intake/internal/config"
	"github.com/rojgari/candidate-intake/internal/logging"
)

// ErrCodeMismatch indicates the presented code does not match the
// stored one. The stored code survives for another attempt.
var ErrCodeMismatch = errors.New("otp code mismatch")

// Service generates, stores and verifies one-time codes. One code per
// email; re-sending overwrites.
type Service struct {
	store  Store
	mailer Mailer
	tokens *TokenService
	cfg    *config.OTPConfig
	log    logging.Logger
}

// NewService wires the code store, the mailer and the token issuer.
func NewService(store Store, mailer Mailer, tokens *TokenService, cfg *config.OTPConfig, log logging.Logger) *Service {
	return &Service{store: store, mailer: mailer, tokens: tokens, cfg: cfg, log: log}
}

// Send generates a fresh code, stores its bcrypt hash with the
// configured TTL and emails the code. On delivery failure the stored
// code is removed so a stale code cannot verify later.
func (s *Service) Send(ctx context.Context, email string) error {
	code, err := generateCode(s.cfg.CodeLength)
	if err != nil {
		return fmt.Errorf("failed to generate otp code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash otp code: %w", err)
	}

	if err := s.store.Set(ctx, email, string(hash), s.cfg.TTL); err != nil {
		return err
	}

	if err := s.mailer.SendCode(ctx, email, code); err != nil {
		if delErr := s.store.Delete(ctx, email); delErr != nil {
			s.log.Warn("failed to remove undelivered otp code", zap.Error(delErr))
		}
		return err
	}

	s.log.Info("otp code sent", zap.String("email", email))
	return nil
}

// Verify compares the presented code against the stored hash. Success
// consumes the code and returns a verification token binding the email.
// A mismatch leaves the code in place; an expired or never-sent code
// yields ErrNotFound.
func (s *Service) Verify(ctx context.Context, email, code string) (string, error) {
	hash, err := s.store.Get(ctx, email)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		return "", ErrCodeMismatch
	}

	if err := s.store.Delete(ctx, email); err != nil {
		s.log.Warn("failed to consume otp code", zap.Error(err))
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return "", err
	}

	s.log.Info("otp verified", zap.String("email", email))
	return token, nil
}

// generateCode produces a uniformly random zero-padded numeric code.
func generateCode(length int) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
