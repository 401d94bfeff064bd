package otp

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rojgari/candidate-intake/internal/config"
)

// Claims represents verification token claims binding the verified
// email.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and validates the short-lived verification tokens
// handed out after a successful code check.
type TokenService struct {
	config *config.TokenConfig
}

// NewTokenService creates a token service with the given configuration.
func NewTokenService(cfg *config.TokenConfig) *TokenService {
	return &TokenService{config: cfg}
}

// Issue generates an HS256 token for the verified email.
func (s *TokenService) Issue(email string) (string, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.config.ExpirationMinutes) * time.Minute)

	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify validates a token and returns the email it binds.
func (s *TokenService) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("token is not valid")
	}
	if claims.Email == "" {
		return "", fmt.Errorf("token has no email claim")
	}
	return claims.Email, nil
}
