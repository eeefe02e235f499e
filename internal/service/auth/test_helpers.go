package auth

import (
	"context"
	"fmt"

	"github.com/mbriand/railgo/internal/config"
	"github.com/mbriand/railgo/internal/domain"
)

// DefaultJWTConfig returns a standard configuration for JWT authentication
// suitable for testing. This is the single source of truth for JWT test config.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long", // At least 32 chars
		TokenLifetimeMinutes: 60,
		BcryptCost:           4,
	}
}

// NewTestJWTService creates a JWT service with default configuration for testing.
func NewTestJWTService() (JWTService, error) {
	return NewJWTService(DefaultJWTConfig())
}

// GenerateAuthHeaderForTesting creates an Authorization header value with
// Bearer prefix containing a valid token for the given user and role.
func GenerateAuthHeaderForTesting(userID int64, role domain.Role) (string, error) {
	svc, err := NewTestJWTService()
	if err != nil {
		return "", fmt.Errorf("failed to create JWT service: %w", err)
	}
	token, err := svc.GenerateToken(context.Background(), userID, role)
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}
