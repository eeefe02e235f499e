package auth

import (
	"context"
	"testing"
	"time"

	"github.com/mbriand/railgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	svc, err := NewTestJWTService()
	require.NoError(t, err)

	token, err := svc.GenerateToken(context.Background(), 42, domain.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Parallel()

	svc, err := NewTestJWTService()
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty string", ""},
		{"not a jwt", "definitely-not-a-jwt"},
		{"truncated", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.ValidateToken(context.Background(), tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	t.Parallel()

	svc, err := NewTestJWTService()
	require.NoError(t, err)

	otherCfg := DefaultJWTConfig()
	otherCfg.JWTSecret = "another-secret-that-is-also-32-chars!!"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := other.GenerateToken(context.Background(), 7, domain.RoleUser)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	t.Parallel()

	svc, err := NewTestJWTService()
	require.NoError(t, err)

	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)

	// Issue the token in the past, beyond both the lifetime and the
	// allowed clock skew.
	issuedAt := time.Now().Add(-impl.tokenLifetime - impl.clockSkew - time.Hour)
	impl.timeFunc = func() time.Time { return issuedAt }

	token, err := svc.GenerateToken(context.Background(), 7, domain.RoleUser)
	require.NoError(t, err)

	impl.timeFunc = time.Now
	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWithinClockSkew(t *testing.T) {
	t.Parallel()

	svc, err := NewTestJWTService()
	require.NoError(t, err)

	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)

	// Expired, but by less than the skew allowance.
	issuedAt := time.Now().Add(-impl.tokenLifetime - time.Minute)
	impl.timeFunc = func() time.Time { return issuedAt }

	token, err := svc.GenerateToken(context.Background(), 7, domain.RoleUser)
	require.NoError(t, err)

	impl.timeFunc = time.Now
	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestValidateTokenRejectsUnknownRole(t *testing.T) {
	t.Parallel()

	svc, err := NewTestJWTService()
	require.NoError(t, err)

	token, err := svc.GenerateToken(context.Background(), 7, domain.Role("superuser"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	cfg := DefaultJWTConfig()
	cfg.JWTSecret = "too-short"
	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(4)
	verifier := NewBcryptVerifier()

	hashed, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hashed)

	assert.NoError(t, verifier.Compare(hashed, "correct horse battery staple"))
	assert.Error(t, verifier.Compare(hashed, "wrong password"))
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(99)
	hashed, err := hasher.Hash("pw")
	require.NoError(t, err)
	assert.NotEmpty(t, hashed)
}
