package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mbriand/railgo/internal/domain"
	"github.com/mbriand/railgo/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestStack(t *testing.T) (*AuthMiddleware, auth.JWTService) {
	t.Helper()
	svc, err := auth.NewTestJWTService()
	require.NoError(t, err)
	return NewAuthMiddleware(svc), svc
}

func TestAuthenticatePassesClaimsToHandler(t *testing.T) {
	t.Parallel()

	mw, svc := newAuthTestStack(t)
	token, err := svc.GenerateToken(context.Background(), 42, domain.RoleAdmin)
	require.NoError(t, err)

	var gotID int64
	var gotRole domain.Role
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r)
		require.True(t, ok)
		role, ok := GetRole(r)
		require.True(t, ok)
		gotID, gotRole = id, role
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/stations", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), gotID)
	assert.Equal(t, domain.RoleAdmin, gotRole)
}

func TestAuthenticateUniformRejection(t *testing.T) {
	t.Parallel()

	mw, _ := newAuthTestStack(t)

	otherCfg := auth.DefaultJWTConfig()
	otherCfg.JWTSecret = "a-different-32-character-secret-here!"
	otherSvc, err := auth.NewJWTService(otherCfg)
	require.NoError(t, err)
	foreignToken, err := otherSvc.GenerateToken(context.Background(), 1, domain.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", "Token abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong signing key", "Bearer " + foreignToken},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run for rejected requests")
			}))

			r := httptest.NewRequest(http.MethodGet, "/stations", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Requête non autorisée.")
		})
	}
}
