package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mbriand/railgo/internal/api/shared"
	"github.com/mbriand/railgo/internal/domain"
	"github.com/mbriand/railgo/internal/service/authz"
)

// getActor extracts the authenticated caller from the request context as an
// authorization actor. The auth middleware is responsible for putting the
// claims there; a missing actor means the route was wired without it.
func getActor(r *http.Request) (authz.Actor, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(int64)
	if !ok || userID <= 0 {
		return authz.Actor{}, false
	}
	role, ok := r.Context().Value(shared.RoleContextKey).(domain.Role)
	if !ok {
		return authz.Actor{}, false
	}
	return authz.Actor{UserID: userID, Role: role}, true
}

// getPathID extracts a positive integer identifier from the URL path.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidID, paramName)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidID, paramName)
	}
	return id, nil
}

// getPathUUID extracts a UUID identifier from the URL path.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", domain.ErrInvalidID, paramName)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s has invalid format", domain.ErrInvalidID, paramName)
	}
	return id, nil
}
