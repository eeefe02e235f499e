package api

import (
	"errors"
	"net/http"

	"github.com/mbriand/railgo/internal/api/shared"
	"github.com/mbriand/railgo/internal/domain"
	"github.com/mbriand/railgo/internal/service/auth"
	"github.com/mbriand/railgo/internal/store"
)

// internalErrorMessage is the only thing a client ever sees for a 5xx.
const internalErrorMessage = "Une erreur est survenue."

// unauthorizedMessage mirrors the auth middleware's uniform rejection body,
// used when a handler finds no authenticated caller in the context.
const unauthorizedMessage = "Requête non autorisée."

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict-style errors surface as 400 to match the historical API
	case errors.Is(err, store.ErrUsernameExists),
		errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrAlreadyValidated):
		return http.StatusBadRequest

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message based on the
// error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return internalErrorMessage
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Requête non autorisée."

	// Authorization errors
	case errors.Is(err, domain.ErrUnauthorized):
		return "Accès refusé."

	// Not found errors, most specific first
	case errors.Is(err, store.ErrUserNotFound):
		return "Utilisateur non trouvé"
	case errors.Is(err, store.ErrStationNotFound):
		return "Gare inconnue."
	case errors.Is(err, store.ErrTrainNotFound):
		return "Train non trouvé"
	case errors.Is(err, store.ErrTicketNotFound):
		return "Billet inconnu."
	case errors.Is(err, store.ErrNotFound):
		return "Ressource introuvable."

	// Conflict errors
	case errors.Is(err, store.ErrUsernameExists):
		return "Utilisateur déjà existant."
	case errors.Is(err, store.ErrEmailExists):
		return "Email déjà existant."
	case errors.Is(err, store.ErrAlreadyValidated):
		return "Billet déjà validé"

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return "Requête invalide."

	default:
		return internalErrorMessage
	}
}

// HandleAPIError writes the response for a failed operation: the status from
// MapErrorToStatusCode and either the given message or the safe default for
// the error kind. The raw error only ever reaches the logs.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
