package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mbriand/railgo/internal/api/shared"
	"github.com/mbriand/railgo/internal/domain"
	"github.com/mbriand/railgo/internal/service/auth"
	"github.com/mbriand/railgo/internal/service/authz"
	"github.com/mbriand/railgo/internal/store"
)

// UserHandler handles user account reads and mutations.
type UserHandler struct {
	userStore      store.UserStore
	passwordHasher auth.PasswordHasher
	logger         *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(
	userStore store.UserStore,
	passwordHasher auth.PasswordHasher,
	logger *slog.Logger,
) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userStore:      userStore,
		passwordHasher: passwordHasher,
		logger:         logger.With(slog.String("component", "user_handler")),
	}
}

// List handles GET /users. Admin only; supports equality filters on
// username and email.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
		return
	}
	if !authz.CanListUsers(actor) {
		shared.RespondWithError(w, r, http.StatusForbidden,
			"Vous n'êtes pas autorisé à accéder à cette ressource.")
		return
	}

	filter := store.UserFilter{
		Username: r.URL.Query().Get("username"),
		Email:    r.URL.Query().Get("email"),
	}
	users, err := h.userStore.List(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, internalErrorMessage)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// Get handles GET /users/{id}. Owner or admin.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if !authz.CanViewUser(actor, id) {
		shared.RespondWithError(w, r, http.StatusForbidden,
			"Vous n'êtes pas autorisé à accéder à cette ressource.")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Utilisateur inconnu")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Update handles PUT /users/{id}. Owner or admin; role changes admin only.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if !authz.CanUpdateUser(actor, id) {
		shared.RespondWithError(w, r, http.StatusForbidden,
			"Vous n'êtes pas autorisé à modifier cet utilisateur.")
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Utilisateur inconnu")
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hashed, err := h.passwordHasher.Hash(req.Password)
		if err != nil {
			HandleAPIError(w, r, err, internalErrorMessage)
			return
		}
		user.HashedPassword = hashed
	}
	if req.Role != "" {
		role := domain.Role(req.Role)
		if !authz.CanAssignRole(actor, role) {
			shared.RespondWithError(w, r, http.StatusForbidden,
				"Vous n'êtes pas autorisé à modifier cet utilisateur.")
			return
		}
		user.Role = role
	}

	if err := h.userStore.Update(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			shared.RespondWithError(w, r, http.StatusBadRequest, "Utilisateur déjà existant.")
		case errors.Is(err, store.ErrEmailExists):
			shared.RespondWithError(w, r, http.StatusBadRequest, "Email déjà existant.")
		default:
			HandleAPIError(w, r, err, "")
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{
		Message: "Utilisateur modifié",
		User:    user,
	})
}

// Delete handles DELETE /users/{id}. Strictly the account owner.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if !authz.CanDeleteUser(actor, id) {
		shared.RespondWithError(w, r, http.StatusForbidden,
			"Vous n'êtes pas autorisé à supprimer cet utilisateur.")
		return
	}

	if err := h.userStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Utilisateur supprimé avec succès.")
}
