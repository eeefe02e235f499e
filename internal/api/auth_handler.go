package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mbriand/railgo/internal/api/shared"
	"github.com/mbriand/railgo/internal/domain"
	"github.com/mbriand/railgo/internal/service/auth"
	"github.com/mbriand/railgo/internal/store"
)

// badCredentialsMessage is shared by every login failure so that unknown
// email and wrong password are indistinguishable.
const badCredentialsMessage = "Utilisateur ou mot de passe incorrect."

// AuthHandler handles registration and login.
type AuthHandler struct {
	userStore        store.UserStore
	sequences        store.SequenceStore
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	logger           *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	sequences store.SequenceStore,
	jwtService auth.JWTService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		userStore:        userStore,
		sequences:        sequences,
		jwtService:       jwtService,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
		logger:           logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /users/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}

	id, err := h.sequences.Next(r.Context(), store.UserSequence)
	if err != nil {
		HandleAPIError(w, r, err, internalErrorMessage)
		return
	}

	user, err := domain.NewUser(id, req.Username, req.Email, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}

	hashed, err := h.passwordHasher.Hash(req.Password)
	if err != nil {
		HandleAPIError(w, r, err, internalErrorMessage)
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			shared.RespondWithError(w, r, http.StatusBadRequest, "Utilisateur déjà existant.")
		case errors.Is(err, store.ErrEmailExists):
			shared.RespondWithError(w, r, http.StatusBadRequest, "Email déjà existant.")
		default:
			HandleAPIError(w, r, err, internalErrorMessage)
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, UserResponse{
		Message: "Utilisateur créé avec succès.",
		User:    user,
	})
}

// Login handles POST /users/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, badCredentialsMessage)
			return
		}
		HandleAPIError(w, r, err, internalErrorMessage)
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, badCredentialsMessage)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID, user.Role)
	if err != nil {
		h.logger.Error("failed to generate token", "error", err, "user_id", user.ID)
		HandleAPIError(w, r, err, internalErrorMessage)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Message: "Connexion réussie.",
		Token:   token,
		User:    user,
	})
}
