package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mbriand/railgo/internal/api/shared"
	"github.com/mbriand/railgo/internal/domain"
	"github.com/mbriand/railgo/internal/service/authz"
	"github.com/mbriand/railgo/internal/store"
)

// TicketHandler handles ticket creation, validation, and lookups.
type TicketHandler struct {
	ticketStore store.TicketStore
	userStore   store.UserStore
	trainStore  store.TrainStore
	timeFunc    func() time.Time // Injectable for testing
	logger      *slog.Logger
}

// NewTicketHandler creates a new TicketHandler with the given dependencies.
func NewTicketHandler(
	ticketStore store.TicketStore,
	userStore store.UserStore,
	trainStore store.TrainStore,
	logger *slog.Logger,
) *TicketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TicketHandler{
		ticketStore: ticketStore,
		userStore:   userStore,
		trainStore:  trainStore,
		timeFunc:    time.Now,
		logger:      logger.With(slog.String("component", "ticket_handler")),
	}
}

// resolveTicketRefs checks that the caller and the requested train both
// exist, writing the error response itself when one is missing.
func (h *TicketHandler) resolveTicketRefs(
	w http.ResponseWriter,
	r *http.Request,
	userID, trainID int64,
) bool {
	if _, err := h.userStore.GetByID(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Utilisateur non trouvé")
			return false
		}
		HandleAPIError(w, r, err, internalErrorMessage)
		return false
	}
	if _, err := h.trainStore.GetByID(r.Context(), trainID); err != nil {
		if errors.Is(err, store.ErrTrainNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Train non trouvé")
			return false
		}
		HandleAPIError(w, r, err, internalErrorMessage)
		return false
	}
	return true
}

// Create handles POST /tickets/create. The ticket always belongs to the
// authenticated caller; the body only names the train.
func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
		return
	}

	var req CreateTicketRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}

	if !h.resolveTicketRefs(w, r, actor.UserID, req.TrainID) {
		return
	}

	ticket, err := domain.NewTicket(actor.UserID, req.TrainID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}

	if err := h.ticketStore.Create(r.Context(), ticket); err != nil {
		HandleAPIError(w, r, err, internalErrorMessage)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, TicketResponse{
		Message: "Billet créé avec succès",
		Ticket:  ticket,
	})
}

// Validate handles POST /tickets/validate. The body names the train; the
// oldest unvalidated ticket the caller holds for it is punched. A second
// attempt on a fully-validated pair is rejected without any state change.
func (h *TicketHandler) Validate(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
		return
	}

	var req CreateTicketRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}

	if !h.resolveTicketRefs(w, r, actor.UserID, req.TrainID) {
		return
	}

	ticket, err := h.ticketStore.GetOldestByUserAndTrain(r.Context(), actor.UserID, req.TrainID)
	if err != nil {
		if errors.Is(err, store.ErrTicketNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Billet non trouvé")
			return
		}
		HandleAPIError(w, r, err, internalErrorMessage)
		return
	}
	if ticket.Validated {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Billet déjà validé")
		return
	}

	if err := h.ticketStore.Validate(r.Context(), ticket.ID, h.timeFunc()); err != nil {
		if errors.Is(err, store.ErrAlreadyValidated) {
			// Lost a race with a concurrent validation of the same ticket.
			shared.RespondWithError(w, r, http.StatusBadRequest, "Billet déjà validé")
			return
		}
		HandleAPIError(w, r, err, internalErrorMessage)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Billet validé avec succès")
}

// ListMine handles GET /tickets/user-tickets: every ticket the caller holds.
func (h *TicketHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
		return
	}

	tickets, err := h.ticketStore.ListByUser(r.Context(), actor.UserID)
	if err != nil {
		HandleAPIError(w, r, err, internalErrorMessage)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tickets)
}

// CheckValidation handles GET /tickets/{id}. Admin only: reports whether a
// ticket has been punched and when.
func (h *TicketHandler) CheckValidation(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
		return
	}
	if !authz.CanInspectTicket(actor) {
		shared.RespondWithError(w, r, http.StatusForbidden, "Accès refusé.")
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ticket, err := h.ticketStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Billet non trouvé")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TicketStatusResponse{
		Validated:      ticket.Validated,
		ValidationDate: ticket.ValidationDate,
	})
}
