package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mbriand/railgo/internal/api/shared"
	"github.com/mbriand/railgo/internal/domain"
	"github.com/mbriand/railgo/internal/service/authz"
	"github.com/mbriand/railgo/internal/store"
)

// TrainHandler handles train reads and mutations.
type TrainHandler struct {
	trainStore   store.TrainStore
	stationStore store.StationStore
	sequences    store.SequenceStore
	logger       *slog.Logger
}

// NewTrainHandler creates a new TrainHandler with the given dependencies.
func NewTrainHandler(
	trainStore store.TrainStore,
	stationStore store.StationStore,
	sequences store.SequenceStore,
	logger *slog.Logger,
) *TrainHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrainHandler{
		trainStore:   trainStore,
		stationStore: stationStore,
		sequences:    sequences,
		logger:       logger.With(slog.String("component", "train_handler")),
	}
}

// Create handles POST /trains. Admin only. Stations arrive as names and both
// must resolve before anything is stored.
func (h *TrainHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
		return
	}
	if !authz.CanManageTrains(actor) {
		shared.RespondWithError(w, r, http.StatusForbidden,
			"Vous n'êtes pas autorisé à créer un train.")
		return
	}

	var req CreateTrainRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}

	start, err := h.stationStore.GetByName(r.Context(), req.StartStation)
	if err != nil && !errors.Is(err, store.ErrStationNotFound) {
		HandleAPIError(w, r, err, internalErrorMessage)
		return
	}
	end, endErr := h.stationStore.GetByName(r.Context(), req.EndStation)
	if endErr != nil && !errors.Is(endErr, store.ErrStationNotFound) {
		HandleAPIError(w, r, endErr, internalErrorMessage)
		return
	}
	if start == nil || end == nil {
		shared.RespondWithError(w, r, http.StatusNotFound,
			"Une ou plusieurs stations spécifiées sont introuvables.")
		return
	}

	id, err := h.sequences.Next(r.Context(), store.TrainSequence)
	if err != nil {
		HandleAPIError(w, r, err, internalErrorMessage)
		return
	}

	train, err := domain.NewTrain(id, req.Name, start.ID, end.ID,
		req.TimeOfDeparture, req.TimeOfArrival)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}

	if err := h.trainStore.Create(r.Context(), train); err != nil {
		if errors.Is(err, store.ErrStationNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound,
				"Une ou plusieurs stations spécifiées sont introuvables.")
			return
		}
		HandleAPIError(w, r, err, internalErrorMessage)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, TrainResponse{
		Message: "Train créé avec succès.",
		Train:   train,
	})
}

// List handles GET /trains; supports equality filters and a result limit
// (default 10).
func (h *TrainHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.TrainFilter{Name: q.Get("name")}

	if v := q.Get("start_station"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
			return
		}
		filter.StartStation = id
	}
	if v := q.Get("end_station"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
			return
		}
		filter.EndStation = id
	}
	if v := q.Get("time_of_departure"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
			return
		}
		filter.TimeOfDeparture = ts
	}
	if v := q.Get("time_of_arrival"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
			return
		}
		filter.TimeOfArrival = ts
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
			return
		}
		filter.Limit = limit
	}

	trains, err := h.trainStore.List(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, internalErrorMessage)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, trains)
}

// Get handles GET /trains/{id}.
func (h *TrainHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	train, err := h.trainStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Train inconnu")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, train)
}

// Update handles PUT /trains/{id}. Admin only; full field overwrite with
// stations referenced by numeric ID.
func (h *TrainHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
		return
	}
	if !authz.CanManageTrains(actor) {
		shared.RespondWithError(w, r, http.StatusForbidden,
			"Vous n'êtes pas autorisé à modifier ce train.")
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTrainRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}

	train, err := h.trainStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Train inconnu")
		return
	}

	train.Name = req.Name
	train.StartStation = req.StartStation
	train.EndStation = req.EndStation
	train.TimeOfDeparture = req.TimeOfDeparture
	train.TimeOfArrival = req.TimeOfArrival

	if err := h.trainStore.Update(r.Context(), train); err != nil {
		if errors.Is(err, store.ErrStationNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound,
				"Une ou plusieurs stations spécifiées sont introuvables.")
			return
		}
		HandleAPIError(w, r, err, "Train inconnu")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TrainResponse{
		Message: "Train modifié",
		Train:   train,
	})
}

// Delete handles DELETE /trains/{id}. Admin only.
func (h *TrainHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
		return
	}
	if !authz.CanManageTrains(actor) {
		shared.RespondWithError(w, r, http.StatusForbidden,
			"Vous n'êtes pas autorisé à supprimer ce train.")
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.trainStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Train inconnu")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Train supprimé avec succès.")
}
