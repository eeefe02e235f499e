package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mbriand/railgo/internal/api/shared"
	"github.com/mbriand/railgo/internal/domain"
	"github.com/mbriand/railgo/internal/platform/upload"
	"github.com/mbriand/railgo/internal/service/authz"
	"github.com/mbriand/railgo/internal/store"
)

// maxStationFormBytes bounds the in-memory part of multipart parsing.
const maxStationFormBytes = 12 << 20

// StationHandler handles station reads and mutations.
type StationHandler struct {
	stationStore store.StationStore
	sequences    store.SequenceStore
	images       *upload.ImageStore
	logger       *slog.Logger
}

// NewStationHandler creates a new StationHandler with the given dependencies.
func NewStationHandler(
	stationStore store.StationStore,
	sequences store.SequenceStore,
	images *upload.ImageStore,
	logger *slog.Logger,
) *StationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StationHandler{
		stationStore: stationStore,
		sequences:    sequences,
		images:       images,
		logger:       logger.With(slog.String("component", "station_handler")),
	}
}

// parseStationRequest reads the station fields from either a JSON body or a
// multipart form. With multipart, an optional "image" part is sniffed and
// stored; the returned path ends up on the station.
func (h *StationHandler) parseStationRequest(r *http.Request) (StationRequest, string, error) {
	var req StationRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxStationFormBytes); err != nil {
			return req, "", err
		}
		req.Name = r.FormValue("name")
		req.OpenHour = r.FormValue("open_hour")
		req.CloseHour = r.FormValue("close_hour")

		imagePath := ""
		if file, _, err := r.FormFile("image"); err == nil {
			defer func() { _ = file.Close() }()
			imagePath, err = h.images.Save(file)
			if err != nil {
				return req, "", err
			}
		}
		return req, imagePath, shared.ValidateRequest(req)
	}

	if err := shared.DecodeJSON(r, &req); err != nil {
		return req, "", err
	}
	return req, "", shared.ValidateRequest(req)
}

// Create handles POST /stations. Admin only.
func (h *StationHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
		return
	}
	if !authz.CanManageStations(actor) {
		shared.RespondWithError(w, r, http.StatusForbidden,
			"Vous n'êtes pas autorisé à créer une station.")
		return
	}

	req, imagePath, err := h.parseStationRequest(r)
	if err != nil {
		if errors.Is(err, upload.ErrNotAnImage) || errors.Is(err, upload.ErrFileTooLarge) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Image invalide.")
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}

	id, err := h.sequences.Next(r.Context(), store.StationSequence)
	if err != nil {
		HandleAPIError(w, r, err, internalErrorMessage)
		return
	}

	station, err := domain.NewStation(id, req.Name, req.OpenHour, req.CloseHour, imagePath)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}

	if err := h.stationStore.Create(r.Context(), station); err != nil {
		// A stored image for a station that never made it is garbage.
		if imagePath != "" {
			if rmErr := h.images.Remove(imagePath); rmErr != nil {
				h.logger.Warn("failed to clean up orphaned image",
					"error", rmErr, "path", imagePath)
			}
		}
		HandleAPIError(w, r, err, internalErrorMessage)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, StationResponse{
		Message: "Station créée avec succès.",
		Station: station,
	})
}

// List handles GET /stations; supports an equality filter on name. An empty
// result is reported as a 404, which is what the clients were built against.
func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.StationFilter{Name: r.URL.Query().Get("name")}

	stations, err := h.stationStore.List(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, internalErrorMessage)
		return
	}
	if len(stations) == 0 {
		shared.RespondWithError(w, r, http.StatusNotFound, "Aucune gare trouvée.")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stations)
}

// Get handles GET /stations/{id}.
func (h *StationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	station, err := h.stationStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Gare inconnue.")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, station)
}

// Update handles PUT /stations/{id}. Admin only.
func (h *StationHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
		return
	}
	if !authz.CanManageStations(actor) {
		shared.RespondWithError(w, r, http.StatusForbidden,
			"Vous n'êtes pas autorisé à modifier cette station.")
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	req, imagePath, err := h.parseStationRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Requête invalide.")
		return
	}

	station, err := h.stationStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Gare inconnue.")
		return
	}

	station.Name = req.Name
	station.OpenHour = req.OpenHour
	station.CloseHour = req.CloseHour
	if imagePath != "" {
		if station.Image != "" {
			if rmErr := h.images.Remove(station.Image); rmErr != nil {
				h.logger.Warn("failed to remove replaced image",
					"error", rmErr, "path", station.Image)
			}
		}
		station.Image = imagePath
	}

	if err := h.stationStore.Update(r.Context(), station); err != nil {
		HandleAPIError(w, r, err, "Gare inconnue.")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StationResponse{
		Message: "Station modifiée",
		Station: station,
	})
}

// Delete handles DELETE /stations/{id}. Admin only; removes the station and
// every train touching it in one transaction.
func (h *StationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
		return
	}
	if !authz.CanManageStations(actor) {
		shared.RespondWithError(w, r, http.StatusForbidden,
			"Vous n'êtes pas autorisé à supprimer cette station.")
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.stationStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Gare inconnue.")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Station et trains associés supprimés.")
}
