package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithMessage(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/stations", nil)

	RespondWithMessage(w, r, http.StatusCreated, "Station créée avec succès.")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Station créée avec succès.", body.Message)
	assert.Empty(t, body.TraceID)
}

func TestRespondWithErrorIncludesTraceID(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/stations/9", nil)
	r = r.WithContext(SetTraceID(r.Context()))

	RespondWithError(w, r, http.StatusNotFound, "Gare inconnue.")

	var body MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Gare inconnue.", body.Message)
	assert.Len(t, body.TraceID, 2*TraceIDLength)
}

func TestRespondWithErrorAndLogHidesInternalDetail(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/trains", nil)

	internal := errors.New("pq: connection to postgres://app:pw@db/railgo refused")
	RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Une erreur est survenue.", internal)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "postgres://")
	assert.Contains(t, w.Body.String(), "Une erreur est survenue.")
}

func TestTraceIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := SetTraceID(context.Background())
	first := GetTraceID(ctx)
	require.NotEmpty(t, first)

	// A second trace on the same context replaces, not repeats.
	second := GetTraceID(SetTraceID(ctx))
	assert.NotEqual(t, first, second)
}
