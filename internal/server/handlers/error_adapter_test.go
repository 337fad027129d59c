package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/nameforge/nameforge/internal/errors"
)

func TestSetHTTPErrorResponderInjectsCustomResponder(t *testing.T) {
	t.Cleanup(ResetHTTPErrorResponder)

	var captured error
	SetHTTPErrorResponder(func(w http.ResponseWriter, r *http.Request, err error) {
		captured = err
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	rec := httptest.NewRecorder()
	respondWithError(rec, req, apperrors.NewValidationError("keywords are required"))

	require.Equal(t, http.StatusTeapot, rec.Code)
	require.ErrorContains(t, captured, "keywords are required")
}

func TestResetHTTPErrorResponderRestoresDefault(t *testing.T) {
	SetHTTPErrorResponder(func(w http.ResponseWriter, r *http.Request, err error) {
		w.WriteHeader(http.StatusTeapot)
	})
	ResetHTTPErrorResponder()

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	rec := httptest.NewRecorder()
	respondWithError(rec, req, apperrors.NewValidationError("keywords are required"))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body apperrors.HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "VALIDATION_FAILED", body.Error.Code)
}

func TestSetHTTPErrorResponderNilFallsBackToDefault(t *testing.T) {
	SetHTTPErrorResponder(nil)

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	rec := httptest.NewRecorder()
	respondWithError(rec, req, apperrors.NewNotFoundError("missing"))

	require.Equal(t, http.StatusNotFound, rec.Code)
}
