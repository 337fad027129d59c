package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nameforge/nameforge/internal/core/scanner"
	"github.com/nameforge/nameforge/internal/suggest"
)

type stubSuggester struct {
	raw string
	err error
}

func (s *stubSuggester) Suggest(ctx context.Context, req suggest.Request) (string, error) {
	return s.raw, s.err
}

func newSuggestHandler(raw string, suggestErr error, available map[string]bool) *SuggestHandler {
	return &SuggestHandler{
		Suggester: &stubSuggester{raw: raw, err: suggestErr},
		Scanner: &scanner.Scanner{
			Checker: scanner.CheckerFunc(func(ctx context.Context, domain string) (bool, error) {
				return available[domain], nil
			}),
		},
	}
}

func TestSuggestStreamsAvailableNames(t *testing.T) {
	handler := newSuggestHandler(
		"1. alfa.com\n2. bravo.com\n3. charlie.com\n",
		nil,
		map[string]bool{"alfa.com": true, "charlie.com": true},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/suggest",
		strings.NewReader(`{"keywords": "greek letters"}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	require.ElementsMatch(t, []string{"alfa.com", "charlie.com"}, lines)
	require.True(t, rec.Flushed)
}

func TestSuggestNoAvailableNames(t *testing.T) {
	handler := newSuggestHandler("alfa.com\nbravo.com\n", nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/suggest",
		strings.NewReader(`{"keywords": "anything"}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, scanner.NoResultsMessage+"\n", rec.Body.String())
}

func TestSuggestProviderFailureDegrades(t *testing.T) {
	handler := newSuggestHandler("", errors.New("provider down"), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/suggest",
		strings.NewReader(`{"keywords": "anything"}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	// Provider failure is not an HTTP error: the stream opens and carries
	// the no-results notice.
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, scanner.NoResultsMessage+"\n", rec.Body.String())
}

func TestSuggestRejectsMalformedJSON(t *testing.T) {
	handler := newSuggestHandler("", nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/suggest",
		strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "INVALID_INPUT")
}

func TestSuggestRequiresKeywords(t *testing.T) {
	handler := newSuggestHandler("", nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/suggest",
		strings.NewReader(`{"keywords": "   "}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
}

func TestSuggestConversationalCompletion(t *testing.T) {
	handler := newSuggestHandler(
		"Sure! Based on your keywords, you could try something creative.",
		nil,
		map[string]bool{},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/suggest",
		strings.NewReader(`{"keywords": "anything"}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, scanner.NoResultsMessage+"\n", rec.Body.String())
}
