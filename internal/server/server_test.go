package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nameforge/nameforge/internal/core/scanner"
	apperrors "github.com/nameforge/nameforge/internal/errors"
	"github.com/nameforge/nameforge/internal/server/handlers"
	"github.com/nameforge/nameforge/internal/suggest"
)

type staticSuggester struct {
	raw string
}

func (s staticSuggester) Suggest(ctx context.Context, req suggest.Request) (string, error) {
	return s.raw, nil
}

func newTestServer(raw string, available map[string]bool) *Server {
	suggestHandler := &handlers.SuggestHandler{
		Suggester: staticSuggester{raw: raw},
		Scanner: &scanner.Scanner{
			Checker: scanner.CheckerFunc(func(ctx context.Context, domain string) (bool, error) {
				return available[domain], nil
			}),
		},
	}
	hm := handlers.NewHealthManager("test")
	return New("127.0.0.1", 0, suggestHandler, hm)
}

func TestServerUsesStandardErrorHandlers(t *testing.T) {
	srv := newTestServer("", nil)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	var body apperrors.HTTPErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if body.Error.Code != "NOT_FOUND" {
		t.Fatalf("expected error code NOT_FOUND, got %s", body.Error.Code)
	}
}

func TestServerMethodNotAllowed(t *testing.T) {
	srv := newTestServer("", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/suggest", nil)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}

	var body apperrors.HTTPErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if body.Error.Code != "METHOD_NOT_ALLOWED" {
		t.Fatalf("expected error code METHOD_NOT_ALLOWED, got %s", body.Error.Code)
	}
}

func TestSuggestRouteStreamsThroughMiddleware(t *testing.T) {
	srv := newTestServer("alfa.com\nbravo.com\n", map[string]bool{"bravo.com": true})

	req := httptest.NewRequest(http.MethodPost, "/api/suggest",
		strings.NewReader(`{"keywords": "anything"}`))
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "bravo.com\n" {
		t.Fatalf("expected streamed line %q, got %q", "bravo.com\n", got)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header on response")
	}
}

func TestHealthRoutesRegistered(t *testing.T) {
	srv := newTestServer("", nil)

	for _, path := range []string{"/health", "/health/live", "/health/ready", "/health/startup", "/version"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200 for %s, got %d", path, rec.Code)
		}
	}
}
