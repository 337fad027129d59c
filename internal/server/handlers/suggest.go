// Package handlers implements the HTTP endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/nameforge/nameforge/internal/core"
	"github.com/nameforge/nameforge/internal/core/scanner"
	apperrors "github.com/nameforge/nameforge/internal/errors"
	"github.com/nameforge/nameforge/internal/observability"
	"github.com/nameforge/nameforge/internal/suggest"
)

// Suggester is the LLM collaborator seam, satisfied by *suggest.Service.
type Suggester interface {
	Suggest(ctx context.Context, req suggest.Request) (string, error)
}

// SuggestHandler is the request handler for the name suggestion stream: one
// completion, candidate extraction, then a bounded-concurrency availability
// scan whose confirmed names are streamed back line by line.
type SuggestHandler struct {
	Suggester Suggester
	Scanner   *scanner.Scanner
}

// suggestRequest is the JSON request body.
type suggestRequest struct {
	Keywords    string `json:"keywords"`
	Description string `json:"description"`
}

// ServeHTTP streams confirmed-available names as text/plain lines. The
// response is written incrementally: the client sees each name the moment its
// lookup confirms, and a single notice line when nothing was found. Provider
// failures degrade to the empty-candidate path instead of an error status -
// once streaming starts there is no error channel left anyway.
func (h *SuggestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, apperrors.WrapInvalidInput(r.Context(), err, "request body must be JSON"))
		return
	}

	if strings.TrimSpace(req.Keywords) == "" {
		respondWithError(w, r, apperrors.NewValidationError("keywords are required"))
		return
	}

	raw, err := h.Suggester.Suggest(r.Context(), suggest.Request{
		Keywords:    req.Keywords,
		Description: req.Description,
	})
	if err != nil {
		if observability.ServerLogger != nil {
			observability.ServerLogger.Warn("Completion failed, continuing with zero candidates",
				zap.Error(err))
		}
		raw = ""
	}

	candidates := core.ExtractCandidates(raw)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)

	for name := range h.Scanner.Scan(r.Context(), candidates) {
		if _, err := fmt.Fprintf(w, "%s\n", name); err != nil {
			// Client went away; the scan drains on its own once the
			// request context is cancelled.
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}
