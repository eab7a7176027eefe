package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-evenings/internal/catalog"
	"github.com/mauv0809/club-evenings/internal/evening"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// errorResponse is the JSON body of every failed API call.
type errorResponse struct {
	Error string `json:"error"`
}

// StatusFor maps a service error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case evening.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, evening.ErrNotFound), errors.Is(err, evening.ErrRoundNotFound), errors.Is(err, catalog.ErrClubNotFound):
		return http.StatusNotFound
	case evening.IsConflict(err):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func respondWithJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func respondWithError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	} else {
		log.Debug("Request rejected", "status", status, "error", err)
	}
	respondWithJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

// roundFromPath reads the {round} path value. 0 addresses the current round.
func roundFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	round, err := strconv.Atoi(r.PathValue("round"))
	if err != nil || round < 0 {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "round must be a non-negative number"})
		return 0, false
	}
	return round, true
}
