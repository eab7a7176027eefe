package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-evenings/internal/catalog"
)

// StarOverrideRequest is the body of PUT /api/clubs/{id}/stars.
type StarOverrideRequest struct {
	Stars float64 `json:"stars"`
}

func ListClubsHandler(store catalog.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := store.Snapshot()
		if err != nil {
			http.Error(w, "Failed to get clubs", http.StatusInternalServerError)
			log.Error("Failed to get clubs from store", "error", err)
			return
		}
		respondWithJSON(w, http.StatusOK, snapshot.Clubs())
	}
}

func SetStarOverrideHandler(store catalog.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StarOverrideRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if !catalog.ValidStars(req.Stars) {
			respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid star rating %.1f", req.Stars)})
			return
		}
		id := r.PathValue("id")
		if _, err := store.GetClub(id); err != nil {
			respondWithError(w, err)
			return
		}
		if err := store.SetStarOverride(id, req.Stars); err != nil {
			respondWithError(w, err)
			return
		}
		club, err := store.GetClub(id)
		if err != nil {
			respondWithError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, club)
	}
}

func ClearStarOverrideHandler(store catalog.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.ClearStarOverride(r.PathValue("id")); err != nil {
			respondWithError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
