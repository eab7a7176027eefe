package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-evenings/internal/metrics"
)

func HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// CountersHandler serves the lifetime counters kept in the database.
func CountersHandler(counters metrics.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := counters.GetAll()
		if err != nil {
			http.Error(w, "Failed to get counters", http.StatusInternalServerError)
			log.Error("Failed to get counters from store", "error", err)
			return
		}
		respondWithJSON(w, http.StatusOK, all)
	}
}
