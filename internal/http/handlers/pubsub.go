package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-evenings/internal/evening"
	"github.com/mauv0809/club-evenings/internal/processor"
	"github.com/mauv0809/club-evenings/internal/pubsub"
)

// PushHandler receives Pub/Sub push deliveries for one topic. Messages for
// evenings that no longer exist are acknowledged so they are not redelivered.
func PushHandler(proc *processor.Processor, topic pubsub.EventType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received push message", "topic", topic, "body", string(bodyBytes))

		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"`
			} `json:"message"`
		}

		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		err = proc.Dispatch(topic, rawData, IsDryRunFromContext(r))
		switch {
		case err == nil:
		case errors.Is(err, evening.ErrNotFound):
			log.Warn("Dropping message for unknown evening", "topic", topic, "error", err)
		case errors.Is(err, processor.ErrUnknownTopic):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		default:
			log.Error("Failed to process message", "topic", topic, "error", err)
			http.Error(w, "Failed to process message", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
