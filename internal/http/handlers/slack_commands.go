package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-evenings/internal/evening"
	"github.com/mauv0809/club-evenings/internal/notifier"
	"github.com/mauv0809/club-evenings/internal/tournament"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// StandingsCommandHandler answers /standings [evening id]. Without an id it
// shows the latest evening.
func StandingsCommandHandler(svc *evening.Service, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		eveningID := strings.TrimSpace(r.FormValue("text"))
		log.Info("Received standings command", "eveningID", eveningID)

		var (
			e   *tournament.Evening
			err error
		)
		if eveningID == "" {
			e, err = svc.Latest()
		} else {
			e, err = svc.Get(eveningID)
		}
		if errors.Is(err, evening.ErrNotFound) {
			respondWithSlackMsg(w, slack.NewBlockMessage(
				slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", "No evening found. Start one first!", false, false), nil, nil),
			))
			return
		}
		if err != nil {
			http.Error(w, "Failed to get evening", http.StatusInternalServerError)
			log.Error("Failed to get evening from store", "error", err)
			return
		}

		msg, err := notifier.FormatStandingsResponse(*e, *evening.StandingsOf(*e))
		if err != nil {
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			log.Error("Failed to format standings", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}
