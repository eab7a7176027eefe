package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-evenings/internal/evening"
	"github.com/mauv0809/club-evenings/internal/tournament"
)

// StartEveningRequest is the body of POST /api/evenings.
type StartEveningRequest struct {
	Type           tournament.EveningType `json:"type"`
	Players        []string               `json:"players"`
	WinsToComplete int                    `json:"winsToComplete"`
	ClubsPerPlayer int                    `json:"clubsPerPlayer"`
}

// TriviaPoolsRequest is the body of the trivia pools endpoint.
type TriviaPoolsRequest struct {
	WinnerSide int    `json:"winnerSide"`
	ClubID     string `json:"clubId"`
}

func StartEveningHandler(svc *evening.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartEveningRequest
		if !decodeBody(w, r, &req) {
			return
		}
		var (
			e   *tournament.Evening
			err error
		)
		switch req.Type {
		case tournament.TypePairs, "":
			e, err = svc.StartPairsEvening(req.Players, req.WinsToComplete)
		case tournament.TypeSingles:
			e, err = svc.StartSinglesEvening(req.Players, req.ClubsPerPlayer)
		default:
			err = &tournament.InvalidInputError{Field: "type", Reason: "must be pairs or singles"}
		}
		if err != nil {
			respondWithError(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, e)
	}
}

func ListEveningsHandler(svc *evening.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly := r.URL.Query().Get("active") == "true"
		evenings, err := svc.ListEvenings(activeOnly)
		if err != nil {
			respondWithError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, evenings)
	}
}

func GetEveningHandler(svc *evening.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.Get(r.PathValue("id"))
		if err != nil {
			respondWithError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, e)
	}
}

func LatestEveningHandler(svc *evening.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.Latest()
		if err != nil {
			respondWithError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, e)
	}
}

// ApplyEventHandler reduces one event against an evening. In dry-run mode
// the event is reduced and the resulting snapshot returned, but nothing is
// saved or published.
func ApplyEventHandler(svc *evening.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev evening.Event
		if !decodeBody(w, r, &ev) {
			return
		}
		id := r.PathValue("id")
		apply := svc.Apply
		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Previewing event", "eveningID", id, "type", ev.Type)
			apply = svc.Preview
		}
		e, err := apply(id, ev)
		if err != nil {
			respondWithError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, e)
	}
}

func RoundPoolsHandler(svc *evening.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		round, ok := roundFromPath(w, r)
		if !ok {
			return
		}
		res, err := svc.GenerateRoundPools(r.PathValue("id"), round)
		if err != nil {
			respondWithError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, res)
	}
}

func TriviaPoolsHandler(svc *evening.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		round, ok := roundFromPath(w, r)
		if !ok {
			return
		}
		var req TriviaPoolsRequest
		if !decodeBody(w, r, &req) {
			return
		}
		res, err := svc.GenerateTriviaPools(r.PathValue("id"), round, req.WinnerSide, req.ClubID)
		if err != nil {
			respondWithError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, res)
	}
}

func DeciderClubsHandler(svc *evening.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		round, ok := roundFromPath(w, r)
		if !ok {
			return
		}
		res, err := svc.GenerateDeciderClubs(r.PathValue("id"), round)
		if err != nil {
			respondWithError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, res)
	}
}

func StandingsHandler(svc *evening.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := svc.Standings(r.PathValue("id"))
		if err != nil {
			respondWithError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, standings)
	}
}
