package evening

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/club-evenings/internal/catalog"
	"github.com/mauv0809/club-evenings/internal/tournament"
)

var (
	ErrNotFound          = errors.New("evening not found")
	ErrEveningCompleted  = errors.New("evening is already completed")
	ErrUnknownEvent      = errors.New("unknown event type")
	ErrWrongEveningType  = errors.New("event does not apply to this evening type")
	ErrRoundNotFound     = errors.New("round not found")
	ErrRoundLocked       = errors.New("change would reopen a round that a later round depends on")
	ErrRoundNotCompleted = errors.New("current round is not completed")
	ErrNoMoreRounds      = errors.New("all scheduled rounds have been played")
	ErrNoOpenDecider     = errors.New("round has no open decider match")
	ErrMissingField      = errors.New("event is missing a required field")
)

// EventType names a transition of an evening.
type EventType string

const (
	EventSelectClubs         EventType = "select_clubs"
	EventSubmitResult        EventType = "submit_result"
	EventEditResult          EventType = "edit_result"
	EventDeleteMatch         EventType = "delete_match"
	EventNextMatch           EventType = "next_match"
	EventStartDecider        EventType = "start_decider"
	EventAdvanceRound        EventType = "advance_round"
	EventSetPools            EventType = "set_pools"
	EventSubmitSinglesResult EventType = "submit_singles_result"
	EventCompleteEvening     EventType = "complete_evening"
)

// Event is one transition request. Round 0 addresses the current round.
// Clubs is filled from ClubIDs against the catalog before reducing.
type Event struct {
	Type            EventType          `json:"type"`
	Round           int                `json:"round,omitempty"`
	MatchID         string             `json:"matchId,omitempty"`
	GameID          string             `json:"gameId,omitempty"`
	ClubIDs         [2]string          `json:"clubIds"`
	Score           *[2]int            `json:"score,omitempty"`
	Pools           *[2][]catalog.Club `json:"pools,omitempty"`
	RecycledClubIDs []string           `json:"recycledClubIds,omitempty"`
	Clubs           [2]catalog.Club    `json:"-"`
}

// Summary is the list view of a stored evening.
type Summary struct {
	ID        string                 `json:"id"`
	Date      string                 `json:"date"`
	Type      tournament.EveningType `json:"type"`
	Completed bool                   `json:"completed"`
	Players   []string               `json:"players"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// Standings is the ranked view of an evening.
type Standings struct {
	EveningID string                   `json:"eveningId"`
	Completed bool                     `json:"completed"`
	Stats     []tournament.PlayerStats `json:"stats"`
	Rankings  tournament.Rankings      `json:"rankings"`
}

// store persists evening snapshots.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
