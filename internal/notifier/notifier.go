package notifier

import (
	"github.com/mauv0809/club-evenings/internal/evening"
	"github.com/mauv0809/club-evenings/internal/tournament"
)

// Notifier defines a high-level interface for sending notifications about evening events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For finished rounds
	SendRoundResult(e tournament.Evening, roundNumber int, dryRun bool) error
	// For finished evenings
	SendEveningSummary(e tournament.Evening, standings evening.Standings, dryRun bool) error

	// For slash commands
	FormatStandingsResponse(e tournament.Evening, standings evening.Standings) (any, error)
}
