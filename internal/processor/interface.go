package processor

import (
	"github.com/mauv0809/club-evenings/internal/notifier"
	"github.com/mauv0809/club-evenings/internal/tournament"
)

// Store defines the database operations required by the processor.
type Store interface {
	Get(eveningID string) (*tournament.Evening, error)
}

// Notifier defines the notification operations required by the processor.
// This is now an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
