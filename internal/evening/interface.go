package evening

import (
	"github.com/mauv0809/club-evenings/internal/pool"
	"github.com/mauv0809/club-evenings/internal/tournament"
)

// Store persists evening snapshots. The last write wins.
type Store interface {
	Create(e tournament.Evening) error
	Get(eveningID string) (*tournament.Evening, error)
	Save(e tournament.Evening) error
	List(activeOnly bool) ([]Summary, error)
	// Latest returns the most recently created evening.
	Latest() (*tournament.Evening, error)
	Clear()
}

// DistributionProvider resolves the pool distribution for a win target.
type DistributionProvider interface {
	For(winsToComplete int) (pool.DistributionConfig, bool)
}
