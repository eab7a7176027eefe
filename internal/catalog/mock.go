package catalog

import (
	"fmt"
	"slices"
	"sync"
)

var _ ClubStore = (*MockStore)(nil)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It keeps clubs and overrides in memory and is safe for concurrent use.
type MockStore struct {
	mu        sync.Mutex
	clubs     []Club
	overrides map[string]float64

	// Spies for method calls
	SnapshotFunc func() (Catalog, error)

	// Call records
	SnapshotCalls int
}

// NewMock creates a mock seeded with clubs.
func NewMock(clubs ...Club) *MockStore {
	return &MockStore{
		clubs:     slices.Clone(clubs),
		overrides: make(map[string]float64),
	}
}

func (m *MockStore) UpsertClubs(clubs []Club) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range clubs {
		if i := slices.IndexFunc(m.clubs, func(x Club) bool { return x.ID == c.ID }); i >= 0 {
			m.clubs[i] = c
			continue
		}
		m.clubs = append(m.clubs, c)
	}
	return nil
}

func (m *MockStore) GetAllClubs() ([]Club, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.clubs), nil
}

func (m *MockStore) GetClub(clubID string) (*Club, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.resolved() {
		if c.ID == clubID {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrClubNotFound, clubID)
}

func (m *MockStore) SetStarOverride(clubID string, stars float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[clubID] = stars
	return nil
}

func (m *MockStore) ClearStarOverride(clubID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.overrides, clubID)
	return nil
}

func (m *MockStore) Snapshot() (Catalog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SnapshotCalls++
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc()
	}
	return New(m.resolved()), nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clubs = nil
	m.overrides = make(map[string]float64)
}

func (m *MockStore) resolved() []Club {
	out := slices.Clone(m.clubs)
	for i := range out {
		if stars, ok := m.overrides[out[i].ID]; ok {
			out[i].Stars = stars
		}
	}
	return out
}
