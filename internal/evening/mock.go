package evening

import (
	"fmt"
	"slices"
	"sync"

	"github.com/mauv0809/club-evenings/internal/tournament"
)

var _ Store = (*MockStore)(nil)

// MockStore is an in-memory Store for tests. It is safe for concurrent use.
type MockStore struct {
	mu       sync.Mutex
	evenings map[string]tournament.Evening
	order    []string

	// Optional hooks overriding the in-memory behaviour.
	SaveFunc func(e tournament.Evening) error

	SaveCalls int
}

// NewMock creates an empty MockStore.
func NewMock() *MockStore {
	return &MockStore{evenings: make(map[string]tournament.Evening)}
}

func (m *MockStore) Create(e tournament.Evening) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.evenings[e.ID]; ok {
		return fmt.Errorf("evening %s already exists", e.ID)
	}
	m.evenings[e.ID] = e.Clone()
	m.order = append(m.order, e.ID)
	return nil
}

func (m *MockStore) Get(eveningID string) (*tournament.Evening, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.evenings[eveningID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, eveningID)
	}
	c := e.Clone()
	return &c, nil
}

func (m *MockStore) Save(e tournament.Evening) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveFunc != nil {
		return m.SaveFunc(e)
	}
	if _, ok := m.evenings[e.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, e.ID)
	}
	m.evenings[e.ID] = e.Clone()
	return nil
}

func (m *MockStore) List(activeOnly bool) ([]Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Summary{}
	for _, id := range slices.Backward(m.order) {
		e := m.evenings[id]
		if activeOnly && e.Completed {
			continue
		}
		names := make([]string, len(e.Players))
		for i, p := range e.Players {
			names[i] = p.Name
		}
		out = append(out, Summary{ID: e.ID, Date: e.Date, Type: e.Type, Completed: e.Completed, Players: names})
	}
	return out, nil
}

func (m *MockStore) Latest() (*tournament.Evening, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.order) == 0 {
		return nil, fmt.Errorf("%w: latest", ErrNotFound)
	}
	e := m.evenings[m.order[len(m.order)-1]].Clone()
	return &e, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evenings = make(map[string]tournament.Evening)
	m.order = nil
}
