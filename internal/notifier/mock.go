package notifier

import (
	"sync"

	"github.com/mauv0809/club-evenings/internal/evening"
	"github.com/mauv0809/club-evenings/internal/tournament"
)

var _ Notifier = &Mock{}

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendRoundResultCalls []struct {
		Evening     tournament.Evening
		RoundNumber int
		DryRun      bool
	}
	SendEveningSummaryCalls []struct {
		Evening   tournament.Evening
		Standings evening.Standings
		DryRun    bool
	}

	SendRoundResultFunc         func(e tournament.Evening, roundNumber int, dryRun bool) error
	SendEveningSummaryFunc      func(e tournament.Evening, standings evening.Standings, dryRun bool) error
	FormatStandingsResponseFunc func(e tournament.Evening, standings evening.Standings) (any, error)

	LastStandingsResponse any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRoundResultCalls = nil
	m.SendEveningSummaryCalls = nil
	m.LastStandingsResponse = nil
}

func (m *Mock) SendRoundResult(e tournament.Evening, roundNumber int, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRoundResultCalls = append(m.SendRoundResultCalls, struct {
		Evening     tournament.Evening
		RoundNumber int
		DryRun      bool
	}{e, roundNumber, dryRun})
	if m.SendRoundResultFunc != nil {
		return m.SendRoundResultFunc(e, roundNumber, dryRun)
	}
	return nil
}

func (m *Mock) SendEveningSummary(e tournament.Evening, standings evening.Standings, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendEveningSummaryCalls = append(m.SendEveningSummaryCalls, struct {
		Evening   tournament.Evening
		Standings evening.Standings
		DryRun    bool
	}{e, standings, dryRun})
	if m.SendEveningSummaryFunc != nil {
		return m.SendEveningSummaryFunc(e, standings, dryRun)
	}
	return nil
}

func (m *Mock) FormatStandingsResponse(e tournament.Evening, standings evening.Standings) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatStandingsResponseFunc != nil {
		resp, err := m.FormatStandingsResponseFunc(e, standings)
		m.LastStandingsResponse = resp
		return resp, err
	}
	return "formatted_standings", nil
}
