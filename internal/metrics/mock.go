package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	eveningsStarted     map[string]int
	eveningsCompleted   int
	matchesRecorded     int
	poolsGenerated      map[string]int
	recycledClubs       int
	shortPools          int
	poolDurations       []float64
	processingDurations []float64
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		eveningsStarted:     make(map[string]int),
		poolsGenerated:      make(map[string]int),
		poolDurations:       make([]float64, 0),
		processingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncEveningsStarted(eveningType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eveningsStarted[eveningType]++
}

func (m *Mock) IncEveningsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eveningsCompleted++
}

func (m *Mock) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRecorded++
}

func (m *Mock) IncPoolsGenerated(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.poolsGenerated[kind]++
}

func (m *Mock) AddRecycledClubs(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recycledClubs += n
}

func (m *Mock) IncShortPools() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shortPools++
}

func (m *Mock) ObservePoolGeneration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.poolDurations = append(m.poolDurations, duration)
}

func (m *Mock) ObserveProcessingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processingDurations = append(m.processingDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// EveningsStarted returns how often IncEveningsStarted was called for eveningType.
func (m *Mock) EveningsStarted(eveningType string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eveningsStarted[eveningType]
}

// EveningsCompleted returns the number of times IncEveningsCompleted was called.
func (m *Mock) EveningsCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eveningsCompleted
}

// MatchesRecorded returns the number of times IncMatchesRecorded was called.
func (m *Mock) MatchesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRecorded
}

// PoolsGenerated returns how often IncPoolsGenerated was called for kind.
func (m *Mock) PoolsGenerated(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.poolsGenerated[kind]
}

// RecycledClubs returns the sum passed to AddRecycledClubs.
func (m *Mock) RecycledClubs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recycledClubs
}

// ShortPools returns the number of times IncShortPools was called.
func (m *Mock) ShortPools() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shortPools
}

// ProcessingDurations returns every observed processing duration.
func (m *Mock) ProcessingDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.processingDurations...)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

var _ MetricsStore = (*StoreMock)(nil)

// StoreMock is an in-memory MetricsStore. IncrementFunc, when set, replaces
// the in-memory behaviour.
type StoreMock struct {
	mu       sync.Mutex
	counters map[CounterKey]int

	IncrementFunc  func(keys ...CounterKey) error
	IncrementCalls [][]CounterKey
}

// NewStoreMock creates an empty StoreMock.
func NewStoreMock() *StoreMock {
	return &StoreMock{counters: make(map[CounterKey]int)}
}

func (m *StoreMock) Increment(keys ...CounterKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IncrementCalls = append(m.IncrementCalls, keys)
	if m.IncrementFunc != nil {
		return m.IncrementFunc(keys...)
	}
	for _, key := range keys {
		m.counters[key]++
	}
	return nil
}

func (m *StoreMock) GetAll() (map[CounterKey]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[CounterKey]int, len(m.counters))
	for k, v := range m.counters {
		out[k] = v
	}
	return out, nil
}
