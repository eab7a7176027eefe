package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncEveningsStarted(eveningType string)
	IncEveningsCompleted()
	IncMatchesRecorded()
	IncPoolsGenerated(kind string)
	AddRecycledClubs(n int)
	IncShortPools()
	ObservePoolGeneration(duration float64)
	ObserveProcessingDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore keeps lifetime counters in the database so they survive
// restarts, unlike the Prometheus series.
type MetricsStore interface {
	// Increment bumps every key by one in a single transaction.
	Increment(keys ...CounterKey) error
	GetAll() (map[CounterKey]int, error)
}
