package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	EveningsStarted    *prometheus.CounterVec
	EveningsCompleted  prometheus.Counter
	MatchesRecorded    prometheus.Counter
	PoolsGenerated     *prometheus.CounterVec
	RecycledClubs      prometheus.Counter
	ShortPools         prometheus.Counter
	PoolDuration       prometheus.Histogram
	ProcessingDuration prometheus.Histogram
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}

// CounterKey names a lifetime counter row.
type CounterKey string

// Counter keys persisted by MetricsStore.
const (
	KeyEveningsStarted   CounterKey = "evenings_started"
	KeyEveningsCompleted CounterKey = "evenings_completed"
	KeyMatchesRecorded   CounterKey = "matches_recorded"
)

// EveningsStartedKey is the per-type breakdown of KeyEveningsStarted, e.g.
// "evenings_started.pairs".
func EveningsStartedKey(eveningType string) CounterKey {
	return KeyEveningsStarted + CounterKey("."+eveningType)
}
