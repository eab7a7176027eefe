package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		EveningsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "club_evenings_started_total",
			Help: "The total number of evenings started, by evening type.",
		}, []string{"type"}),
		EveningsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "club_evenings_completed_total",
			Help: "The total number of evenings completed.",
		}),
		MatchesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "club_matches_recorded_total",
			Help: "The total number of match and game results recorded.",
		}),
		PoolsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "club_pools_generated_total",
			Help: "The total number of club pools generated, by allocation path.",
		}, []string{"kind"}),
		RecycledClubs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "club_pool_recycled_clubs_total",
			Help: "The total number of already used clubs recycled into pools.",
		}),
		ShortPools: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "club_pool_short_total",
			Help: "The total number of pool generations that could not reach the target size.",
		}),
		PoolDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "club_pool_generation_duration_seconds",
			Help:    "The duration of club pool generation.",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
		ProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "club_evening_processing_duration_seconds",
			Help:    "The duration of completed-evening processing.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "club_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "club_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "club_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.EveningsStarted,
		s.EveningsCompleted,
		s.MatchesRecorded,
		s.PoolsGenerated,
		s.RecycledClubs,
		s.ShortPools,
		s.PoolDuration,
		s.ProcessingDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncEveningsStarted(eveningType string) {
	s.EveningsStarted.WithLabelValues(eveningType).Inc()
}

func (s *Service) IncEveningsCompleted() {
	s.EveningsCompleted.Inc()
}

func (s *Service) IncMatchesRecorded() {
	s.MatchesRecorded.Inc()
}

func (s *Service) IncPoolsGenerated(kind string) {
	s.PoolsGenerated.WithLabelValues(kind).Inc()
}

func (s *Service) AddRecycledClubs(n int) {
	s.RecycledClubs.Add(float64(n))
}

func (s *Service) IncShortPools() {
	s.ShortPools.Inc()
}

func (s *Service) ObservePoolGeneration(duration float64) {
	s.PoolDuration.Observe(duration)
}

func (s *Service) ObserveProcessingDuration(duration float64) {
	s.ProcessingDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
