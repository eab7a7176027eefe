package http

import (
	"net/http"

	"github.com/mauv0809/club-evenings/internal/catalog"
	"github.com/mauv0809/club-evenings/internal/config"
	"github.com/mauv0809/club-evenings/internal/evening"
	"github.com/mauv0809/club-evenings/internal/http/handlers"
	"github.com/mauv0809/club-evenings/internal/metrics"
	"github.com/mauv0809/club-evenings/internal/notifier"
	"github.com/mauv0809/club-evenings/internal/processor"
	"github.com/mauv0809/club-evenings/internal/pubsub"
)

func NewServer(evenings *evening.Service, clubs catalog.ClubStore, counters metrics.MetricsStore, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor) *Server {
	server := &Server{
		Evenings:       evenings,
		Clubs:          clubs,
		Counters:       counters,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	slackAuth := slackVerificationMiddleware(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/counters", Chain(handlers.CountersHandler(s.Counters), paramsMiddleware))

	s.Router.Handle("POST /api/evenings", Chain(handlers.StartEveningHandler(s.Evenings), paramsMiddleware))
	s.Router.Handle("GET /api/evenings", Chain(handlers.ListEveningsHandler(s.Evenings), paramsMiddleware))
	s.Router.Handle("GET /api/evenings/latest", Chain(handlers.LatestEveningHandler(s.Evenings), paramsMiddleware))
	s.Router.Handle("GET /api/evenings/{id}", Chain(handlers.GetEveningHandler(s.Evenings), paramsMiddleware))
	s.Router.Handle("POST /api/evenings/{id}/events", Chain(handlers.ApplyEventHandler(s.Evenings), paramsMiddleware))
	s.Router.Handle("GET /api/evenings/{id}/standings", Chain(handlers.StandingsHandler(s.Evenings), paramsMiddleware))
	s.Router.Handle("POST /api/evenings/{id}/rounds/{round}/pools", Chain(handlers.RoundPoolsHandler(s.Evenings), paramsMiddleware))
	s.Router.Handle("POST /api/evenings/{id}/rounds/{round}/trivia-pools", Chain(handlers.TriviaPoolsHandler(s.Evenings), paramsMiddleware))
	s.Router.Handle("POST /api/evenings/{id}/rounds/{round}/decider", Chain(handlers.DeciderClubsHandler(s.Evenings), paramsMiddleware))

	s.Router.Handle("GET /api/clubs", Chain(handlers.ListClubsHandler(s.Clubs), paramsMiddleware))
	s.Router.Handle("PUT /api/clubs/{id}/stars", Chain(handlers.SetStarOverrideHandler(s.Clubs), paramsMiddleware))
	s.Router.Handle("DELETE /api/clubs/{id}/stars", Chain(handlers.ClearStarOverrideHandler(s.Clubs), paramsMiddleware))

	s.Router.Handle("POST /pubsub/round-completed", Chain(handlers.PushHandler(s.Processor, pubsub.EventRoundCompleted), paramsMiddleware))
	s.Router.Handle("POST /pubsub/evening-completed", Chain(handlers.PushHandler(s.Processor, pubsub.EventEveningCompleted), paramsMiddleware))

	s.Router.Handle("POST /slack/command/standings", Chain(handlers.StandingsCommandHandler(s.Evenings, s.Notifier), paramsMiddleware, slackAuth))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
