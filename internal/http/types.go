package http

import (
	"net/http"

	"github.com/mauv0809/club-evenings/internal/catalog"
	"github.com/mauv0809/club-evenings/internal/config"
	"github.com/mauv0809/club-evenings/internal/evening"
	"github.com/mauv0809/club-evenings/internal/metrics"
	"github.com/mauv0809/club-evenings/internal/notifier"
	"github.com/mauv0809/club-evenings/internal/processor"
)

type Server struct {
	Evenings       *evening.Service
	Clubs          catalog.ClubStore
	Counters       metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
}
