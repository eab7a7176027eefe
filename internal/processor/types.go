package processor

import (
	"errors"

	"github.com/mauv0809/club-evenings/internal/metrics"
	"github.com/mauv0809/club-evenings/internal/pubsub"
)

var ErrUnknownTopic = errors.New("no handler for topic")

// Processor reacts to published evening events.
type Processor struct {
	store    Store
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
}
