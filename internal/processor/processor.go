package processor

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-evenings/internal/evening"
	"github.com/mauv0809/club-evenings/internal/metrics"
	"github.com/mauv0809/club-evenings/internal/pubsub"
)

// New creates a new Processor.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
	}
}

// Dispatch decodes a pushed payload and runs the handler for its topic.
func (p *Processor) Dispatch(topic pubsub.EventType, data []byte, dryRun bool) error {
	startTime := time.Now()
	defer func() {
		p.metrics.ObserveProcessingDuration(float64(time.Since(startTime).Milliseconds()))
	}()

	switch topic {
	case pubsub.EventRoundCompleted:
		var msg pubsub.RoundCompletedMessage
		if err := p.pubsub.ProcessMessage(data, &msg); err != nil {
			return fmt.Errorf("failed to decode %s message: %w", topic, err)
		}
		return p.HandleRoundCompleted(msg, dryRun)
	case pubsub.EventEveningCompleted:
		var msg pubsub.EveningCompletedMessage
		if err := p.pubsub.ProcessMessage(data, &msg); err != nil {
			return fmt.Errorf("failed to decode %s message: %w", topic, err)
		}
		return p.HandleEveningCompleted(msg, dryRun)
	}
	return fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
}

// HandleRoundCompleted posts the result of a decided round.
func (p *Processor) HandleRoundCompleted(msg pubsub.RoundCompletedMessage, dryRun bool) error {
	log.Info("Processing round completion", "eveningID", msg.EveningID, "round", msg.RoundNumber, "winner", msg.WinnerPairID)
	e, err := p.store.Get(msg.EveningID)
	if err != nil {
		return fmt.Errorf("failed to load evening %s: %w", msg.EveningID, err)
	}
	if err := p.notifier.SendRoundResult(*e, msg.RoundNumber, dryRun); err != nil {
		log.Error("Failed to send round result", "error", err, "eveningID", msg.EveningID)
		return err
	}
	return nil
}

// HandleEveningCompleted posts the final standings. Completion is permanent,
// so the stored evening is the one that was announced.
func (p *Processor) HandleEveningCompleted(msg pubsub.EveningCompletedMessage, dryRun bool) error {
	log.Info("Processing evening completion", "eveningID", msg.EveningID)
	e, err := p.store.Get(msg.EveningID)
	if err != nil {
		return fmt.Errorf("failed to load evening %s: %w", msg.EveningID, err)
	}
	standings := evening.StandingsOf(*e)
	if err := p.notifier.SendEveningSummary(*e, *standings, dryRun); err != nil {
		log.Error("Failed to send evening summary", "error", err, "eveningID", msg.EveningID)
		return err
	}
	log.Info("Evening summary sent", "eveningID", msg.EveningID, "players", len(standings.Stats))
	return nil
}
