package pubsub

import (
	"errors"

	"cloud.google.com/go/pubsub"
)

var ErrUnknownTopic = errors.New("unknown pubsub topic")

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType is the topic a message is published to.
type EventType string

const (
	EventRoundCompleted   EventType = "round-completed"
	EventEveningCompleted EventType = "evening-completed"
)

// Topics lists every topic the service publishes to.
var Topics = []EventType{EventRoundCompleted, EventEveningCompleted}

// AttrEveningID is the message attribute carrying the evening id, so push
// subscriptions can filter without decoding the payload.
const AttrEveningID = "evening_id"

// eveningMessage is implemented by payloads that belong to one evening.
type eveningMessage interface {
	Evening() string
}

// RoundCompletedMessage announces a decided round.
type RoundCompletedMessage struct {
	EveningID    string `msgpack:"evening_id"`
	RoundNumber  int    `msgpack:"round_number"`
	WinnerPairID string `msgpack:"winner_pair_id"`
}

func (m RoundCompletedMessage) Evening() string { return m.EveningID }

// EveningCompletedMessage announces a finished evening. Consumers load the
// evening by id and recompute everything from it.
type EveningCompletedMessage struct {
	EveningID string `msgpack:"evening_id"`
}

func (m EveningCompletedMessage) Evening() string { return m.EveningID }
