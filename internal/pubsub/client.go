package pubsub

import (
	"context"
	"fmt"
	"slices"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

func New(projectID string) PubSubClient {
	ctx := context.Background()
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	teardown := func() {
		pubSubC.Close()
	}

	return &client{
		client:   pubSubC,
		teardown: teardown,
	}
}

// newMessage validates the topic and encodes data as msgpack. Evening
// payloads carry their evening id as an attribute.
func newMessage(topic EventType, data any) (*pubsub.Message, error) {
	if !slices.Contains(Topics, topic) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}
	payload, err := msgpack.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s message: %w", topic, err)
	}
	msg := &pubsub.Message{Data: payload}
	if em, ok := data.(eveningMessage); ok {
		msg.Attributes = map[string]string{AttrEveningID: em.Evening()}
	}
	return msg, nil
}

func (c *client) SendMessage(topic EventType, data any) error {
	msg, err := newMessage(topic, data)
	if err != nil {
		log.Error("Failed to build message", "error", err, "topic", topic)
		return err
	}
	ctx := context.Background()
	result := c.client.Topic(string(topic)).Publish(ctx, msg)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic, "eveningID", msg.Attributes[AttrEveningID])
		return fmt.Errorf("failed to publish %s message: %w", topic, err)
	}
	log.Debug("Published message", "topic", topic, "serverID", serverID, "eveningID", msg.Attributes[AttrEveningID])
	return nil
}

// ProcessMessage decodes a msgpack payload into returnValue.
func (c *client) ProcessMessage(data []byte, returnValue any) error {
	return Decode(data, returnValue)
}

func (c *client) Close() {
	c.teardown()
}

// Decode unmarshals a msgpack payload published by SendMessage.
func Decode(data []byte, returnValue any) error {
	if err := msgpack.Unmarshal(data, returnValue); err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	return nil
}
