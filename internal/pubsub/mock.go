package pubsub

import (
	"sync"
)

var _ PubSubClient = (*MockPubSubClient)(nil)

// MockPubSubClient keeps published messages in memory. Messages are built
// exactly like the real client builds them, so unknown topics and
// unencodable payloads fail here too. It is safe for concurrent use.
type MockPubSubClient struct {
	mu sync.Mutex

	// SendMessageFunc, when set, runs after the message was built and
	// replaces recording it.
	SendMessageFunc    func(topic EventType, data any) error
	ProcessMessageFunc func(data []byte, returnValue any) error

	SendMessageCalls []SendMessageCall
}

// SendMessageCall is one published message.
type SendMessageCall struct {
	Topic      EventType
	Data       any
	Payload    []byte
	Attributes map[string]string
}

// NewMock creates a new mock PubSubClient. The projectID is ignored.
func NewMock(projectID string) *MockPubSubClient {
	return &MockPubSubClient{}
}

// Reset forgets every published message.
func (m *MockPubSubClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMessageCalls = nil
}

func (m *MockPubSubClient) SendMessage(topic EventType, data any) error {
	msg, err := newMessage(topic, data)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(topic, data)
	}
	m.SendMessageCalls = append(m.SendMessageCalls, SendMessageCall{Topic: topic, Data: data, Payload: msg.Data, Attributes: msg.Attributes})
	return nil
}

func (m *MockPubSubClient) ProcessMessage(data []byte, returnValue any) error {
	if m.ProcessMessageFunc != nil {
		return m.ProcessMessageFunc(data, returnValue)
	}
	return Decode(data, returnValue)
}

// Close is a no-op.
func (m *MockPubSubClient) Close() {}

// Sent returns the payloads published to topic, in order.
func (m *MockPubSubClient) Sent(topic EventType) []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []any
	for _, c := range m.SendMessageCalls {
		if c.Topic == topic {
			out = append(out, c.Data)
		}
	}
	return out
}
