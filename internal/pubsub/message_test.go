package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	msg, err := newMessage(EventEveningCompleted, EveningCompletedMessage{EveningID: "e7"})
	require.NoError(t, err)
	assert.Equal(t, "e7", msg.Attributes[AttrEveningID])

	var decoded EveningCompletedMessage
	require.NoError(t, Decode(msg.Data, &decoded))
	assert.Equal(t, "e7", decoded.EveningID)

	msg, err = newMessage(EventRoundCompleted, map[string]int{"round": 1})
	require.NoError(t, err)
	assert.Nil(t, msg.Attributes)

	_, err = newMessage("notify-booking", EveningCompletedMessage{})
	assert.ErrorIs(t, err, ErrUnknownTopic)
}
