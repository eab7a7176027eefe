package processor

import (
	"errors"
	"testing"

	"github.com/mauv0809/club-evenings/internal/evening"
	"github.com/mauv0809/club-evenings/internal/metrics"
	"github.com/mauv0809/club-evenings/internal/notifier"
	"github.com/mauv0809/club-evenings/internal/pubsub"
	"github.com/mauv0809/club-evenings/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func storedEvening(t *testing.T, completed bool) *evening.MockStore {
	t.Helper()
	store := evening.NewMock()
	a := tournament.Player{ID: "anna", Name: "Anna"}
	b := tournament.Player{ID: "bo", Name: "Bo"}
	require.NoError(t, store.Create(tournament.Evening{
		ID:        "ev1",
		Type:      tournament.TypeSingles,
		Players:   []tournament.Player{a, b},
		Completed: completed,
		GameSequence: []tournament.SinglesGame{
			{ID: "g1-anna-bo", Players: [2]tournament.Player{a, b}, Score: &[2]int{2, 0}, Winner: "anna", Completed: true},
		},
	}))
	return store
}

func encode(t *testing.T, v any) []byte {
	t.Helper()
	data, err := msgpack.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestProcessor_Dispatch(t *testing.T) {
	t.Run("evening completion sends the summary", func(t *testing.T) {
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		p := New(storedEvening(t, true), notif, metr, pubsub.NewMock("TEST"))

		err := p.Dispatch(pubsub.EventEveningCompleted, encode(t, pubsub.EveningCompletedMessage{EveningID: "ev1"}), true)
		require.NoError(t, err)

		require.Len(t, notif.SendEveningSummaryCalls, 1)
		call := notif.SendEveningSummaryCalls[0]
		assert.True(t, call.DryRun)
		assert.Equal(t, "ev1", call.Standings.EveningID)
		assert.Equal(t, []string{"anna"}, call.Standings.Rankings.Alpha)
		assert.Equal(t, []string{"bo"}, call.Standings.Rankings.Beta)
		assert.Len(t, metr.ProcessingDurations(), 1)
	})

	t.Run("round completion sends the round result", func(t *testing.T) {
		notif := notifier.NewMock()
		p := New(storedEvening(t, false), notif, metrics.NewMock(), pubsub.NewMock("TEST"))

		msg := pubsub.RoundCompletedMessage{EveningID: "ev1", RoundNumber: 2, WinnerPairID: "anna+bo@r2"}
		require.NoError(t, p.Dispatch(pubsub.EventRoundCompleted, encode(t, msg), false))
		require.Len(t, notif.SendRoundResultCalls, 1)
		assert.Equal(t, 2, notif.SendRoundResultCalls[0].RoundNumber)
		assert.Equal(t, "ev1", notif.SendRoundResultCalls[0].Evening.ID)
	})

	t.Run("unknown evening", func(t *testing.T) {
		p := New(evening.NewMock(), notifier.NewMock(), metrics.NewMock(), pubsub.NewMock("TEST"))
		err := p.Dispatch(pubsub.EventEveningCompleted, encode(t, pubsub.EveningCompletedMessage{EveningID: "nope"}), false)
		assert.ErrorIs(t, err, evening.ErrNotFound)
	})

	t.Run("unknown topic", func(t *testing.T) {
		metr := metrics.NewMock()
		p := New(evening.NewMock(), notifier.NewMock(), metr, pubsub.NewMock("TEST"))
		err := p.Dispatch("ball-boy", nil, false)
		assert.ErrorIs(t, err, ErrUnknownTopic)
		assert.Len(t, metr.ProcessingDurations(), 1)
	})

	t.Run("undecodable payload", func(t *testing.T) {
		p := New(evening.NewMock(), notifier.NewMock(), metrics.NewMock(), pubsub.NewMock("TEST"))
		err := p.Dispatch(pubsub.EventRoundCompleted, []byte{0xc1}, false)
		assert.Error(t, err)
	})

	t.Run("notifier failure is returned", func(t *testing.T) {
		notif := notifier.NewMock()
		boom := errors.New("slack down")
		notif.SendEveningSummaryFunc = func(tournament.Evening, evening.Standings, bool) error { return boom }
		p := New(storedEvening(t, true), notif, metrics.NewMock(), pubsub.NewMock("TEST"))

		err := p.HandleEveningCompleted(pubsub.EveningCompletedMessage{EveningID: "ev1"}, false)
		assert.ErrorIs(t, err, boom)
	})
}
