package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/club-evenings/internal/catalog"
	"github.com/mauv0809/club-evenings/internal/evening"
	"github.com/mauv0809/club-evenings/internal/metrics"
	"github.com/mauv0809/club-evenings/internal/tournament"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

var (
	anna = tournament.Player{ID: "anna", Name: "Anna"}
	bo   = tournament.Player{ID: "bo", Name: "Bo"}
	cleo = tournament.Player{ID: "cleo", Name: "Cleo"}
	dan  = tournament.Player{ID: "dan", Name: "Dan"}
)

func finishedEvening() tournament.Evening {
	p1 := tournament.NewPair(anna, bo, 1)
	p2 := tournament.NewPair(cleo, dan, 1)
	milan := catalog.Club{ID: "milan", Name: "AC Milan", Stars: 4.5}
	porto := catalog.Club{ID: "porto", Name: "FC Porto", Stars: 4}
	match := func(id string, a, b int) tournament.Match {
		winner := p1.ID
		if b > a {
			winner = p2.ID
		}
		return tournament.Match{ID: id, Pairs: [2]tournament.Pair{p1, p2}, Clubs: [2]catalog.Club{milan, porto}, Score: &[2]int{a, b}, Winner: winner, Completed: true}
	}
	return tournament.Evening{
		ID:             "ev1",
		Date:           "2025-07-09",
		Type:           tournament.TypePairs,
		Players:        []tournament.Player{anna, bo, cleo, dan},
		WinsToComplete: 2,
		Rounds: []tournament.Round{{
			ID:         "ev1-r1",
			Number:     1,
			Pairs:      [2]tournament.Pair{p1, p2},
			Matches:    []tournament.Match{match("ev1-r1-m1", 2, 1), match("ev1-r1-m2", 0, 1), match("ev1-r1-m3", 3, 0)},
			Completed:  true,
			PairScores: map[string]int{p1.ID: 2, p2.ID: 1},
		}},
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestSendRoundResult_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}
	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	require.NoError(t, notifier.SendRoundResult(finishedEvening(), 1, false))
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendRoundResult")

	err := notifier.SendRoundResult(finishedEvening(), 7, false)
	assert.Error(t, err)
}

func TestFormatRoundResult(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg, err := client.formatRoundResult(finishedEvening(), 1)
	require.NoError(t, err)
	require.Len(t, msg.Blocks.BlockSet, 3, "Expected 3 blocks")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Equal(t, "🏁 Round 1 finished! 🏁", header.Text.Text)

	result, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Result: Anna & Bo won 2-1! 🏆", result.Text.Text)
	require.Len(t, result.Fields, 3)
	assert.Equal(t, "Match 1: 2-1\nAC Milan (4.5★) vs FC Porto (4.0★)", result.Fields[0].Text)

	contextBlock, ok := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
	require.True(t, ok)
	element, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "Anna & Bo vs Cleo & Dan | first to 2", element.Text)
}

func TestFormatRoundResult_Decider(t *testing.T) {
	e := finishedEvening()
	e.Rounds[0].Matches[2].IsDecider = true

	msg, err := (&Notifier{}).formatRoundResult(e, 1)
	require.NoError(t, err)
	result := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	assert.Equal(t, "Decider: 3-0\nAC Milan (4.5★) vs FC Porto (4.0★)", result.Fields[2].Text)
}

func TestFormatStandings(t *testing.T) {
	t.Run("ranks players and lists tiers", func(t *testing.T) {
		e := finishedEvening()
		standings := *evening.StandingsOf(e)
		standings.Completed = true

		msg := (&Notifier{}).formatStandings(e, standings)
		// header + 4 players + divider + tiers + context
		require.Len(t, msg.Blocks.BlockSet, 8)

		header := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		assert.Equal(t, "🏆 Evening Finished! 🏆", header.Text.Text)

		first := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Contains(t, first.Text.Text, "1. 🥇")
		assert.Contains(t, first.Text.Text, "*Points*: 6")

		tiers := msg.Blocks.BlockSet[6].(*slackapi.SectionBlock)
		assert.Contains(t, tiers.Text.Text, "*Alpha*: Anna, Bo")
		assert.Contains(t, tiers.Text.Text, "*Beta*: Cleo, Dan")
	})

	t.Run("empty standings", func(t *testing.T) {
		e := tournament.Evening{ID: "ev2", Type: tournament.TypeSingles}
		msg := (&Notifier{}).formatStandings(e, evening.Standings{EveningID: "ev2"})
		require.Len(t, msg.Blocks.BlockSet, 2)
		header := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		assert.Equal(t, "📊 Evening Standings 📊", header.Text.Text)
	})
}

func TestFormatStandingsResponse(t *testing.T) {
	e := finishedEvening()
	resp, err := (&Notifier{}).FormatStandingsResponse(e, *evening.StandingsOf(e))
	require.NoError(t, err)
	_, ok := resp.(slackapi.Message)
	assert.True(t, ok)
}
