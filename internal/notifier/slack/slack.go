package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-evenings/internal/evening"
	"github.com/mauv0809/club-evenings/internal/metrics"
	"github.com/mauv0809/club-evenings/internal/notifier"
	"github.com/mauv0809/club-evenings/internal/tournament"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendRoundResult posts the outcome of a finished round.
func (s *Notifier) SendRoundResult(e tournament.Evening, roundNumber int, dryRun bool) error {
	msg, err := s.formatRoundResult(e, roundNumber)
	if err != nil {
		return err
	}
	_, _, err = s.sendMessage(msg, dryRun)
	return err
}

// SendEveningSummary posts the final standings of an evening.
func (s *Notifier) SendEveningSummary(e tournament.Evening, standings evening.Standings, dryRun bool) error {
	msg := s.formatStandings(e, standings)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatStandingsResponse formats the standings for a slash command response.
func (s *Notifier) FormatStandingsResponse(e tournament.Evening, standings evening.Standings) (any, error) {
	return s.formatStandings(e, standings), nil
}

func pairName(p tournament.Pair) string {
	return p.Players[0].Name + " & " + p.Players[1].Name
}

func clubLabel(m tournament.Match, side int) string {
	c := m.Clubs[side]
	if c.IsZero() {
		return "?"
	}
	return fmt.Sprintf("%s (%.1f★)", c.Name, c.Stars)
}

// formatRoundResult creates the Slack message for a finished round using Block Kit.
func (s *Notifier) formatRoundResult(e tournament.Evening, roundNumber int) (slack.Message, error) {
	var round *tournament.Round
	for i := range e.Rounds {
		if e.Rounds[i].Number == roundNumber {
			round = &e.Rounds[i]
		}
	}
	if round == nil {
		return slack.Message{}, fmt.Errorf("round %d not found in evening %s", roundNumber, e.ID)
	}

	blocks := make([]slack.Block, 0)
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏁 Round %d finished! 🏁", round.Number), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	resultText := "Result: no winner"
	if winner, ok := tournament.GetRoundWinner(*round); ok {
		for side, p := range round.Pairs {
			if p.ID == winner {
				resultText = fmt.Sprintf("Result: %s won %d-%d! 🏆", pairName(p), round.PairScores[p.ID], round.PairScores[round.Pairs[1-side].ID])
			}
		}
	}

	var fields []*slack.TextBlockObject
	n := 0
	for _, m := range round.Matches {
		if !m.Completed || m.Score == nil {
			continue
		}
		n++
		label := fmt.Sprintf("Match %d", n)
		if m.IsDecider {
			label = "Decider"
		}
		text := fmt.Sprintf("%s: %d-%d\n%s vs %s", label, m.Score[0], m.Score[1], clubLabel(m, 0), clubLabel(m, 1))
		fields = append(fields, slack.NewTextBlockObject("plain_text", text, true, false))
	}
	// Section blocks accept at most 10 fields.
	if len(fields) > 10 {
		fields = fields[len(fields)-10:]
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultText, true, false), fields, nil))

	contextText := fmt.Sprintf("%s vs %s | first to %d", pairName(round.Pairs[0]), pairName(round.Pairs[1]), e.WinsToComplete)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, true, false)))

	return slack.NewBlockMessage(blocks...), nil
}

// formatStandings creates a Slack message with the ranked players and their tiers.
func (s *Notifier) formatStandings(e tournament.Evening, standings evening.Standings) slack.Message {
	blocks := make([]slack.Block, 0)

	title := "📊 Evening Standings 📊"
	if standings.Completed {
		title = "🏆 Evening Finished! 🏆"
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", title, true, false)))

	if len(standings.Stats) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No matches played yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, stat := range standings.Stats {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}
		playerText := fmt.Sprintf("%d. %s %s\n> *Points*: %d | *W-D-L*: %d-%d-%d | *GD*: %+d | *Best streak*: %d",
			rank,
			medal,
			stat.PlayerName,
			stat.Points,
			stat.Wins,
			stat.Draws,
			stat.Losses,
			stat.GoalDifference(),
			stat.LongestWinStreak,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))
	}

	names := make(map[string]string, len(e.Players))
	for _, p := range e.Players {
		names[p.ID] = p.Name
	}
	var tiers []string
	for _, tier := range []struct {
		label string
		ids   []string
	}{
		{"Alpha", standings.Rankings.Alpha},
		{"Beta", standings.Rankings.Beta},
		{"Gamma", standings.Rankings.Gamma},
		{"Delta", standings.Rankings.Delta},
	} {
		if len(tier.ids) == 0 {
			continue
		}
		members := make([]string, len(tier.ids))
		for i, id := range tier.ids {
			members[i] = names[id]
			if members[i] == "" {
				members[i] = id
			}
		}
		tiers = append(tiers, fmt.Sprintf("*%s*: %s", tier.label, strings.Join(members, ", ")))
	}
	if len(tiers) > 0 {
		blocks = append(blocks, slack.NewDividerBlock())
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", strings.Join(tiers, "\n"), false, false), nil, nil))
	}

	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", fmt.Sprintf("%s evening on %s", e.Type, e.Date), true, false)))
	return slack.NewBlockMessage(blocks...)
}
