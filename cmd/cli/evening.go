package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	eveningType    string
	winsToComplete int
	clubsPerPlayer int
	activeOnly     bool
	eventRound     int
	eventMatchID   string
	eventGameID    string
	eventScore     []int
	eventClubIDs   []string
)

func init() {
	eveningStartCmd.Flags().StringVar(&eveningType, "type", "pairs", "Evening type: pairs or singles")
	eveningStartCmd.Flags().IntVar(&winsToComplete, "wins", 4, "Match wins a pair needs to take a round")
	eveningStartCmd.Flags().IntVar(&clubsPerPlayer, "clubs", 3, "Clubs per player in a singles evening")
	eveningListCmd.Flags().BoolVar(&activeOnly, "active", false, "Only list evenings that are still running")

	eveningApplyCmd.Flags().IntVar(&eventRound, "round", 0, "Round number, 0 for the current round")
	eveningApplyCmd.Flags().StringVar(&eventMatchID, "match", "", "Match id")
	eveningApplyCmd.Flags().StringVar(&eventGameID, "game", "", "Singles game id")
	eveningApplyCmd.Flags().IntSliceVar(&eventScore, "score", nil, "Score as two numbers, e.g. --score 3,1")
	eveningApplyCmd.Flags().StringSliceVar(&eventClubIDs, "clubs", nil, "Club ids for both sides, e.g. --clubs a,b")

	eveningCmd.AddCommand(eveningStartCmd, eveningShowCmd, eveningListCmd, eveningApplyCmd,
		eveningPoolsCmd, eveningTriviaCmd, eveningDeciderCmd, eveningStandingsCmd)
}

var eveningCmd = &cobra.Command{
	Use:   "evening",
	Short: "Start and run club evenings",
}

var eveningStartCmd = &cobra.Command{
	Use:   "start <player>...",
	Short: "Start a new evening",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/evenings", map[string]any{
			"type":           eveningType,
			"players":        args,
			"winsToComplete": winsToComplete,
			"clubsPerPlayer": clubsPerPlayer,
		})
	},
}

var eveningShowCmd = &cobra.Command{
	Use:   "show [evening-id]",
	Short: "Show an evening, the latest one by default",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return performRequest(http.MethodGet, "/api/evenings/latest", nil)
		}
		return performRequest(http.MethodGet, "/api/evenings/"+args[0], nil)
	},
}

var eveningListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored evenings, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/evenings?active="+strconv.FormatBool(activeOnly), nil)
	},
}

var eveningApplyCmd = &cobra.Command{
	Use:   "apply <evening-id> <event-type>",
	Short: "Apply an event such as submit_result or advance_round",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ev := map[string]any{"type": args[1], "round": eventRound}
		if eventMatchID != "" {
			ev["matchId"] = eventMatchID
		}
		if eventGameID != "" {
			ev["gameId"] = eventGameID
		}
		if len(eventScore) > 0 {
			if len(eventScore) != 2 {
				return fmt.Errorf("score needs two numbers, got %d", len(eventScore))
			}
			ev["score"] = eventScore
		}
		if len(eventClubIDs) > 0 {
			if len(eventClubIDs) != 2 {
				return fmt.Errorf("clubs needs two ids, got %d", len(eventClubIDs))
			}
			ev["clubIds"] = eventClubIDs
		}
		return performRequest(http.MethodPost, "/api/evenings/"+args[0]+"/events", ev)
	},
}

var eveningPoolsCmd = &cobra.Command{
	Use:   "pools <evening-id> <round>",
	Short: "Draw the club pools of a round",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		round, err := roundArg(args[1])
		if err != nil {
			return err
		}
		return performRequest(http.MethodPost, fmt.Sprintf("/api/evenings/%s/rounds/%d/pools", args[0], round), nil)
	},
}

var eveningTriviaCmd = &cobra.Command{
	Use:   "trivia <evening-id> <round> <winner-side> <club-id>",
	Short: "Draw pools after the trivia winner picked a club",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		round, err := roundArg(args[1])
		if err != nil {
			return err
		}
		side, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("winner side must be 0 or 1, got %q", args[2])
		}
		return performRequest(http.MethodPost, fmt.Sprintf("/api/evenings/%s/rounds/%d/trivia-pools", args[0], round),
			map[string]any{"winnerSide": side, "clubId": args[3]})
	},
}

var eveningDeciderCmd = &cobra.Command{
	Use:   "decider <evening-id> <round>",
	Short: "Assign balanced clubs to the open decider match",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		round, err := roundArg(args[1])
		if err != nil {
			return err
		}
		return performRequest(http.MethodPost, fmt.Sprintf("/api/evenings/%s/rounds/%d/decider", args[0], round), nil)
	},
}

var eveningStandingsCmd = &cobra.Command{
	Use:   "standings <evening-id>",
	Short: "Show player stats and rankings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/evenings/"+args[0]+"/standings", nil)
	},
}
