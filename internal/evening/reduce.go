package evening

import (
	"fmt"
	"slices"

	"github.com/mauv0809/club-evenings/internal/catalog"
	"github.com/mauv0809/club-evenings/internal/tournament"
)

// Reduce applies one event to an evening snapshot and returns the next
// snapshot. The input is never modified, and a rejected event returns it
// unchanged together with the error.
func Reduce(state tournament.Evening, ev Event) (tournament.Evening, error) {
	if state.Completed {
		return state, ErrEveningCompleted
	}

	var next tournament.Evening
	var err error
	switch ev.Type {
	case EventSelectClubs:
		next, err = selectClubs(state, ev)
	case EventSubmitResult:
		next, err = submitResult(state, ev)
	case EventEditResult:
		next, err = editResult(state, ev)
	case EventDeleteMatch:
		next, err = deleteMatch(state, ev)
	case EventNextMatch:
		next, err = nextMatch(state, ev)
	case EventStartDecider:
		next, err = startDecider(state, ev)
	case EventAdvanceRound:
		next, err = advanceRound(state)
	case EventSetPools:
		next, err = setPools(state, ev)
	case EventSubmitSinglesResult:
		next, err = submitSinglesResult(state, ev)
	case EventCompleteEvening:
		next, err = Complete(state), nil
	default:
		return state, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	if err != nil {
		return state, err
	}
	return next, nil
}

// Complete marks the evening finished and stores its rankings.
func Complete(e tournament.Evening) tournament.Evening {
	out := e.Clone()
	out.Completed = true
	rankings := tournament.CalculateRankings(tournament.CalculatePlayerStats(out))
	out.Rankings = &rankings
	return out
}

// RoundID derives the id of a round from its evening.
func RoundID(eveningID string, number int) string {
	return fmt.Sprintf("%s-r%d", eveningID, number)
}

// nextMatchID returns an id not yet used in the round.
func nextMatchID(r tournament.Round) string {
	for n := len(r.Matches) + 1; ; n++ {
		id := fmt.Sprintf("%s-m%d", r.ID, n)
		if _, taken := tournament.MatchIndex(r, id); !taken {
			return id
		}
	}
}

// OpenRound creates round number with its first match from the persisted
// pair schedule.
func OpenRound(e tournament.Evening, number int) (tournament.Evening, error) {
	if number < 1 || number > len(e.PairSchedule) {
		return e, ErrNoMoreRounds
	}
	r, err := tournament.CreateRound(RoundID(e.ID, number), number, e.PairSchedule[number-1], e.WinsToComplete)
	if err != nil {
		return e, err
	}
	r, err = tournament.CreateNextMatch(r, e.WinsToComplete, nextMatchID(r))
	if err != nil {
		return e, err
	}
	out := e.Clone()
	out.Rounds = append(out.Rounds, r)
	return out, nil
}

func pairsRound(e tournament.Evening, number int) (int, error) {
	if e.Type != tournament.TypePairs {
		return 0, ErrWrongEveningType
	}
	if len(e.Rounds) == 0 {
		return 0, ErrRoundNotFound
	}
	if number == 0 {
		return len(e.Rounds) - 1, nil
	}
	i := slices.IndexFunc(e.Rounds, func(r tournament.Round) bool { return r.Number == number })
	if i < 0 {
		return 0, fmt.Errorf("%w: %d", ErrRoundNotFound, number)
	}
	return i, nil
}

// settle keeps a round consistent after its results changed: an unplayed
// match is dropped once the round is decided, an unplayed decider is dropped
// once the round is no longer tied, and a round still in progress always has
// one open match.
func settle(r tournament.Round, wins int) (tournament.Round, error) {
	if i, open := tournament.OpenMatch(r); open {
		complete := tournament.IsRoundComplete(r, wins)
		tied := tournament.IsRoundTied(r, wins)
		keep := (!complete && !r.Matches[i].IsDecider) || (tied && r.Matches[i].IsDecider)
		if keep {
			return r, nil
		}
		var err error
		if r, err = tournament.DeleteMatch(r, wins, r.Matches[i].ID); err != nil {
			return r, err
		}
	}
	if tournament.IsRoundComplete(r, wins) {
		return r, nil
	}
	return tournament.CreateNextMatch(r, wins, nextMatchID(r))
}

// replaceRound swaps in an updated round, settles it and completes the
// evening after its final round. Rounds other than the latest must stay
// completed.
func replaceRound(e tournament.Evening, i int, r tournament.Round) (tournament.Evening, error) {
	r, err := settle(r, e.WinsToComplete)
	if err != nil {
		return e, err
	}
	last := i == len(e.Rounds)-1
	if !last && !r.Completed {
		return e, ErrRoundLocked
	}
	out := e.Clone()
	out.Rounds[i] = r
	if last && r.Completed && len(out.Rounds) == len(out.PairSchedule) {
		return Complete(out), nil
	}
	return out, nil
}

func requireMatch(ev Event) error {
	if ev.MatchID == "" {
		return fmt.Errorf("%w: matchId", ErrMissingField)
	}
	return nil
}

func requireScore(ev Event) error {
	if ev.Score == nil {
		return fmt.Errorf("%w: score", ErrMissingField)
	}
	return nil
}

// playedClubs collects the clubs of every completed match in rounds.
func playedClubs(rounds ...tournament.Round) catalog.IDSet {
	used := catalog.NewIDSet()
	for _, r := range rounds {
		for _, m := range r.Matches {
			if !m.Completed {
				continue
			}
			for _, c := range m.Clubs {
				if !c.IsZero() {
					used.Add(c.ID)
				}
			}
		}
	}
	return used
}

func inPool(pool []catalog.Club, id string) bool {
	return slices.ContainsFunc(pool, func(c catalog.Club) bool { return c.ID == id })
}

func selectClubs(e tournament.Evening, ev Event) (tournament.Evening, error) {
	i, err := pairsRound(e, ev.Round)
	if err != nil {
		return e, err
	}
	if err := requireMatch(ev); err != nil {
		return e, err
	}
	if ev.Clubs[0].IsZero() || ev.Clubs[1].IsZero() {
		return e, fmt.Errorf("%w: clubs", ErrMissingField)
	}
	r := e.Rounds[i]
	j, ok := tournament.MatchIndex(r, ev.MatchID)
	if !ok {
		return e, tournament.ErrMatchNotFound
	}

	// Deciders may reuse anything. Regular matches never repeat a club of
	// the round and draw from the round's pools when they exist.
	if !r.Matches[j].IsDecider {
		inRound := playedClubs(r)
		earlier := playedClubs(e.Rounds...)
		for side, c := range ev.Clubs {
			switch {
			case inRound.Has(c.ID):
				return e, fmt.Errorf("%w: %s was already played this round", tournament.ErrClubUnavailable, c.ID)
			case r.TeamPools != nil:
				if !inPool(r.TeamPools[side], c.ID) {
					return e, fmt.Errorf("%w: %s is not in pool %d", tournament.ErrClubUnavailable, c.ID, side)
				}
			case earlier.Has(c.ID):
				return e, fmt.Errorf("%w: %s was already played", tournament.ErrClubUnavailable, c.ID)
			}
		}
	}

	r, err = tournament.SelectClubs(r, ev.MatchID, ev.Clubs)
	if err != nil {
		return e, err
	}
	for _, id := range ev.RecycledClubIDs {
		if !slices.Contains(r.RecycledClubIDs, id) {
			r.RecycledClubIDs = append(r.RecycledClubIDs, id)
		}
	}
	out := e.Clone()
	out.Rounds[i] = r
	return out, nil
}

func submitResult(e tournament.Evening, ev Event) (tournament.Evening, error) {
	i, err := pairsRound(e, ev.Round)
	if err != nil {
		return e, err
	}
	if err := requireMatch(ev); err != nil {
		return e, err
	}
	if err := requireScore(ev); err != nil {
		return e, err
	}
	r, err := tournament.SubmitResult(e.Rounds[i], e.WinsToComplete, ev.MatchID, *ev.Score)
	if err != nil {
		return e, err
	}
	return replaceRound(e, i, r)
}

func editResult(e tournament.Evening, ev Event) (tournament.Evening, error) {
	i, err := pairsRound(e, ev.Round)
	if err != nil {
		return e, err
	}
	if err := requireMatch(ev); err != nil {
		return e, err
	}
	if err := requireScore(ev); err != nil {
		return e, err
	}
	r, err := tournament.EditResult(e.Rounds[i], e.WinsToComplete, ev.MatchID, *ev.Score)
	if err != nil {
		return e, err
	}
	return replaceRound(e, i, r)
}

func deleteMatch(e tournament.Evening, ev Event) (tournament.Evening, error) {
	i, err := pairsRound(e, ev.Round)
	if err != nil {
		return e, err
	}
	if err := requireMatch(ev); err != nil {
		return e, err
	}
	r, err := tournament.DeleteMatch(e.Rounds[i], e.WinsToComplete, ev.MatchID)
	if err != nil {
		return e, err
	}
	return replaceRound(e, i, r)
}

func nextMatch(e tournament.Evening, ev Event) (tournament.Evening, error) {
	i, err := pairsRound(e, ev.Round)
	if err != nil {
		return e, err
	}
	r := e.Rounds[i]
	r, err = tournament.CreateNextMatch(r, e.WinsToComplete, nextMatchID(r))
	if err != nil {
		return e, err
	}
	out := e.Clone()
	out.Rounds[i] = r
	return out, nil
}

func startDecider(e tournament.Evening, ev Event) (tournament.Evening, error) {
	i, err := pairsRound(e, ev.Round)
	if err != nil {
		return e, err
	}
	r := e.Rounds[i]
	r, err = tournament.CreateDeciderMatch(r, e.WinsToComplete, nextMatchID(r))
	if err != nil {
		return e, err
	}
	out := e.Clone()
	out.Rounds[i] = r
	return out, nil
}

func advanceRound(e tournament.Evening) (tournament.Evening, error) {
	i, err := pairsRound(e, 0)
	if err != nil {
		return e, err
	}
	if !e.Rounds[i].Completed {
		return e, ErrRoundNotCompleted
	}
	return OpenRound(e, e.Rounds[i].Number+1)
}

func setPools(e tournament.Evening, ev Event) (tournament.Evening, error) {
	i, err := pairsRound(e, ev.Round)
	if err != nil {
		return e, err
	}
	if ev.Pools == nil {
		return e, fmt.Errorf("%w: pools", ErrMissingField)
	}
	if e.Rounds[i].Completed {
		return e, tournament.ErrRoundCompleted
	}
	seen := catalog.NewIDSet()
	for _, p := range ev.Pools {
		for _, c := range p {
			if seen.Has(c.ID) {
				return e, &tournament.InvalidInputError{Field: "pools", Reason: fmt.Sprintf("club %s appears in both pools", c.ID)}
			}
			seen.Add(c.ID)
		}
	}
	out := e.Clone()
	pools := [2][]catalog.Club{slices.Clone(ev.Pools[0]), slices.Clone(ev.Pools[1])}
	out.Rounds[i].TeamPools = &pools
	out.Rounds[i].RecycledClubIDs = slices.Clone(ev.RecycledClubIDs)
	return out, nil
}

func submitSinglesResult(e tournament.Evening, ev Event) (tournament.Evening, error) {
	if e.Type != tournament.TypeSingles {
		return e, ErrWrongEveningType
	}
	if ev.GameID == "" {
		return e, fmt.Errorf("%w: gameId", ErrMissingField)
	}
	if err := requireScore(ev); err != nil {
		return e, err
	}
	out, err := tournament.SubmitSinglesResult(e, ev.GameID, ev.ClubIDs, *ev.Score)
	if err != nil {
		return e, err
	}
	if tournament.IsSinglesComplete(out) {
		return Complete(out), nil
	}
	return out, nil
}
