package tournament

import (
	"slices"

	"github.com/mauv0809/club-evenings/internal/catalog"
)

// MaxMatches is the match cap of a round: the most matches a first-to-wins
// contest can need when every match has a winner.
func MaxMatches(winsToComplete int) int {
	return winsToComplete*2 - 1
}

// CreateRound starts an empty round between two pairs.
func CreateRound(id string, number int, pairs [2]Pair, winsToComplete int) (Round, error) {
	if winsToComplete < 1 {
		return Round{}, invalid("winsToComplete", "must be at least 1, got %d", winsToComplete)
	}
	if number < 1 {
		return Round{}, invalid("number", "round numbers start at 1, got %d", number)
	}
	if pairs[0].ID == "" || pairs[0].ID == pairs[1].ID {
		return Round{}, invalid("pairs", "a round needs two distinct pairs")
	}
	return Round{
		ID:         id,
		Number:     number,
		Pairs:      pairs,
		Matches:    []Match{},
		PairScores: map[string]int{pairs[0].ID: 0, pairs[1].ID: 0},
	}, nil
}

// CompletedMatchCount counts the matches with a result.
func CompletedMatchCount(r Round) int {
	n := 0
	for _, m := range r.Matches {
		if m.Completed {
			n++
		}
	}
	return n
}

// OpenMatch returns the index of the match still waiting for a result.
func OpenMatch(r Round) (int, bool) {
	i := slices.IndexFunc(r.Matches, func(m Match) bool { return !m.Completed })
	return i, i >= 0
}

// MatchIndex finds a match by id.
func MatchIndex(r Round, matchID string) (int, bool) {
	i := slices.IndexFunc(r.Matches, func(m Match) bool { return m.ID == matchID })
	return i, i >= 0
}

func scoresOf(r Round) (int, int) {
	return r.PairScores[r.Pairs[0].ID], r.PairScores[r.Pairs[1].ID]
}

// IsRoundComplete reports whether a pair reached the win target or the match
// cap was hit.
func IsRoundComplete(r Round, winsToComplete int) bool {
	a, b := scoresOf(r)
	return max(a, b) >= winsToComplete || CompletedMatchCount(r) >= MaxMatches(winsToComplete)
}

// IsRoundTied reports whether the round ended level and needs a decider.
func IsRoundTied(r Round, winsToComplete int) bool {
	a, b := scoresOf(r)
	if a != b {
		return false
	}
	return a == winsToComplete || CompletedMatchCount(r) >= MaxMatches(winsToComplete)
}

// GetRoundWinner returns the id of the pair with the strictly higher score.
func GetRoundWinner(r Round) (string, bool) {
	a, b := scoresOf(r)
	switch {
	case a > b:
		return r.Pairs[0].ID, true
	case b > a:
		return r.Pairs[1].ID, true
	}
	return "", false
}

// CreateNextMatch appends a regular match with placeholder clubs.
func CreateNextMatch(r Round, winsToComplete int, matchID string) (Round, error) {
	if r.Completed || IsRoundComplete(r, winsToComplete) {
		return r, ErrRoundCompleted
	}
	if _, open := OpenMatch(r); open {
		return r, ErrMatchOpen
	}
	out := r.Clone()
	out.Matches = append(out.Matches, Match{ID: matchID, Pairs: r.Pairs})
	return out, nil
}

// CreateDeciderMatch appends a single tie-breaking match. It is accepted
// whenever the round is tied and nothing is open, so a drawn decider can be
// followed by another one.
func CreateDeciderMatch(r Round, winsToComplete int, matchID string) (Round, error) {
	if r.Completed {
		return r, ErrRoundCompleted
	}
	if !IsRoundTied(r, winsToComplete) {
		return r, ErrRoundNotTied
	}
	if _, open := OpenMatch(r); open {
		return r, ErrMatchOpen
	}
	out := r.Clone()
	out.IsDeciderMatch = true
	out.Matches = append(out.Matches, Match{ID: matchID, Pairs: r.Pairs, IsDecider: true})
	return out, nil
}

// SelectClubs records the clubs chosen for an unfinished match.
func SelectClubs(r Round, matchID string, clubs [2]catalog.Club) (Round, error) {
	i, ok := MatchIndex(r, matchID)
	if !ok {
		return r, ErrMatchNotFound
	}
	if r.Matches[i].Completed {
		return r, ErrMatchCompleted
	}
	if !clubs[0].IsZero() && clubs[0].ID == clubs[1].ID {
		return r, invalid("clubs", "both sides picked %q", clubs[0].ID)
	}
	out := r.Clone()
	out.Matches[i].Clubs = clubs
	return out, nil
}

func validateScore(score [2]int) error {
	if score[0] < 0 || score[1] < 0 {
		return invalid("score", "goals cannot be negative: %d-%d", score[0], score[1])
	}
	return nil
}

func applyScore(m *Match, score [2]int) {
	s := score
	m.Score = &s
	m.Completed = true
	switch {
	case score[0] > score[1]:
		m.Winner = m.Pairs[0].ID
	case score[1] > score[0]:
		m.Winner = m.Pairs[1].ID
	default:
		m.Winner = ""
	}
}

// SubmitResult completes an open match and marks the round completed once it
// is decided. A tied round stays open for a decider.
func SubmitResult(r Round, winsToComplete int, matchID string, score [2]int) (Round, error) {
	if err := validateScore(score); err != nil {
		return r, err
	}
	if r.Completed {
		return r, ErrRoundCompleted
	}
	i, ok := MatchIndex(r, matchID)
	if !ok {
		return r, ErrMatchNotFound
	}
	if r.Matches[i].Completed {
		return r, ErrMatchCompleted
	}
	out := r.Clone()
	applyScore(&out.Matches[i], score)
	return RecomputeRound(out, winsToComplete), nil
}

// EditResult replaces the score of a completed match. Scores are rebuilt from
// the full match list.
func EditResult(r Round, winsToComplete int, matchID string, score [2]int) (Round, error) {
	if err := validateScore(score); err != nil {
		return r, err
	}
	i, ok := MatchIndex(r, matchID)
	if !ok {
		return r, ErrMatchNotFound
	}
	if !r.Matches[i].Completed {
		return r, ErrMatchNotComplete
	}
	out := r.Clone()
	applyScore(&out.Matches[i], score)
	return RecomputeRound(out, winsToComplete), nil
}

// DeleteMatch removes a match and rebuilds the scores.
func DeleteMatch(r Round, winsToComplete int, matchID string) (Round, error) {
	i, ok := MatchIndex(r, matchID)
	if !ok {
		return r, ErrMatchNotFound
	}
	out := r.Clone()
	out.Matches = slices.Delete(out.Matches, i, i+1)
	out.IsDeciderMatch = slices.ContainsFunc(out.Matches, func(m Match) bool { return m.IsDecider })
	return RecomputeRound(out, winsToComplete), nil
}

// RecomputePairScores rebuilds pair scores from scratch. Decider wins count
// like any other win.
func RecomputePairScores(r Round) map[string]int {
	scores := map[string]int{r.Pairs[0].ID: 0, r.Pairs[1].ID: 0}
	for _, m := range r.Matches {
		if m.Completed && m.Winner != "" {
			scores[m.Winner]++
		}
	}
	return scores
}

// RecomputeRound rebuilds the scores and the completed flag of r in place.
// The caller owns r.
func RecomputeRound(r Round, winsToComplete int) Round {
	r.PairScores = RecomputePairScores(r)
	_, open := OpenMatch(r)
	r.Completed = !open && IsRoundComplete(r, winsToComplete) && !IsRoundTied(r, winsToComplete)
	return r
}
