package tournament

import (
	"cmp"
	"slices"
)

const (
	pointsWin  = 3
	pointsDraw = 1
)

type result int

const (
	loss result = iota
	draw
	win
)

// CalculatePlayerStats folds every completed match (pairs) or game (singles)
// into per-player totals, sorted by points, then wins, then goal difference.
// It is a pure function of the evening.
func CalculatePlayerStats(e Evening) []PlayerStats {
	byID := make(map[string]*PlayerStats, len(e.Players))
	stats := make([]PlayerStats, len(e.Players))
	for i, p := range e.Players {
		stats[i] = PlayerStats{PlayerID: p.ID, PlayerName: p.Name}
		byID[p.ID] = &stats[i]
	}

	credit := func(p Player, goalsFor, goalsAgainst int, r result) {
		s, ok := byID[p.ID]
		if !ok {
			return
		}
		s.MatchesPlayed++
		s.GoalsFor += goalsFor
		s.GoalsAgainst += goalsAgainst
		switch r {
		case win:
			s.Wins++
			s.CurrentStreak++
			s.LongestWinStreak = max(s.LongestWinStreak, s.CurrentStreak)
		case draw:
			s.Draws++
			s.CurrentStreak = 0
		default:
			s.Losses++
			s.CurrentStreak = 0
		}
	}
	outcome := func(own, other int) result {
		switch {
		case own > other:
			return win
		case own == other:
			return draw
		}
		return loss
	}

	for _, r := range e.Rounds {
		for _, m := range r.Matches {
			if !m.Completed || m.Score == nil {
				continue
			}
			for side, pair := range m.Pairs {
				own, other := m.Score[side], m.Score[1-side]
				for _, p := range pair.Players {
					credit(p, own, other, outcome(own, other))
				}
			}
		}
	}
	for _, g := range e.GameSequence {
		if !g.Completed || g.Score == nil {
			continue
		}
		for side, p := range g.Players {
			own, other := g.Score[side], g.Score[1-side]
			credit(p, own, other, outcome(own, other))
		}
	}

	for i := range stats {
		stats[i].Points = stats[i].Wins*pointsWin + stats[i].Draws*pointsDraw
	}
	slices.SortStableFunc(stats, func(a, b PlayerStats) int {
		return cmp.Or(
			cmp.Compare(b.Points, a.Points),
			cmp.Compare(b.Wins, a.Wins),
			cmp.Compare(b.GoalDifference(), a.GoalDifference()),
		)
	})
	return stats
}

// CalculateRankings buckets players by distinct point level: the highest level
// is alpha, then beta, gamma and delta. Levels beyond the fourth fold into
// delta, so every player lands in exactly one bucket.
func CalculateRankings(stats []PlayerStats) Rankings {
	levels := make([]int, 0, len(stats))
	for _, s := range stats {
		if !slices.Contains(levels, s.Points) {
			levels = append(levels, s.Points)
		}
	}
	slices.SortFunc(levels, func(a, b int) int { return cmp.Compare(b, a) })

	buckets := [4][]string{{}, {}, {}, {}}
	for _, s := range stats {
		tier := min(slices.Index(levels, s.Points), len(buckets)-1)
		buckets[tier] = append(buckets[tier], s.PlayerID)
	}
	return Rankings{Alpha: buckets[0], Beta: buckets[1], Gamma: buckets[2], Delta: buckets[3]}
}
