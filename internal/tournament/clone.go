package tournament

import (
	"maps"
	"slices"

	"github.com/mauv0809/club-evenings/internal/catalog"
)

func cloneScore(s *[2]int) *[2]int {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// Clone returns a deep copy of the round.
func (r Round) Clone() Round {
	out := r
	out.Matches = slices.Clone(r.Matches)
	for i := range out.Matches {
		out.Matches[i].Score = cloneScore(out.Matches[i].Score)
	}
	out.PairScores = maps.Clone(r.PairScores)
	if r.TeamPools != nil {
		pools := [2][]catalog.Club{slices.Clone(r.TeamPools[0]), slices.Clone(r.TeamPools[1])}
		out.TeamPools = &pools
	}
	out.RecycledClubIDs = slices.Clone(r.RecycledClubIDs)
	return out
}

// Clone returns a deep copy of the evening. Transitions operate on clones so
// earlier snapshots stay valid for undo and replay.
func (e Evening) Clone() Evening {
	out := e
	out.Players = slices.Clone(e.Players)
	out.Rounds = slices.Clone(e.Rounds)
	for i := range out.Rounds {
		out.Rounds[i] = out.Rounds[i].Clone()
	}
	out.PairSchedule = slices.Clone(e.PairSchedule)
	if e.Rankings != nil {
		rk := Rankings{
			Alpha: slices.Clone(e.Rankings.Alpha),
			Beta:  slices.Clone(e.Rankings.Beta),
			Gamma: slices.Clone(e.Rankings.Gamma),
			Delta: slices.Clone(e.Rankings.Delta),
		}
		out.Rankings = &rk
	}
	if e.ClubInventory != nil {
		out.ClubInventory = make(map[string][]catalog.Club, len(e.ClubInventory))
		for id, clubs := range e.ClubInventory {
			out.ClubInventory[id] = slices.Clone(clubs)
		}
	}
	out.GameSequence = slices.Clone(e.GameSequence)
	for i := range out.GameSequence {
		out.GameSequence[i].Score = cloneScore(out.GameSequence[i].Score)
	}
	return out
}
