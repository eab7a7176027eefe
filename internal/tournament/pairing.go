package tournament

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// PairsModePlayers is the fixed player count of a pairs evening.
const PairsModePlayers = 4

// NewPair builds the pair of two players for the given round. The id encodes
// both player ids and the round number.
func NewPair(a, b Player, round int) Pair {
	return Pair{
		ID:      fmt.Sprintf("%s+%s@r%d", a.ID, b.ID, round),
		Players: [2]Player{a, b},
	}
}

// GeneratePairs builds the 3-round partner rotation for exactly 4 players.
//
// After shuffling the players into [a b c d] the three ways of splitting four
// players into two pairs are {ab|cd}, {ac|bd} and {ad|bc}, so every player
// partners each other player exactly once. The round order is shuffled too.
// The schedule must be generated once per evening and persisted.
func GeneratePairs(players []Player, rng *rand.Rand) ([][2]Pair, error) {
	if len(players) != PairsModePlayers {
		return nil, invalid("players", "pairs mode needs exactly %d players, got %d", PairsModePlayers, len(players))
	}
	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		if p.ID == "" {
			return nil, invalid("players", "player %q has no id", p.Name)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, invalid("players", "duplicate player id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	order := slices.Clone(players)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	a, b, c, d := order[0], order[1], order[2], order[3]

	partitions := [][2][2]Player{
		{{a, b}, {c, d}},
		{{a, c}, {b, d}},
		{{a, d}, {b, c}},
	}
	rng.Shuffle(len(partitions), func(i, j int) { partitions[i], partitions[j] = partitions[j], partitions[i] })

	schedule := make([][2]Pair, len(partitions))
	for i, p := range partitions {
		round := i + 1
		schedule[i] = [2]Pair{
			NewPair(p[0][0], p[0][1], round),
			NewPair(p[1][0], p[1][1], round),
		}
	}
	return schedule, nil
}
