package tournament

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/mauv0809/club-evenings/internal/catalog"
)

// SinglesMinStars is the lowest rating issued into a singles inventory.
const SinglesMinStars = 4.0

func singlesEligible(c catalog.Club) bool {
	return c.Stars >= SinglesMinStars
}

// CreateSinglesEvening issues every player a personal inventory of
// clubsPerPlayer distinct clubs rated 4 stars or more and generates the game
// sequence. Inventories do not overlap when the catalog has enough clubs for
// everyone; otherwise clubs are only distinct within one inventory.
// The caller assigns the evening id and date.
func CreateSinglesEvening(players []Player, clubsPerPlayer int, clubs catalog.Catalog, rng *rand.Rand) (Evening, error) {
	if len(players) < 2 {
		return Evening{}, invalid("players", "singles needs at least 2 players, got %d", len(players))
	}
	if clubsPerPlayer < 1 {
		return Evening{}, invalid("clubsPerPlayer", "must be at least 1, got %d", clubsPerPlayer)
	}
	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		if _, dup := seen[p.ID]; dup || p.ID == "" {
			return Evening{}, invalid("players", "missing or duplicate player id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	eligible := clubs.Filter(singlesEligible)
	if len(eligible) < clubsPerPlayer {
		return Evening{}, fmt.Errorf("%w: need %d, catalog has %d", ErrNotEnoughClubs, clubsPerPlayer, len(eligible))
	}
	shared := len(eligible) >= clubsPerPlayer*len(players)

	inventory := make(map[string][]catalog.Club, len(players))
	taken := catalog.NewIDSet()
	for _, p := range players {
		exclude := taken
		if !shared {
			exclude = catalog.NewIDSet()
		}
		for range clubsPerPlayer {
			club, ok := clubs.RandomPick(rng, exclude, singlesEligible)
			if !ok {
				return Evening{}, fmt.Errorf("%w: inventory for %s", ErrNotEnoughClubs, p.ID)
			}
			exclude.Add(club.ID)
			inventory[p.ID] = append(inventory[p.ID], club)
		}
	}

	return Evening{
		Type:           TypeSingles,
		Players:        slices.Clone(players),
		Rounds:         []Round{},
		ClubsPerPlayer: clubsPerPlayer,
		ClubInventory:  inventory,
		GameSequence:   GenerateSinglesGameSequence(players, inventory, clubsPerPlayer, rng),
	}, nil
}

// GenerateSinglesGameSequence emits one game per club index and unordered
// player pair, proposing each player's club at that index, then shuffles the
// whole list. Every player meets every other player clubsPerPlayer times.
func GenerateSinglesGameSequence(players []Player, inventory map[string][]catalog.Club, clubsPerPlayer int, rng *rand.Rand) []SinglesGame {
	var games []SinglesGame
	for k := range clubsPerPlayer {
		for i := 0; i < len(players); i++ {
			for j := i + 1; j < len(players); j++ {
				a, b := players[i], players[j]
				games = append(games, SinglesGame{
					ID:        fmt.Sprintf("g%d-%s-%s", k, a.ID, b.ID),
					Players:   [2]Player{a, b},
					ClubIndex: k,
					Clubs:     [2]catalog.Club{clubAt(inventory[a.ID], k), clubAt(inventory[b.ID], k)},
				})
			}
		}
	}
	rng.Shuffle(len(games), func(i, j int) { games[i], games[j] = games[j], games[i] })
	return games
}

func clubAt(clubs []catalog.Club, i int) catalog.Club {
	if i < len(clubs) {
		return clubs[i]
	}
	return catalog.Club{}
}

func usedClubs(e Evening, playerID string) catalog.IDSet {
	used := catalog.NewIDSet()
	for _, g := range e.GameSequence {
		if !g.Completed {
			continue
		}
		for side, p := range g.Players {
			if p.ID == playerID && !g.Clubs[side].IsZero() {
				used.Add(g.Clubs[side].ID)
			}
		}
	}
	return used
}

// AvailableClubs returns the clubs of a player's inventory not yet used in a
// completed game.
func AvailableClubs(e Evening, playerID string) []catalog.Club {
	used := usedClubs(e, playerID)
	var out []catalog.Club
	for _, c := range e.ClubInventory[playerID] {
		if !used.Has(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

func gamePlayable(e Evening, g SinglesGame) bool {
	return !g.Completed &&
		len(AvailableClubs(e, g.Players[0].ID)) > 0 &&
		len(AvailableClubs(e, g.Players[1].ID)) > 0
}

// FindNextPlayableGameIndex returns the first unfinished game whose players
// both still have a club, or -1. Unplayable games are skipped, not removed.
func FindNextPlayableGameIndex(e Evening) int {
	return slices.IndexFunc(e.GameSequence, func(g SinglesGame) bool { return gamePlayable(e, g) })
}

// IsSinglesComplete reports whether no playable game remains.
func IsSinglesComplete(e Evening) bool {
	return FindNextPlayableGameIndex(e) < 0
}

// SubmitSinglesResult records a game played with the given clubs. An empty
// club id keeps the proposed club when it is still available, else the
// player's first available club.
func SubmitSinglesResult(e Evening, gameID string, clubIDs [2]string, score [2]int) (Evening, error) {
	if err := validateScore(score); err != nil {
		return e, err
	}
	i := slices.IndexFunc(e.GameSequence, func(g SinglesGame) bool { return g.ID == gameID })
	if i < 0 {
		return e, ErrGameNotFound
	}
	g := e.GameSequence[i]
	if g.Completed {
		return e, ErrMatchCompleted
	}
	if !gamePlayable(e, g) {
		return e, ErrGameNotPlayable
	}

	var chosen [2]catalog.Club
	for side, p := range g.Players {
		available := AvailableClubs(e, p.ID)
		want := clubIDs[side]
		if want == "" {
			want = g.Clubs[side].ID
			if !slices.ContainsFunc(available, func(c catalog.Club) bool { return c.ID == want }) {
				want = available[0].ID
			}
		}
		j := slices.IndexFunc(available, func(c catalog.Club) bool { return c.ID == want })
		if j < 0 {
			return e, fmt.Errorf("%w: %s cannot play %q", ErrClubUnavailable, p.ID, want)
		}
		chosen[side] = available[j]
	}

	out := e.Clone()
	game := &out.GameSequence[i]
	game.Clubs = chosen
	s := score
	game.Score = &s
	game.Completed = true
	switch {
	case score[0] > score[1]:
		game.Winner = game.Players[0].ID
	case score[1] > score[0]:
		game.Winner = game.Players[1].ID
	default:
		game.Winner = ""
	}
	return out, nil
}
