package tournament

import (
	"github.com/mauv0809/club-evenings/internal/catalog"
)

// EveningType distinguishes the 4-player pairs format from the singles format.
type EveningType string

const (
	TypePairs   EveningType = "pairs"
	TypeSingles EveningType = "singles"
)

// Player is identified by a stable slug derived from the name.
type Player struct {
	ID   string `json:"id" msgpack:"id"`
	Name string `json:"name" msgpack:"name"`
}

// Pair is a 2-player partnership active for exactly one round.
type Pair struct {
	ID      string    `json:"id" msgpack:"id"`
	Players [2]Player `json:"players" msgpack:"players"`
}

// Match is one game between the two pairs of a round.
type Match struct {
	ID        string          `json:"id" msgpack:"id"`
	Pairs     [2]Pair         `json:"pairs" msgpack:"pairs"`
	Clubs     [2]catalog.Club `json:"clubs" msgpack:"clubs"`
	Score     *[2]int         `json:"score,omitempty" msgpack:"score,omitempty"`
	Winner    string          `json:"winner,omitempty" msgpack:"winner,omitempty"`
	Completed bool            `json:"completed" msgpack:"completed"`
	IsDecider bool            `json:"isDecider,omitempty" msgpack:"is_decider,omitempty"`
}

// Round is a first-to-winsToComplete contest between two fixed pairs.
type Round struct {
	ID              string             `json:"id" msgpack:"id"`
	Number          int                `json:"number" msgpack:"number"`
	Pairs           [2]Pair            `json:"pairs" msgpack:"pairs"`
	Matches         []Match            `json:"matches" msgpack:"matches"`
	Completed       bool               `json:"completed" msgpack:"completed"`
	PairScores      map[string]int     `json:"pairScores" msgpack:"pair_scores"`
	IsDeciderMatch  bool               `json:"isDeciderMatch,omitempty" msgpack:"is_decider_match,omitempty"`
	TeamPools       *[2][]catalog.Club `json:"teamPools,omitempty" msgpack:"team_pools,omitempty"`
	RecycledClubIDs []string           `json:"recycledClubIds,omitempty" msgpack:"recycled_club_ids,omitempty"`
}

// SinglesGame is a 1v1 game of a singles evening. ClubIndex is the inventory
// slot the schedule proposes for both players.
type SinglesGame struct {
	ID        string          `json:"id" msgpack:"id"`
	Players   [2]Player       `json:"players" msgpack:"players"`
	ClubIndex int             `json:"clubIndex" msgpack:"club_index"`
	Clubs     [2]catalog.Club `json:"clubs" msgpack:"clubs"`
	Score     *[2]int         `json:"score,omitempty" msgpack:"score,omitempty"`
	Winner    string          `json:"winner,omitempty" msgpack:"winner,omitempty"`
	Completed bool            `json:"completed" msgpack:"completed"`
}

// Evening is the aggregate root of one tournament session. It owns every
// round, pair, match and game it references.
type Evening struct {
	ID             string      `json:"id" msgpack:"id"`
	Date           string      `json:"date" msgpack:"date"`
	Type           EveningType `json:"type" msgpack:"type"`
	Players        []Player    `json:"players" msgpack:"players"`
	Rounds         []Round     `json:"rounds" msgpack:"rounds"`
	WinsToComplete int         `json:"winsToComplete" msgpack:"wins_to_complete"`
	Completed      bool        `json:"completed" msgpack:"completed"`
	PairSchedule   [][2]Pair   `json:"pairSchedule,omitempty" msgpack:"pair_schedule,omitempty"`
	Rankings       *Rankings   `json:"rankings,omitempty" msgpack:"rankings,omitempty"`

	// Singles only.
	ClubsPerPlayer int                       `json:"clubsPerPlayer,omitempty" msgpack:"clubs_per_player,omitempty"`
	ClubInventory  map[string][]catalog.Club `json:"clubInventory,omitempty" msgpack:"club_inventory,omitempty"`
	GameSequence   []SinglesGame             `json:"gameSequence,omitempty" msgpack:"game_sequence,omitempty"`
}

// PlayerStats aggregates one player's results over an evening.
type PlayerStats struct {
	PlayerID         string `json:"playerId"`
	PlayerName       string `json:"playerName"`
	MatchesPlayed    int    `json:"matchesPlayed"`
	Wins             int    `json:"wins"`
	Draws            int    `json:"draws"`
	Losses           int    `json:"losses"`
	GoalsFor         int    `json:"goalsFor"`
	GoalsAgainst     int    `json:"goalsAgainst"`
	CurrentStreak    int    `json:"currentStreak"`
	LongestWinStreak int    `json:"longestWinStreak"`
	Points           int    `json:"points"`
}

// GoalDifference is goals for minus goals against.
func (s PlayerStats) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}

// Rankings buckets player ids by distinct point level.
type Rankings struct {
	Alpha []string `json:"alpha" msgpack:"alpha"`
	Beta  []string `json:"beta" msgpack:"beta"`
	Gamma []string `json:"gamma" msgpack:"gamma"`
	Delta []string `json:"delta" msgpack:"delta"`
}
