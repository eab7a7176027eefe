package evening_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/mauv0809/club-evenings/internal/catalog"
	"github.com/mauv0809/club-evenings/internal/evening"
	"github.com/mauv0809/club-evenings/internal/tournament"
	"github.com/stretchr/testify/require"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 7))
}

func testClubs(seed uint64, perLevel int) []catalog.Club {
	faker := gofakeit.New(seed)
	var clubs []catalog.Club
	for _, stars := range []float64{5, 4.5, 4, 3.5} {
		for i := 0; i < perLevel; i++ {
			clubs = append(clubs, catalog.Club{
				ID:     fmt.Sprintf("club-%v-%d", stars, i),
				Name:   faker.City() + " United",
				Stars:  stars,
				League: faker.Country(),
			})
		}
	}
	return clubs
}

// newPairsEvening builds a fresh pairs evening the way the service does.
func newPairsEvening(t *testing.T, wins int) tournament.Evening {
	t.Helper()
	players, err := evening.PlayersFromNames([]string{"Anna", "Bo", "Cleo", "Dan"})
	require.NoError(t, err)
	schedule, err := tournament.GeneratePairs(players, newRNG(1))
	require.NoError(t, err)
	e := tournament.Evening{
		ID:             "ev1",
		Date:           "2026-10-17",
		Type:           tournament.TypePairs,
		Players:        players,
		Rounds:         []tournament.Round{},
		WinsToComplete: wins,
		PairSchedule:   schedule,
	}
	e, err = evening.OpenRound(e, 1)
	require.NoError(t, err)
	return e
}

func score(a, b int) *[2]int {
	return &[2]int{a, b}
}

func openMatchID(t *testing.T, e tournament.Evening) string {
	t.Helper()
	r := e.Rounds[len(e.Rounds)-1]
	i, ok := tournament.OpenMatch(r)
	require.True(t, ok, "round %d has no open match", r.Number)
	return r.Matches[i].ID
}

// reduceAll applies events in order and fails on the first rejection.
func reduceAll(t *testing.T, e tournament.Evening, events ...evening.Event) tournament.Evening {
	t.Helper()
	for _, ev := range events {
		var err error
		e, err = evening.Reduce(e, ev)
		require.NoError(t, err, "event %s", ev.Type)
	}
	return e
}

// win submits a result for the open match of the current round.
func win(t *testing.T, e tournament.Evening, s *[2]int) tournament.Evening {
	t.Helper()
	return reduceAll(t, e, evening.Event{Type: evening.EventSubmitResult, MatchID: openMatchID(t, e), Score: s})
}
