package tournament_test

import (
	"testing"

	"github.com/mauv0809/club-evenings/internal/catalog"
	"github.com/mauv0809/club-evenings/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSinglesEvening(t *testing.T) {
	e, err := tournament.CreateSinglesEvening(players(3), 2, fakeCatalog(1, 5), newRNG(3))
	require.NoError(t, err)
	assert.Equal(t, tournament.TypeSingles, e.Type)

	issued := catalog.NewIDSet()
	for _, p := range e.Players {
		inv := e.ClubInventory[p.ID]
		require.Len(t, inv, 2)
		for _, c := range inv {
			assert.GreaterOrEqual(t, c.Stars, 4.0)
			assert.False(t, issued.Has(c.ID), "inventories must not overlap when supply allows")
			issued.Add(c.ID)
		}
	}

	require.Len(t, e.GameSequence, 6)
	meetings := map[[2]string]int{}
	for _, g := range e.GameSequence {
		meetings[[2]string{g.Players[0].ID, g.Players[1].ID}]++
		assert.Equal(t, e.ClubInventory[g.Players[0].ID][g.ClubIndex], g.Clubs[0])
		assert.Equal(t, e.ClubInventory[g.Players[1].ID][g.ClubIndex], g.Clubs[1])
	}
	for pair, n := range meetings {
		assert.Equal(t, 2, n, "%v meet once per club index", pair)
	}
}

func TestCreateSinglesEveningSmallCatalog(t *testing.T) {
	clubs := catalog.New([]catalog.Club{
		{ID: "a", Stars: 5}, {ID: "b", Stars: 4.5}, {ID: "c", Stars: 4}, {ID: "low", Stars: 3},
	})

	e, err := tournament.CreateSinglesEvening(players(4), 2, clubs, newRNG(1))
	require.NoError(t, err)
	for _, p := range e.Players {
		inv := e.ClubInventory[p.ID]
		require.Len(t, inv, 2)
		assert.NotEqual(t, inv[0].ID, inv[1].ID, "distinct within one inventory")
	}

	_, err = tournament.CreateSinglesEvening(players(2), 4, clubs, newRNG(1))
	assert.ErrorIs(t, err, tournament.ErrNotEnoughClubs)
	_, err = tournament.CreateSinglesEvening(players(1), 1, clubs, newRNG(1))
	assert.Error(t, err)
	_, err = tournament.CreateSinglesEvening(players(2), 0, clubs, newRNG(1))
	assert.Error(t, err)
}

func TestSinglesLiveConsumption(t *testing.T) {
	e, err := tournament.CreateSinglesEvening(players(3), 2, fakeCatalog(2, 5), newRNG(9))
	require.NoError(t, err)
	require.NotEqual(t, -1, tournament.FindNextPlayableGameIndex(e))

	// p1 plays both of its clubs against p2.
	for _, g := range e.GameSequence {
		if g.Players[0].ID != "p1" || g.Players[1].ID != "p2" {
			continue
		}
		e, err = tournament.SubmitSinglesResult(e, g.ID, [2]string{}, [2]int{2, 1})
		require.NoError(t, err)
	}
	assert.Empty(t, tournament.AvailableClubs(e, "p1"))
	assert.Empty(t, tournament.AvailableClubs(e, "p2"))
	assert.Len(t, tournament.AvailableClubs(e, "p3"), 2)

	// Every remaining game involves an exhausted player, so nothing is playable.
	assert.Equal(t, -1, tournament.FindNextPlayableGameIndex(e))
	assert.True(t, tournament.IsSinglesComplete(e))
	assert.Len(t, e.GameSequence, 6, "unplayable games are skipped, not removed")

	for _, g := range e.GameSequence {
		if !g.Completed {
			_, err = tournament.SubmitSinglesResult(e, g.ID, [2]string{}, [2]int{0, 0})
			assert.ErrorIs(t, err, tournament.ErrGameNotPlayable)
		}
	}
}

func TestSubmitSinglesResultClubChoice(t *testing.T) {
	e, err := tournament.CreateSinglesEvening(players(2), 2, fakeCatalog(4, 3), newRNG(4))
	require.NoError(t, err)
	g := e.GameSequence[0]
	mine := e.ClubInventory[g.Players[0].ID]
	theirs := e.ClubInventory[g.Players[1].ID]

	_, err = tournament.SubmitSinglesResult(e, g.ID, [2]string{theirs[0].ID, ""}, [2]int{1, 0})
	assert.ErrorIs(t, err, tournament.ErrClubUnavailable)
	_, err = tournament.SubmitSinglesResult(e, "missing", [2]string{}, [2]int{1, 0})
	assert.ErrorIs(t, err, tournament.ErrGameNotFound)

	// Pick the club not proposed by the schedule.
	other := mine[1-g.ClubIndex]
	next, err := tournament.SubmitSinglesResult(e, g.ID, [2]string{other.ID, ""}, [2]int{3, 1})
	require.NoError(t, err)
	assert.Equal(t, other, next.GameSequence[0].Clubs[0])
	assert.Equal(t, g.Players[0].ID, next.GameSequence[0].Winner)
	assert.False(t, e.GameSequence[0].Completed, "input evening is untouched")

	avail := tournament.AvailableClubs(next, g.Players[0].ID)
	require.Len(t, avail, 1)
	assert.Equal(t, mine[g.ClubIndex], avail[0])

	_, err = tournament.SubmitSinglesResult(next, g.ID, [2]string{}, [2]int{1, 0})
	assert.ErrorIs(t, err, tournament.ErrMatchCompleted)
}
