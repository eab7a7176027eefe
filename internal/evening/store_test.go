package evening_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/mauv0809/club-evenings/internal/catalog"
	"github.com/mauv0809/club-evenings/internal/database"
	"github.com/mauv0809/club-evenings/internal/evening"
	"github.com/mauv0809/club-evenings/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (evening.Store, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return evening.NewStore(db), teardown
}

func TestStoreRoundTripsSnapshots(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	clubs := testClubs(1, 2)
	e := newPairsEvening(t, 2)
	e = reduceAll(t, e, evening.Event{Type: evening.EventSelectClubs, MatchID: openMatchID(t, e), Clubs: [2]catalog.Club{clubs[0], clubs[1]}})
	e = win(t, e, score(3, 1))
	require.NoError(t, store.Create(e))

	got, err := store.Get(e.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(e, *got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("snapshot changed in storage (-want +got):\n%s", diff)
	}

	e = win(t, e, score(1, 0))
	require.NoError(t, store.Save(e))
	got, err = store.Get(e.ID)
	require.NoError(t, err)
	assert.True(t, got.Rounds[0].Completed)
}

func TestStoreSinglesSnapshot(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	players, err := evening.PlayersFromNames([]string{"Anna", "Bo", "Cleo"})
	require.NoError(t, err)
	e, err := tournament.CreateSinglesEvening(players, 2, catalog.New(testClubs(2, 4)), newRNG(1))
	require.NoError(t, err)
	e.ID, e.Date = "s1", "2026-10-17"
	require.NoError(t, store.Create(e))

	got, err := store.Get("s1")
	require.NoError(t, err)
	if diff := cmp.Diff(e, *got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("singles snapshot changed in storage (-want +got):\n%s", diff)
	}
}

func TestStoreNotFound(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, evening.ErrNotFound)
	_, err = store.Latest()
	assert.ErrorIs(t, err, evening.ErrNotFound)
	err = store.Save(tournament.Evening{ID: "missing"})
	assert.ErrorIs(t, err, evening.ErrNotFound)
}

func TestStoreListAndLatest(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	first := newPairsEvening(t, 2)
	second := newPairsEvening(t, 2)
	second.ID = "ev2"
	second.Completed = true
	require.NoError(t, store.Create(first))
	require.NoError(t, store.Create(second))

	all, err := store.List(false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ev2", all[0].ID, "newest first")
	assert.Equal(t, []string{"Anna", "Bo", "Cleo", "Dan"}, all[1].Players)
	assert.Equal(t, tournament.TypePairs, all[1].Type)

	active, err := store.List(true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "ev1", active[0].ID)

	latest, err := store.Latest()
	require.NoError(t, err)
	assert.Equal(t, "ev2", latest.ID)

	store.Clear()
	all, err = store.List(false)
	require.NoError(t, err)
	assert.Empty(t, all)
}
