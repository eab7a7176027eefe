package catalog_test

import (
	"database/sql"
	"testing"

	"github.com/mauv0809/club-evenings/internal/catalog"
	"github.com/mauv0809/club-evenings/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (catalog.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return catalog.NewStore(db), db, dbTeardown
}

func testClubs() []catalog.Club {
	return []catalog.Club{
		{ID: "rma", Name: "Real Madrid", Stars: 5, League: "LaLiga"},
		{ID: "mci", Name: "Manchester City", Stars: 5, League: "Premier League"},
		{ID: "bvb", Name: "Borussia Dortmund", Stars: 4.5, League: "Bundesliga"},
		{ID: "fra", Name: "France", Stars: 5, League: "International", IsNational: true},
		{ID: "icons", Name: "Icons XI", Stars: 5, League: "Prime", IsPrime: true},
	}
}

func TestUpsertAndGetAllClubs(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertClubs(testClubs()))

	clubs, err := store.GetAllClubs()
	require.NoError(t, err)
	require.Len(t, clubs, 5)
	assert.Equal(t, "bvb", clubs[0].ID, "clubs should be ordered by id")

	// Upserting again updates in place.
	updated := testClubs()[:1]
	updated[0].Name = "Real Madrid CF"
	require.NoError(t, store.UpsertClubs(updated))

	club, err := store.GetClub("rma")
	require.NoError(t, err)
	assert.Equal(t, "Real Madrid CF", club.Name)

	clubs, err = store.GetAllClubs()
	require.NoError(t, err)
	assert.Len(t, clubs, 5)
}

func TestUpsertClubs_RejectsInvalidStars(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	err := store.UpsertClubs([]catalog.Club{{ID: "bad", Name: "Bad", Stars: 4.2}})
	assert.Error(t, err)

	clubs, err := store.GetAllClubs()
	require.NoError(t, err)
	assert.Empty(t, clubs, "a failed batch must not be partially written")
}

func TestStarOverridesAreAppliedToSnapshot(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertClubs(testClubs()))
	require.NoError(t, store.SetStarOverride("bvb", 5))

	snapshot, err := store.Snapshot()
	require.NoError(t, err)
	club, ok := snapshot.Get("bvb")
	require.True(t, ok)
	assert.Equal(t, 5.0, club.Stars)

	// The base catalog keeps the original rating.
	base, err := store.GetAllClubs()
	require.NoError(t, err)
	assert.Equal(t, 4.5, base[0].Stars)

	// A catalog reload does not wipe the override.
	require.NoError(t, store.UpsertClubs(testClubs()))
	club2, err := store.GetClub("bvb")
	require.NoError(t, err)
	assert.Equal(t, 5.0, club2.Stars)

	require.NoError(t, store.ClearStarOverride("bvb"))
	snapshot, err = store.Snapshot()
	require.NoError(t, err)
	club, _ = snapshot.Get("bvb")
	assert.Equal(t, 4.5, club.Stars)
}

func TestSetStarOverride_Invalid(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertClubs(testClubs()))
	assert.Error(t, store.SetStarOverride("rma", 6))
	assert.Error(t, store.SetStarOverride("rma", 0))
}

func TestGetClub_NotFound(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.GetClub("nope")
	assert.ErrorIs(t, err, catalog.ErrClubNotFound)
}

func TestClear(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertClubs(testClubs()))
	require.NoError(t, store.SetStarOverride("rma", 4))
	store.Clear()

	snapshot, err := store.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.Len())
}
