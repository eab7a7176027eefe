package pool_test

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/mauv0809/club-evenings/internal/catalog"
	"github.com/mauv0809/club-evenings/internal/pool"
	"github.com/mauv0809/club-evenings/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 42))
}

// clubs builds perLevel clubs for each rating, plus a few national and prime
// teams rated 5 stars.
func clubs(seed uint64, perLevel int, levels ...float64) catalog.Catalog {
	faker := gofakeit.New(seed)
	var out []catalog.Club
	for _, stars := range levels {
		for i := 0; i < perLevel; i++ {
			out = append(out, catalog.Club{
				ID:     fmt.Sprintf("club-%v-%d", stars, i),
				Name:   faker.Company(),
				Stars:  stars,
				League: faker.Country(),
			})
		}
	}
	for i := 0; i < 3; i++ {
		out = append(out,
			catalog.Club{ID: fmt.Sprintf("nat-%d", i), Name: faker.Country(), Stars: 5, IsNational: true},
			catalog.Club{ID: fmt.Sprintf("prime-%d", i), Name: faker.Name(), Stars: 5, IsPrime: true},
		)
	}
	return catalog.New(out)
}

var fourWins = pool.DistributionConfig{
	Tiers: []pool.Tier{
		{Stars: 5, Count: 3},
		{Stars: 4.5, Count: 2},
		{Stars: 4, Count: 1},
	},
	IncludePrime: true,
	PrimeCount:   1,
}

func assertDisjoint(t *testing.T, pools [2][]catalog.Club, exclude, recycled []string) {
	t.Helper()
	seen := catalog.NewIDSet()
	for _, p := range pools {
		for _, c := range p {
			assert.False(t, seen.Has(c.ID), "club %s appears twice in one round", c.ID)
			seen.Add(c.ID)
		}
	}
	excluded := catalog.NewIDSet(exclude...)
	marked := catalog.NewIDSet(recycled...)
	for id := range seen {
		if excluded.Has(id) {
			assert.True(t, marked.Has(id), "excluded club %s must be marked recycled", id)
		}
	}
}

func TestGeneratePoolsDisjointness(t *testing.T) {
	cat := clubs(1, 6, 5, 4.5, 4, 3.5)
	for seed := uint64(0); seed < 40; seed++ {
		rng := newRNG(seed)
		var exclude []string
		for _, c := range cat.Clubs() {
			if rng.IntN(3) == 0 {
				exclude = append(exclude, c.ID)
			}
		}
		res := pool.GeneratePools(cat, exclude, fourWins, 4, rng)
		assertDisjoint(t, res.Pools, exclude, res.RecycledClubIDs)

		res = pool.GenerateTeamPools(cat, exclude, 4, rng)
		assertDisjoint(t, res.Pools, exclude, res.RecycledClubIDs)
	}
}

func TestGeneratePoolsHonoursTiers(t *testing.T) {
	cat := clubs(2, 10, 5, 4.5, 4, 3.5)
	res := pool.GeneratePools(cat, nil, fourWins, 4, newRNG(3))

	require.Equal(t, 7, res.Target)
	assert.False(t, res.Short())
	assert.Empty(t, res.RecycledClubIDs)
	for side, p := range res.Pools {
		require.Len(t, p, 7, "side %d", side)
		assert.True(t, p[0].IsPrime, "prime slot is drawn first")
		counts := map[float64]int{}
		for _, c := range p[1:] {
			assert.False(t, c.IsPrime)
			assert.False(t, c.IsNational, "tiers without includeNational draw club sides only")
			counts[c.Stars]++
		}
		assert.Equal(t, map[float64]int{5: 3, 4.5: 2, 4: 1}, counts)
	}
}

func TestGeneratePoolsIncludeNational(t *testing.T) {
	cat := catalog.New([]catalog.Club{
		{ID: "n1", Stars: 5, IsNational: true},
		{ID: "n2", Stars: 5, IsNational: true},
	})
	cfg := pool.DistributionConfig{Tiers: []pool.Tier{{Stars: 5, Count: 1, IncludeNational: true}}}
	res := pool.GeneratePools(cat, nil, cfg, 1, newRNG(1))
	assert.Len(t, res.Pools[0], 1)
	assert.Len(t, res.Pools[1], 1)
	assert.False(t, res.Short())
}

func TestGeneratePoolsTierFallback(t *testing.T) {
	cat := catalog.New([]catalog.Club{
		{ID: "a", Stars: 5},
		{ID: "b", Stars: 4.5},
		{ID: "c", Stars: 4.5},
		{ID: "d", Stars: 4},
		{ID: "low", Stars: 3},
	})
	cfg := pool.DistributionConfig{Tiers: []pool.Tier{{Stars: 5, Count: 2}}}
	res := pool.GeneratePools(cat, nil, cfg, 2, newRNG(5))

	all := append(append([]catalog.Club{}, res.Pools[0]...), res.Pools[1]...)
	require.Len(t, all, 4)
	ids := catalog.NewIDSet()
	for _, c := range all {
		ids.Add(c.ID)
		assert.GreaterOrEqual(t, c.Stars, 4.0, "fallback never drops below 4 stars")
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids.Sorted())
	assert.True(t, res.Short(), "target is 3 per side")
}

func TestGeneratePoolsRecycling(t *testing.T) {
	cat := catalog.New([]catalog.Club{
		{ID: "a", Stars: 5},
		{ID: "b", Stars: 5},
		{ID: "c", Stars: 4},
	})
	exclude := []string{"a", "b", "c"}
	cfg := pool.DistributionConfig{Tiers: []pool.Tier{{Stars: 5, Count: 2}}}
	res := pool.GeneratePools(cat, exclude, cfg, 2, newRNG(9))

	assertDisjoint(t, res.Pools, exclude, res.RecycledClubIDs)
	assert.Equal(t, []string{"a", "b", "c"}, res.RecycledClubIDs)
	assert.Equal(t, 3, len(res.Pools[0])+len(res.Pools[1]))
	assert.True(t, res.Short())
}

func TestGenerateTeamPools(t *testing.T) {
	cat := clubs(4, 8, 5, 4.5, 4, 3.5, 3)
	for seed := uint64(0); seed < 20; seed++ {
		res := pool.GenerateTeamPools(cat, nil, 3, newRNG(seed))
		require.False(t, res.Short())
		for _, p := range res.Pools {
			require.Len(t, p, 5)
			assert.Equal(t, 5.0, p[0].Stars)
			assert.Equal(t, 5.0, p[1].Stars)
			for _, c := range p {
				assert.False(t, c.IsNational || c.IsPrime)
			}
		}

		var sums [2]float64
		for side, p := range res.Pools {
			for _, c := range p {
				sums[side] += c.Stars
			}
		}
		assert.InDelta(t, sums[0], sums[1], 1.0, "greedy balancer keeps the star sums close")
	}
}

func TestGenerateTeamPoolsTopTierFallback(t *testing.T) {
	cat := catalog.New([]catalog.Club{
		{ID: "a", Stars: 5},
		{ID: "b", Stars: 4.5},
		{ID: "c", Stars: 4.5},
		{ID: "d", Stars: 4},
		{ID: "e", Stars: 3.5},
		{ID: "f", Stars: 3},
	})
	res := pool.GenerateTeamPools(cat, nil, 2, newRNG(1))
	assert.False(t, res.Short())
	assert.Equal(t, 6, len(res.Pools[0])+len(res.Pools[1]))
	assertDisjoint(t, res.Pools, nil, res.RecycledClubIDs)
}

func TestGenerateBalancedDeciderTeams(t *testing.T) {
	cat := clubs(5, 4, 5, 4.5, 4, 3.5)
	for seed := uint64(0); seed < 30; seed++ {
		res, err := pool.GenerateBalancedDeciderTeams(cat, nil, pool.DefaultDeciderOptions, newRNG(seed))
		require.NoError(t, err)
		a, b := res.Clubs[0], res.Clubs[1]
		assert.NotEqual(t, a.ID, b.ID)
		assert.GreaterOrEqual(t, a.Stars, 4.0)
		assert.GreaterOrEqual(t, b.Stars, 4.0)
		assert.True(t, res.WithinDiff)
		assert.Equal(t, a.Stars, b.Stars, "an equal rating is always available here")
	}
}

func TestDeciderClosestFallback(t *testing.T) {
	cat := catalog.New([]catalog.Club{
		{ID: "top", Stars: 5},
		{ID: "mid", Stars: 3},
		{ID: "low", Stars: 1},
	})
	res, err := pool.GenerateBalancedDeciderTeams(cat, nil, pool.DeciderOptions{MinStars: 1, MaxDiff: 0.5}, newRNG(2))
	require.NoError(t, err)
	assert.False(t, res.WithinDiff)
	assert.NotEqual(t, res.Clubs[0].ID, res.Clubs[1].ID)
}

func TestDeciderStrictBound(t *testing.T) {
	cat := catalog.New([]catalog.Club{
		{ID: "a", Stars: 5},
		{ID: "b", Stars: 4},
	})
	for seed := uint64(0); seed < 10; seed++ {
		res, err := pool.GenerateBalancedDeciderTeams(cat, nil, pool.DeciderOptions{MinStars: 4, MaxDiff: 0}, newRNG(seed))
		require.NoError(t, err)
		assert.False(t, res.WithinDiff, "5 and 4 stars are not equal")
	}

	res, err := pool.GenerateBalancedDeciderTeams(cat, nil, pool.DeciderOptions{MinStars: 4, MaxDiff: -1}, newRNG(1))
	require.NoError(t, err)
	assert.True(t, res.WithinDiff, "a negative bound uses the default of one star")
}

func TestDeciderRecyclesAndExhausts(t *testing.T) {
	cat := catalog.New([]catalog.Club{
		{ID: "a", Stars: 5},
		{ID: "b", Stars: 4.5},
		{ID: "weak", Stars: 2},
	})
	res, err := pool.GenerateBalancedDeciderTeams(cat, []string{"a"}, pool.DefaultDeciderOptions, newRNG(1))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, []string{res.Clubs[0].ID, res.Clubs[1].ID})
	assert.Equal(t, []string{"a"}, res.RecycledClubIDs)

	_, err = pool.GenerateBalancedDeciderTeams(catalog.New([]catalog.Club{{ID: "a", Stars: 5}}), nil, pool.DefaultDeciderOptions, newRNG(1))
	assert.ErrorIs(t, err, pool.ErrCatalogExhausted)
}

func TestGenerateFirstPickPools(t *testing.T) {
	cat := clubs(6, 10, 5, 4.5, 4)

	t.Run("config path", func(t *testing.T) {
		res, err := pool.GenerateFirstPickPools(cat, nil, &fourWins, 4, 1, "club-4.5-3", newRNG(1))
		require.NoError(t, err)
		assert.Equal(t, "club-4.5-3", res.Pools[1][0].ID)
		assert.Len(t, res.Pools[0], 7)
		assert.Len(t, res.Pools[1], 7)
		assertDisjoint(t, res.Pools, nil, res.RecycledClubIDs)

		var halfStars int
		for _, c := range res.Pools[1] {
			if c.Stars == 4.5 {
				halfStars++
			}
		}
		assert.Equal(t, 2, halfStars, "the chosen club fills a 4.5 star slot")
	})

	t.Run("balancing path", func(t *testing.T) {
		res, err := pool.GenerateFirstPickPools(cat, nil, nil, 3, 0, "club-4-0", newRNG(2))
		require.NoError(t, err)
		assert.Equal(t, "club-4-0", res.Pools[0][0].ID)
		assert.Len(t, res.Pools[0], 5)
		assert.Len(t, res.Pools[1], 5)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := pool.GenerateFirstPickPools(cat, nil, nil, 3, 2, "club-4-0", newRNG(1))
		var invalid *tournament.InvalidInputError
		assert.True(t, errors.As(err, &invalid))

		_, err = pool.GenerateFirstPickPools(cat, nil, nil, 3, 0, "nope", newRNG(1))
		assert.ErrorIs(t, err, pool.ErrUnknownClub)

		_, err = pool.GenerateFirstPickPools(cat, []string{"club-4-0"}, nil, 3, 0, "club-4-0", newRNG(1))
		assert.ErrorIs(t, err, pool.ErrClubExcluded)
	})
}

func TestSlots(t *testing.T) {
	assert.Equal(t, 7, fourWins.Slots())
	assert.Equal(t, 7, pool.TargetSize(4))
	assert.Equal(t, 0, pool.TargetSize(0))
}
