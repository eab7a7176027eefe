package catalog

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() Catalog {
	return New([]Club{
		{ID: "a5", Stars: 5},
		{ID: "b5", Stars: 5},
		{ID: "c45", Stars: 4.5},
		{ID: "d4", Stars: 4},
		{ID: "e35", Stars: 3.5},
		{ID: "n5", Stars: 5, IsNational: true},
		{ID: "p5", Stars: 5, IsPrime: true},
		{ID: "a5", Stars: 1}, // duplicate id is ignored
	})
}

func TestValidStars(t *testing.T) {
	for _, s := range []float64{0.5, 1, 3.5, 4, 4.5, 5} {
		assert.True(t, ValidStars(s), "%v should be valid", s)
	}
	for _, s := range []float64{0, 0.25, 4.2, 5.5, -1} {
		assert.False(t, ValidStars(s), "%v should be invalid", s)
	}
}

func TestQueries(t *testing.T) {
	c := fixture()
	assert.Equal(t, 7, c.Len())

	club, ok := c.Get("a5")
	require.True(t, ok)
	assert.Equal(t, 5.0, club.Stars, "first occurrence wins")

	assert.Len(t, c.ByStars(5), 4)
	assert.Len(t, c.Nationals(), 1)
	assert.Len(t, c.Primes(), 1)
	assert.Equal(t, []float64{5, 4.5, 4, 3.5}, c.StarLevels())
}

func TestRandomPickHonoursExclusion(t *testing.T) {
	c := fixture()
	rng := rand.New(rand.NewPCG(1, 2))
	exclude := NewIDSet("a5", "n5", "p5")

	for i := 0; i < 50; i++ {
		club, ok := c.RandomPick(rng, exclude, func(c Club) bool { return c.Stars == 5 })
		require.True(t, ok)
		assert.Equal(t, "b5", club.ID)
	}

	exclude.Add("b5")
	_, ok := c.RandomPick(rng, exclude, func(c Club) bool { return c.Stars == 5 })
	assert.False(t, ok)
}

func TestHighestAvailableStars(t *testing.T) {
	c := fixture()
	stars, ok := c.HighestAvailableStars(NewIDSet("a5", "b5", "n5", "p5"), 4, nil)
	require.True(t, ok)
	assert.Equal(t, 4.5, stars)

	_, ok = c.HighestAvailableStars(NewIDSet("a5", "b5", "n5", "p5", "c45", "d4"), 4, nil)
	assert.False(t, ok, "3.5 stars is below the floor")
}

func TestIDSet(t *testing.T) {
	var nilSet IDSet
	assert.False(t, nilSet.Has("x"))

	s := NewIDSet("b", "a")
	clone := s.Clone()
	clone.Add("c")
	assert.Equal(t, []string{"a", "b"}, s.Sorted())
	assert.Equal(t, []string{"a", "b", "c"}, clone.Sorted())
}
