package catalog

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"
)

// MinStars and MaxStars bound a club's rating.
const (
	MinStars = 0.5
	MaxStars = 5.0
)

// ValidStars reports whether s is a half-integer rating within [MinStars, MaxStars].
func ValidStars(s float64) bool {
	return s >= MinStars && s <= MaxStars && math.Mod(s*2, 1) == 0
}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id is in the set. A nil set contains nothing.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts ids into the set.
func (s IDSet) Add(ids ...string) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Clone returns an independent copy of the set.
func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Sorted returns the ids in ascending order.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Catalog is an immutable snapshot of clubs with their current star ratings.
// Star overrides must already be applied when the snapshot is built.
type Catalog struct {
	clubs []Club
	index map[string]int
}

// New builds a catalog snapshot. Later duplicates of an id are ignored.
func New(clubs []Club) Catalog {
	c := Catalog{
		clubs: make([]Club, 0, len(clubs)),
		index: make(map[string]int, len(clubs)),
	}
	for _, club := range clubs {
		if _, dup := c.index[club.ID]; dup || club.ID == "" {
			continue
		}
		c.index[club.ID] = len(c.clubs)
		c.clubs = append(c.clubs, club)
	}
	return c
}

// Len returns the number of clubs in the snapshot.
func (c Catalog) Len() int {
	return len(c.clubs)
}

// Clubs returns a copy of every club in catalog order.
func (c Catalog) Clubs() []Club {
	return slices.Clone(c.clubs)
}

// Get looks a club up by id.
func (c Catalog) Get(id string) (Club, bool) {
	i, ok := c.index[id]
	if !ok {
		return Club{}, false
	}
	return c.clubs[i], true
}

// Filter returns the clubs matching pred, in catalog order.
func (c Catalog) Filter(pred func(Club) bool) []Club {
	var out []Club
	for _, club := range c.clubs {
		if pred == nil || pred(club) {
			out = append(out, club)
		}
	}
	return out
}

// ByStars returns every club rated exactly stars.
func (c Catalog) ByStars(stars float64) []Club {
	return c.Filter(func(club Club) bool { return club.Stars == stars })
}

// Nationals returns the national teams.
func (c Catalog) Nationals() []Club {
	return c.Filter(func(club Club) bool { return club.IsNational })
}

// Primes returns the prime clubs.
func (c Catalog) Primes() []Club {
	return c.Filter(func(club Club) bool { return club.IsPrime })
}

// StarLevels returns the distinct ratings present, highest first.
func (c Catalog) StarLevels() []float64 {
	seen := make(map[float64]struct{})
	var levels []float64
	for _, club := range c.clubs {
		if _, ok := seen[club.Stars]; ok {
			continue
		}
		seen[club.Stars] = struct{}{}
		levels = append(levels, club.Stars)
	}
	slices.SortFunc(levels, func(a, b float64) int { return cmp.Compare(b, a) })
	return levels
}

// Candidates returns the clubs matching pred whose ids are not in exclude.
func (c Catalog) Candidates(exclude IDSet, pred func(Club) bool) []Club {
	return c.Filter(func(club Club) bool {
		if exclude.Has(club.ID) {
			return false
		}
		return pred == nil || pred(club)
	})
}

// RandomPick draws one club uniformly among the candidates.
func (c Catalog) RandomPick(rng *rand.Rand, exclude IDSet, pred func(Club) bool) (Club, bool) {
	candidates := c.Candidates(exclude, pred)
	if len(candidates) == 0 {
		return Club{}, false
	}
	return candidates[rng.IntN(len(candidates))], true
}

// HighestAvailableStars returns the highest rating, not below floor, that still
// has a candidate club.
func (c Catalog) HighestAvailableStars(exclude IDSet, floor float64, pred func(Club) bool) (float64, bool) {
	best, found := 0.0, false
	for _, club := range c.Candidates(exclude, pred) {
		if club.Stars < floor {
			continue
		}
		if !found || club.Stars > best {
			best, found = club.Stars, true
		}
	}
	return best, found
}
