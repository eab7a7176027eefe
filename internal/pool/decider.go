package pool

import (
	"math"
	"math/rand/v2"

	"github.com/mauv0809/club-evenings/internal/catalog"
)

// GenerateBalancedDeciderTeams picks two clubs for a decider match. The first
// is random among clubs rated opts.MinStars or more. The second must be
// within opts.MaxDiff stars of it, preferring an exact match; failing that the
// closest rating wins. When fresh supply runs out, excluded clubs are
// recycled. ErrCatalogExhausted is returned only when two clubs cannot be
// found at all.
//
// A MinStars of zero or less falls back to the default floor. A MaxDiff of 0
// demands equal ratings; only a negative MaxDiff falls back to the default.
func GenerateBalancedDeciderTeams(cat catalog.Catalog, exclude []string, opts DeciderOptions, rng *rand.Rand) (DeciderResult, error) {
	if opts.MinStars <= 0 {
		opts.MinStars = DefaultDeciderOptions.MinStars
	}
	if opts.MaxDiff < 0 {
		opts.MaxDiff = DefaultDeciderOptions.MaxDiff
	}
	a := newAllocator(cat, exclude, rng)
	eligible := all(clubSide, starsAtLeast(opts.MinStars))

	first, recycled, ok := a.pickFrom(eligible)
	if !ok {
		return DeciderResult{}, ErrCatalogExhausted
	}
	a.take(0, first, recycled)

	candidates := a.cat.Candidates(a.banned, eligible)
	recycledSecond := false
	if len(candidates) == 0 {
		candidates = a.cat.Filter(func(c catalog.Club) bool {
			return a.excluded.Has(c.ID) && !a.inRound.Has(c.ID) && eligible(c)
		})
		recycledSecond = true
	}
	if len(candidates) == 0 {
		return DeciderResult{}, ErrCatalogExhausted
	}

	second, within := closestTo(first.Stars, opts.MaxDiff, candidates, rng)
	a.take(1, second, recycledSecond)

	return DeciderResult{
		Clubs:           [2]catalog.Club{first, second},
		RecycledClubIDs: a.recycled.Sorted(),
		WithinDiff:      within,
	}, nil
}

func (a *allocator) pickFrom(pred predicate) (catalog.Club, bool, bool) {
	if c, ok := a.pick(pred); ok {
		return c, false, true
	}
	if c, ok := a.recycle(pred); ok {
		return c, true, true
	}
	return catalog.Club{}, false, false
}

// closestTo prefers an equal rating, then any rating within maxDiff, then the
// smallest difference overall.
func closestTo(stars, maxDiff float64, candidates []catalog.Club, rng *rand.Rand) (catalog.Club, bool) {
	var equal, near []catalog.Club
	for _, c := range candidates {
		d := math.Abs(c.Stars - stars)
		if d == 0 {
			equal = append(equal, c)
		}
		if d <= maxDiff {
			near = append(near, c)
		}
	}
	if len(equal) > 0 {
		return equal[rng.IntN(len(equal))], true
	}
	if len(near) > 0 {
		return near[rng.IntN(len(near))], true
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if math.Abs(c.Stars-stars) < math.Abs(best.Stars-stars) {
			best = c
		}
	}
	return best, false
}
