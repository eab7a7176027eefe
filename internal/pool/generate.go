package pool

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/mauv0809/club-evenings/internal/catalog"
	"github.com/mauv0809/club-evenings/internal/tournament"
)

type slot struct {
	pred predicate
	base predicate
}

// slots expands the config into one draw per pool position, prime slots first.
func (c DistributionConfig) slots() []slot {
	var out []slot
	if c.IncludePrime {
		for range c.PrimeCount {
			out = append(out, slot{pred: prime, base: clubSide})
		}
	}
	for _, t := range c.Tiers {
		base := predicate(clubSide)
		if t.IncludeNational {
			base = noPrime
		}
		for range t.Count {
			out = append(out, slot{pred: all(base, starsEq(t.Stars)), base: base})
		}
	}
	return out
}

func (a *allocator) fillSlots(slots [2][]slot) {
	for i := 0; i < max(len(slots[0]), len(slots[1])); i++ {
		for side := range 2 {
			if i < len(slots[side]) {
				a.draw(side, slots[side][i].pred, slots[side][i].base)
			}
		}
	}
}

// GeneratePools draws one pool per side of a round following cfg. Every drawn
// club is banned at once, so the pools never share a club. Exhausted tiers
// fall back to the highest remaining rating of at least 4 stars and then to
// recycling clubs from exclude that are not yet in either pool.
func GeneratePools(cat catalog.Catalog, exclude []string, cfg DistributionConfig, winsToComplete int, rng *rand.Rand) Result {
	a := newAllocator(cat, exclude, rng)
	s := cfg.slots()
	a.fillSlots([2][]slot{s, s})
	return a.result(TargetSize(winsToComplete))
}

// GenerateTeamPools is the balancing path used when no distribution config
// exists for winsToComplete. Each side gets two five-star clubs first; the
// pools are then topped up two clubs at a time, the stronger club going to
// the pool with the lower star sum.
func GenerateTeamPools(cat catalog.Catalog, exclude []string, winsToComplete int, rng *rand.Rand) Result {
	a := newAllocator(cat, exclude, rng)
	target := TargetSize(winsToComplete)
	a.fillBalanced(target)
	return a.result(target)
}

const topClubsPerSide = 2

func (a *allocator) fillBalanced(target int) {
	for i := range min(topClubsPerSide, target) {
		for side := range 2 {
			if len(a.pools[side]) <= i {
				a.drawTop(side)
			}
		}
	}

	for {
		need := [2]bool{len(a.pools[0]) < target, len(a.pools[1]) < target}
		if !need[0] && !need[1] {
			return
		}
		lower := 0
		if a.starSum(1) < a.starSum(0) {
			lower = 1
		}
		if !need[lower] {
			lower = 1 - lower
		}

		first, firstRecycled, ok := a.pickTopUp()
		if !ok {
			return
		}
		if !need[1-lower] {
			a.take(lower, first, firstRecycled)
			continue
		}
		a.hold(first)
		second, secondRecycled, ok := a.pickTopUp()
		if !ok {
			a.take(lower, first, firstRecycled)
			return
		}
		if second.Stars > first.Stars {
			first, second = second, first
			firstRecycled, secondRecycled = secondRecycled, firstRecycled
		}
		a.take(lower, first, firstRecycled)
		a.take(1-lower, second, secondRecycled)
	}
}

// drawTop draws a five-star club, falling back to 4.5 stars and then to the
// best remaining club.
func (a *allocator) drawTop(side int) bool {
	for _, stars := range []float64{5, 4.5} {
		if c, ok := a.pick(all(clubSide, starsEq(stars))); ok {
			a.take(side, c, false)
			return true
		}
	}
	for _, floor := range []float64{FallbackFloor, 0} {
		if c, ok := a.pickHighest(floor, clubSide); ok {
			a.take(side, c, false)
			return true
		}
	}
	if c, ok := a.recycle(all(clubSide, starsAtLeast(FallbackFloor)), clubSide); ok {
		a.take(side, c, true)
		return true
	}
	return false
}

// pickTopUp draws a random unbanned club, preferring 4 stars or more, and
// recycles when nothing is left.
func (a *allocator) pickTopUp() (catalog.Club, bool, bool) {
	for _, pred := range []predicate{all(clubSide, starsAtLeast(FallbackFloor)), clubSide} {
		if c, ok := a.pick(pred); ok {
			return c, false, true
		}
	}
	if c, ok := a.recycle(all(clubSide, starsAtLeast(FallbackFloor)), clubSide); ok {
		return c, true, true
	}
	return catalog.Club{}, false, false
}

// GenerateFirstPickPools seats the club chosen by the trivia winner in the
// winner's pool and allocates the rest as usual: through cfg when present,
// else through the balancing path. The chosen club takes the place of the
// winner's first matching tier slot.
func GenerateFirstPickPools(cat catalog.Catalog, exclude []string, cfg *DistributionConfig, winsToComplete, winnerSide int, chosenClubID string, rng *rand.Rand) (Result, error) {
	if winnerSide != 0 && winnerSide != 1 {
		return Result{}, &tournament.InvalidInputError{Field: "winnerSide", Reason: fmt.Sprintf("must be 0 or 1, got %d", winnerSide)}
	}
	chosen, ok := cat.Get(chosenClubID)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownClub, chosenClubID)
	}
	if slices.Contains(exclude, chosenClubID) {
		return Result{}, fmt.Errorf("%w: %q", ErrClubExcluded, chosenClubID)
	}

	a := newAllocator(cat, exclude, rng)
	a.take(winnerSide, chosen, false)
	target := TargetSize(winsToComplete)
	if cfg == nil {
		a.fillBalanced(target)
		return a.result(target), nil
	}

	var slots [2][]slot
	slots[1-winnerSide] = cfg.slots()
	winner := cfg.slots()
	i := slices.IndexFunc(winner, func(s slot) bool { return s.pred(chosen) })
	if i < 0 {
		i = len(winner) - 1
	}
	if i >= 0 {
		winner = slices.Delete(winner, i, i+1)
	}
	slots[winnerSide] = winner
	a.fillSlots(slots)
	return a.result(target), nil
}
