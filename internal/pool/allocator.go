package pool

import (
	"math/rand/v2"

	"github.com/mauv0809/club-evenings/internal/catalog"
)

// FallbackFloor is the lowest rating a tier falls back to before recycling.
const FallbackFloor = 4.0

type predicate func(catalog.Club) bool

func all(preds ...predicate) predicate {
	return func(c catalog.Club) bool {
		for _, p := range preds {
			if !p(c) {
				return false
			}
		}
		return true
	}
}

func starsEq(s float64) predicate { return func(c catalog.Club) bool { return c.Stars == s } }
func starsAtLeast(s float64) predicate { return func(c catalog.Club) bool { return c.Stars >= s } }
func clubSide(c catalog.Club) bool { return !c.IsNational && !c.IsPrime }
func noPrime(c catalog.Club) bool { return !c.IsPrime }
func prime(c catalog.Club) bool { return c.IsPrime }

// allocator tracks the state of one pool generation. banned holds the
// excluded ids plus everything drawn; inRound holds what sits in either pool,
// so a recycled club still lands in at most one pool.
type allocator struct {
	cat      catalog.Catalog
	rng      *rand.Rand
	excluded catalog.IDSet
	banned   catalog.IDSet
	inRound  catalog.IDSet
	recycled catalog.IDSet
	pools    [2][]catalog.Club
}

func newAllocator(cat catalog.Catalog, exclude []string, rng *rand.Rand) *allocator {
	excluded := catalog.NewIDSet(exclude...)
	return &allocator{
		cat:      cat,
		rng:      rng,
		excluded: excluded,
		banned:   excluded.Clone(),
		inRound:  catalog.NewIDSet(),
		recycled: catalog.NewIDSet(),
		pools:    [2][]catalog.Club{{}, {}},
	}
}

func (a *allocator) take(side int, c catalog.Club, recycled bool) {
	a.pools[side] = append(a.pools[side], c)
	a.banned.Add(c.ID)
	a.inRound.Add(c.ID)
	if recycled {
		a.recycled.Add(c.ID)
	}
}

func (a *allocator) hold(c catalog.Club) {
	a.banned.Add(c.ID)
	a.inRound.Add(c.ID)
}

func (a *allocator) pick(pred predicate) (catalog.Club, bool) {
	return a.cat.RandomPick(a.rng, a.banned, pred)
}

// pickHighest draws from the highest rating at or above floor with supply.
func (a *allocator) pickHighest(floor float64, base predicate) (catalog.Club, bool) {
	stars, ok := a.cat.HighestAvailableStars(a.banned, floor, base)
	if !ok {
		return catalog.Club{}, false
	}
	return a.pick(all(base, starsEq(stars)))
}

// recycle draws an excluded club that is in neither pool, trying each
// predicate in order.
func (a *allocator) recycle(preds ...predicate) (catalog.Club, bool) {
	for _, pred := range preds {
		candidates := a.cat.Filter(func(c catalog.Club) bool {
			return a.excluded.Has(c.ID) && !a.inRound.Has(c.ID) && pred(c)
		})
		if len(candidates) > 0 {
			return candidates[a.rng.IntN(len(candidates))], true
		}
	}
	return catalog.Club{}, false
}

// draw fills one slot: the exact filter first, then the highest available
// rating of at least FallbackFloor, then recycling.
func (a *allocator) draw(side int, pred, base predicate) bool {
	if c, ok := a.pick(pred); ok {
		a.take(side, c, false)
		return true
	}
	if c, ok := a.pickHighest(FallbackFloor, base); ok {
		a.take(side, c, false)
		return true
	}
	if c, ok := a.recycle(pred, all(base, starsAtLeast(FallbackFloor))); ok {
		a.take(side, c, true)
		return true
	}
	return false
}

func (a *allocator) starSum(side int) float64 {
	sum := 0.0
	for _, c := range a.pools[side] {
		sum += c.Stars
	}
	return sum
}

func (a *allocator) result(target int) Result {
	return Result{
		Pools:           a.pools,
		RecycledClubIDs: a.recycled.Sorted(),
		Target:          target,
	}
}
