package pool

import (
	"errors"

	"github.com/mauv0809/club-evenings/internal/catalog"
)

var (
	ErrCatalogExhausted = errors.New("no eligible clubs left in the catalog")
	ErrUnknownClub      = errors.New("club is not in the catalog")
	ErrClubExcluded     = errors.New("club was already used this evening")
)

// Tier draws Count clubs of exactly Stars into each pool.
type Tier struct {
	Stars           float64 `json:"stars" yaml:"stars"`
	Count           int     `json:"count" yaml:"count"`
	IncludeNational bool    `json:"includeNational" yaml:"includeNational"`
}

// DistributionConfig is the tier policy for one winsToComplete value.
type DistributionConfig struct {
	Tiers        []Tier `json:"tiers" yaml:"tiers"`
	IncludePrime bool   `json:"includePrime" yaml:"includePrime"`
	PrimeCount   int    `json:"primeCount" yaml:"primeCount"`
}

// Slots is the number of clubs the config draws into each pool.
func (c DistributionConfig) Slots() int {
	n := 0
	for _, t := range c.Tiers {
		n += t.Count
	}
	if c.IncludePrime {
		n += c.PrimeCount
	}
	return n
}

// Result holds one pool per side of a round. Pools may be shorter than
// Target when the catalog ran dry.
type Result struct {
	Pools           [2][]catalog.Club `json:"pools"`
	RecycledClubIDs []string          `json:"recycledClubIds"`
	Target          int               `json:"target"`
}

// Short reports whether a pool is under-filled. Callers should offer a
// decider draw instead of failing.
func (r Result) Short() bool {
	return len(r.Pools[0]) < r.Target || len(r.Pools[1]) < r.Target
}

// DeciderOptions bound the two decider clubs. MaxDiff 0 demands equal ratings.
type DeciderOptions struct {
	MinStars float64
	MaxDiff  float64
}

// DefaultDeciderOptions requires 4 stars and at most one star between the clubs.
var DefaultDeciderOptions = DeciderOptions{MinStars: 4, MaxDiff: 1}

// DeciderResult is the balanced club pair of a decider match.
type DeciderResult struct {
	Clubs           [2]catalog.Club `json:"clubs"`
	RecycledClubIDs []string        `json:"recycledClubIds"`
	WithinDiff      bool            `json:"withinDiff"`
}

// TargetSize is the pool size for a round: the most matches it can need.
func TargetSize(winsToComplete int) int {
	return max(winsToComplete*2-1, 0)
}
