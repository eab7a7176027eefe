package evening

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/mauv0809/club-evenings/internal/catalog"
	"github.com/mauv0809/club-evenings/internal/metrics"
	"github.com/mauv0809/club-evenings/internal/pool"
	"github.com/mauv0809/club-evenings/internal/pubsub"
	"github.com/mauv0809/club-evenings/internal/tournament"
)

// Service runs evenings: it loads a snapshot, resolves the catalog and
// distribution policy, reduces, persists and announces what changed. It is
// the single writer the core expects.
type Service struct {
	store        Store
	clubs        catalog.ClubStore
	distribution DistributionProvider
	pubsub       pubsub.PubSubClient
	metrics      metrics.Metrics
	counters     metrics.MetricsStore
	rng          *rand.Rand
	now          func() time.Time

	mu sync.Mutex
}

// NewService wires a Service. distribution and counters may be nil.
func NewService(store Store, clubs catalog.ClubStore, distribution DistributionProvider, pubsubClient pubsub.PubSubClient, m metrics.Metrics, counters metrics.MetricsStore, rng *rand.Rand) *Service {
	return &Service{
		store:        store,
		clubs:        clubs,
		distribution: distribution,
		pubsub:       pubsubClient,
		metrics:      m,
		counters:     counters,
		rng:          rng,
		now:          time.Now,
	}
}

// PlayersFromNames turns display names into players with slug ids.
func PlayersFromNames(names []string) ([]tournament.Player, error) {
	players := make([]tournament.Player, 0, len(names))
	seen := map[string]string{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		id := slug.Make(name)
		if id == "" {
			return nil, &tournament.InvalidInputError{Field: "players", Reason: fmt.Sprintf("name %q has no usable characters", name)}
		}
		if other, dup := seen[id]; dup {
			return nil, &tournament.InvalidInputError{Field: "players", Reason: fmt.Sprintf("%q and %q map to the same id %q", other, name, id)}
		}
		seen[id] = name
		players = append(players, tournament.Player{ID: id, Name: name})
	}
	return players, nil
}

// increment bumps lifetime counters. A failure only costs the counter, the
// evening itself is already persisted.
func (s *Service) increment(eveningID string, keys ...metrics.CounterKey) {
	if s.counters == nil {
		return
	}
	if err := s.counters.Increment(keys...); err != nil {
		log.Error("Failed to increment counters", "eveningID", eveningID, "keys", keys, "error", err)
	}
}

// StartPairsEvening creates a 4-player evening. The partner schedule is
// generated here once and round 1 is opened with its first match.
func (s *Service) StartPairsEvening(names []string, winsToComplete int) (*tournament.Evening, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := PlayersFromNames(names)
	if err != nil {
		return nil, err
	}
	if winsToComplete < 1 {
		return nil, &tournament.InvalidInputError{Field: "winsToComplete", Reason: fmt.Sprintf("must be at least 1, got %d", winsToComplete)}
	}
	schedule, err := tournament.GeneratePairs(players, s.rng)
	if err != nil {
		return nil, err
	}

	e := tournament.Evening{
		ID:             uuid.New().String(),
		Date:           s.now().Format(time.DateOnly),
		Type:           tournament.TypePairs,
		Players:        players,
		Rounds:         []tournament.Round{},
		WinsToComplete: winsToComplete,
		PairSchedule:   schedule,
	}
	e, err = OpenRound(e, 1)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(e); err != nil {
		return nil, err
	}
	s.metrics.IncEveningsStarted(string(e.Type))
	s.increment(e.ID, metrics.KeyEveningsStarted, metrics.EveningsStartedKey(string(e.Type)))
	log.Info("Started pairs evening", "eveningID", e.ID, "winsToComplete", winsToComplete)
	return &e, nil
}

// StartSinglesEvening creates a singles evening with personal club
// inventories drawn from the current catalog.
func (s *Service) StartSinglesEvening(names []string, clubsPerPlayer int) (*tournament.Evening, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := PlayersFromNames(names)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.clubs.Snapshot()
	if err != nil {
		return nil, err
	}
	e, err := tournament.CreateSinglesEvening(players, clubsPerPlayer, snapshot, s.rng)
	if err != nil {
		return nil, err
	}
	e.ID = uuid.New().String()
	e.Date = s.now().Format(time.DateOnly)

	if err := s.store.Create(e); err != nil {
		return nil, err
	}
	s.metrics.IncEveningsStarted(string(e.Type))
	s.increment(e.ID, metrics.KeyEveningsStarted, metrics.EveningsStartedKey(string(e.Type)))
	log.Info("Started singles evening", "eveningID", e.ID, "players", len(players), "games", len(e.GameSequence))
	return &e, nil
}

// Get returns the current snapshot of an evening.
func (s *Service) Get(eveningID string) (*tournament.Evening, error) {
	return s.store.Get(eveningID)
}

// Latest returns the most recently started evening.
func (s *Service) Latest() (*tournament.Evening, error) {
	return s.store.Latest()
}

// ListEvenings lists stored evenings, newest first.
func (s *Service) ListEvenings(activeOnly bool) ([]Summary, error) {
	return s.store.List(activeOnly)
}

// Apply reduces one event against the stored evening and persists the result.
func (s *Service) Apply(eveningID string, ev Event) (*tournament.Evening, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(eveningID, ev)
}

// Preview reduces ev against the stored evening without persisting or
// announcing anything.
func (s *Service) Preview(eveningID string, ev Event) (*tournament.Evening, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.store.Get(eveningID)
	if err != nil {
		return nil, err
	}
	if ev.Type == EventSelectClubs && ev.Clubs[0].IsZero() {
		if ev, err = s.resolveClubs(ev); err != nil {
			return nil, err
		}
	}
	next, err := Reduce(*prev, ev)
	if err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *Service) apply(eveningID string, ev Event) (*tournament.Evening, error) {
	prev, err := s.store.Get(eveningID)
	if err != nil {
		return nil, err
	}
	if ev.Type == EventSelectClubs && ev.Clubs[0].IsZero() {
		if ev, err = s.resolveClubs(ev); err != nil {
			return nil, err
		}
	}

	next, err := Reduce(*prev, ev)
	if err != nil {
		log.Debug("Rejected event", "eveningID", eveningID, "type", ev.Type, "error", err)
		return nil, err
	}
	if err := s.store.Save(next); err != nil {
		return nil, err
	}
	log.Info("Applied event", "eveningID", eveningID, "type", ev.Type)
	s.announce(*prev, next, ev)
	return &next, nil
}

func (s *Service) resolveClubs(ev Event) (Event, error) {
	snapshot, err := s.clubs.Snapshot()
	if err != nil {
		return ev, err
	}
	for side, id := range ev.ClubIDs {
		club, ok := snapshot.Get(id)
		if !ok {
			return ev, fmt.Errorf("%w: %q", pool.ErrUnknownClub, id)
		}
		ev.Clubs[side] = club
	}
	return ev, nil
}

// announce records metrics and publishes round and evening completions.
// Failures are logged; the new state is already persisted.
func (s *Service) announce(prev, next tournament.Evening, ev Event) {
	if ev.Type == EventSubmitResult || ev.Type == EventSubmitSinglesResult {
		s.metrics.IncMatchesRecorded()
		s.increment(next.ID, metrics.KeyMatchesRecorded)
	}

	for i, r := range next.Rounds {
		if !r.Completed || (i < len(prev.Rounds) && prev.Rounds[i].Completed) {
			continue
		}
		winner, _ := tournament.GetRoundWinner(r)
		msg := pubsub.RoundCompletedMessage{EveningID: next.ID, RoundNumber: r.Number, WinnerPairID: winner}
		if err := s.pubsub.SendMessage(pubsub.EventRoundCompleted, msg); err != nil {
			log.Error("Failed to publish round completion", "eveningID", next.ID, "round", r.Number, "error", err)
		}
	}

	if next.Completed && !prev.Completed {
		s.metrics.IncEveningsCompleted()
		s.increment(next.ID, metrics.KeyEveningsCompleted)
		if err := s.pubsub.SendMessage(pubsub.EventEveningCompleted, pubsub.EveningCompletedMessage{EveningID: next.ID}); err != nil {
			log.Error("Failed to publish evening completion", "eveningID", next.ID, "error", err)
		}
	}
}

// excludedClubs is every club already chosen in the evening plus every club
// offered in another round's pools.
func excludedClubs(e tournament.Evening, roundIndex int) []string {
	used := catalog.NewIDSet()
	for i, r := range e.Rounds {
		for _, m := range r.Matches {
			for _, c := range m.Clubs {
				if !c.IsZero() {
					used.Add(c.ID)
				}
			}
		}
		if i != roundIndex && r.TeamPools != nil {
			for _, p := range r.TeamPools {
				for _, c := range p {
					used.Add(c.ID)
				}
			}
		}
	}
	return used.Sorted()
}

func (s *Service) poolInputs(eveningID string, roundNumber int) (*tournament.Evening, int, catalog.Catalog, error) {
	e, err := s.store.Get(eveningID)
	if err != nil {
		return nil, 0, catalog.Catalog{}, err
	}
	if e.Completed {
		return nil, 0, catalog.Catalog{}, ErrEveningCompleted
	}
	i, err := pairsRound(*e, roundNumber)
	if err != nil {
		return nil, 0, catalog.Catalog{}, err
	}
	snapshot, err := s.clubs.Snapshot()
	if err != nil {
		return nil, 0, catalog.Catalog{}, err
	}
	return e, i, snapshot, nil
}

func (s *Service) recordPools(kind string, res pool.Result, started time.Time) {
	s.metrics.ObservePoolGeneration(time.Since(started).Seconds())
	s.metrics.IncPoolsGenerated(kind)
	s.metrics.AddRecycledClubs(len(res.RecycledClubIDs))
	if res.Short() {
		s.metrics.IncShortPools()
		log.Warn("Club pools are short, offer a decider draw", "kind", kind, "sizes", []int{len(res.Pools[0]), len(res.Pools[1])}, "target", res.Target)
	}
}

func (s *Service) storePools(eveningID string, number int, res pool.Result) error {
	pools := res.Pools
	_, err := s.apply(eveningID, Event{Type: EventSetPools, Round: number, Pools: &pools, RecycledClubIDs: res.RecycledClubIDs})
	return err
}

// GenerateRoundPools draws the club pools of a round, through the
// distribution configured for the evening's win target when there is one and
// through the balancing path otherwise. The pools are stored on the round.
func (s *Service) GenerateRoundPools(eveningID string, roundNumber int) (*pool.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, i, snapshot, err := s.poolInputs(eveningID, roundNumber)
	if err != nil {
		return nil, err
	}
	exclude := excludedClubs(*e, i)

	started := time.Now()
	kind := "balanced"
	var res pool.Result
	if cfg, ok := s.configFor(e.WinsToComplete); ok {
		kind = "config"
		res = pool.GeneratePools(snapshot, exclude, cfg, e.WinsToComplete, s.rng)
	} else {
		res = pool.GenerateTeamPools(snapshot, exclude, e.WinsToComplete, s.rng)
	}
	s.recordPools(kind, res, started)

	if err := s.storePools(eveningID, e.Rounds[i].Number, res); err != nil {
		return nil, err
	}
	log.Info("Generated round pools", "eveningID", eveningID, "round", e.Rounds[i].Number, "kind", kind, "recycled", len(res.RecycledClubIDs))
	return &res, nil
}

// GenerateTriviaPools seats the club picked by the trivia winner on its side
// and allocates the remaining clubs of both pools.
func (s *Service) GenerateTriviaPools(eveningID string, roundNumber, winnerSide int, chosenClubID string) (*pool.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, i, snapshot, err := s.poolInputs(eveningID, roundNumber)
	if err != nil {
		return nil, err
	}
	var cfg *pool.DistributionConfig
	if c, ok := s.configFor(e.WinsToComplete); ok {
		cfg = &c
	}

	started := time.Now()
	res, err := pool.GenerateFirstPickPools(snapshot, excludedClubs(*e, i), cfg, e.WinsToComplete, winnerSide, chosenClubID, s.rng)
	if err != nil {
		return nil, err
	}
	s.recordPools("trivia", res, started)

	if err := s.storePools(eveningID, e.Rounds[i].Number, res); err != nil {
		return nil, err
	}
	log.Info("Generated trivia pools", "eveningID", eveningID, "round", e.Rounds[i].Number, "winnerSide", winnerSide, "club", chosenClubID)
	return &res, nil
}

// GenerateDeciderClubs assigns a balanced club pair to the open decider
// match of a round.
func (s *Service) GenerateDeciderClubs(eveningID string, roundNumber int) (*pool.DeciderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, i, snapshot, err := s.poolInputs(eveningID, roundNumber)
	if err != nil {
		return nil, err
	}
	r := e.Rounds[i]
	j, open := tournament.OpenMatch(r)
	if !open || !r.Matches[j].IsDecider {
		return nil, ErrNoOpenDecider
	}

	started := time.Now()
	res, err := pool.GenerateBalancedDeciderTeams(snapshot, excludedClubs(*e, -1), pool.DefaultDeciderOptions, s.rng)
	if err != nil {
		return nil, err
	}
	s.metrics.ObservePoolGeneration(time.Since(started).Seconds())
	s.metrics.IncPoolsGenerated("decider")
	s.metrics.AddRecycledClubs(len(res.RecycledClubIDs))

	_, err = s.apply(eveningID, Event{
		Type:            EventSelectClubs,
		Round:           r.Number,
		MatchID:         r.Matches[j].ID,
		Clubs:           res.Clubs,
		ClubIDs:         [2]string{res.Clubs[0].ID, res.Clubs[1].ID},
		RecycledClubIDs: res.RecycledClubIDs,
	})
	if err != nil {
		return nil, err
	}
	if !res.WithinDiff {
		log.Warn("Decider clubs exceed the star difference bound", "eveningID", eveningID, "clubs", res.Clubs)
	}
	return &res, nil
}

func (s *Service) configFor(winsToComplete int) (pool.DistributionConfig, bool) {
	if s.distribution == nil {
		return pool.DistributionConfig{}, false
	}
	return s.distribution.For(winsToComplete)
}

// Standings computes player stats and rankings from the stored evening.
func (s *Service) Standings(eveningID string) (*Standings, error) {
	e, err := s.store.Get(eveningID)
	if err != nil {
		return nil, err
	}
	return StandingsOf(*e), nil
}

// StandingsOf computes the standings of an evening snapshot.
func StandingsOf(e tournament.Evening) *Standings {
	stats := tournament.CalculatePlayerStats(e)
	return &Standings{
		EveningID: e.ID,
		Completed: e.Completed,
		Stats:     stats,
		Rankings:  tournament.CalculateRankings(stats),
	}
}

// IsClientError reports whether err was caused by the request rather than
// by the service.
func IsClientError(err error) bool {
	var invalid *tournament.InvalidInputError
	return errors.As(err, &invalid) || errors.Is(err, ErrMissingField) || errors.Is(err, ErrUnknownEvent) || errors.Is(err, pool.ErrUnknownClub)
}

// IsConflict reports whether err is a transition the current state does not
// allow.
func IsConflict(err error) bool {
	for _, target := range []error{
		ErrEveningCompleted, ErrWrongEveningType, ErrRoundLocked, ErrRoundNotCompleted,
		ErrNoMoreRounds, ErrNoOpenDecider,
		tournament.ErrRoundCompleted, tournament.ErrRoundNotTied, tournament.ErrMatchOpen,
		tournament.ErrMatchNotFound, tournament.ErrMatchCompleted, tournament.ErrMatchNotComplete,
		tournament.ErrGameNotFound, tournament.ErrGameNotPlayable, tournament.ErrClubUnavailable,
		tournament.ErrNotEnoughClubs, pool.ErrCatalogExhausted, pool.ErrClubExcluded,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
