package metrics

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

var ErrEmptyCounterKey = errors.New("counter key is empty")

// store keeps the lifetime counters of evenings and matches.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a MetricsStore over the metrics table.
func New(db *sql.DB) MetricsStore {
	return &store{
		db: db,
	}
}

// Increment bumps every key by one. Either all keys move or none do, so a
// total and its per-type breakdown never drift apart.
func (s *store) Increment(keys ...CounterKey) error {
	for _, key := range keys {
		if key == "" {
			return ErrEmptyCounterKey
		}
	}
	if len(keys) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin counter transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO metrics (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare counter increment: %w", err)
	}
	defer stmt.Close()

	for _, key := range keys {
		if _, err := stmt.Exec(string(key)); err != nil {
			return fmt.Errorf("failed to increment counter %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit counters: %w", err)
	}
	log.Debug("Incremented counters", "keys", keys)
	return nil
}

// GetAll returns every counter, including per-type breakdowns.
func (s *store) GetAll() (map[CounterKey]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM metrics")
	if err != nil {
		return nil, fmt.Errorf("failed to query counters: %w", err)
	}
	defer rows.Close()

	counters := make(map[CounterKey]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan counter: %w", err)
		}
		counters[CounterKey(key)] = value
	}
	return counters, rows.Err()
}
