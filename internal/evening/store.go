package evening

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-evenings/internal/tournament"
	"github.com/vmihailenco/msgpack/v5"
)

// NewStore creates a new evening Store.
func NewStore(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// Create inserts a new evening together with its player roster.
func (s *store) Create(e tournament.Evening) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := msgpack.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode evening %s: %w", e.ID, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	_, err = tx.Exec(`
		INSERT INTO evenings (id, date, type, completed, created_at, updated_at, snapshot)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Date, string(e.Type), e.Completed, now, now, blob)
	if err != nil {
		return fmt.Errorf("failed to create evening: %w", err)
	}

	for _, p := range e.Players {
		if _, err := tx.Exec(`INSERT INTO evening_players (evening_id, player_id, player_name) VALUES (?, ?, ?)`, e.ID, p.ID, p.Name); err != nil {
			return fmt.Errorf("failed to add player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit evening: %w", err)
	}
	log.Info("Created evening", "eveningID", e.ID, "type", e.Type, "players", len(e.Players))
	return nil
}

// Get loads the latest snapshot of an evening.
func (s *store) Get(eveningID string) (*tournament.Evening, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.load(s.db.QueryRow(`SELECT snapshot FROM evenings WHERE id = ?`, eveningID), eveningID)
}

// Latest returns the most recently created evening.
func (s *store) Latest() (*tournament.Evening, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.load(s.db.QueryRow(`SELECT snapshot FROM evenings ORDER BY created_at DESC, rowid DESC LIMIT 1`), "latest")
}

func (s *store) load(row *sql.Row, key string) (*tournament.Evening, error) {
	var blob []byte
	if err := row.Scan(&blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to get evening: %w", err)
	}
	var e tournament.Evening
	if err := msgpack.Unmarshal(blob, &e); err != nil {
		return nil, fmt.Errorf("failed to decode evening %s: %w", key, err)
	}
	return &e, nil
}

// Save overwrites the snapshot of an existing evening.
func (s *store) Save(e tournament.Evening) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := msgpack.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode evening %s: %w", e.ID, err)
	}
	res, err := s.db.Exec(`
		UPDATE evenings SET completed = ?, updated_at = ?, snapshot = ?
		WHERE id = ?
	`, e.Completed, time.Now().Unix(), blob, e.ID)
	if err != nil {
		return fmt.Errorf("failed to save evening: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save evening: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, e.ID)
	}
	log.Debug("Saved evening", "eveningID", e.ID, "completed", e.Completed)
	return nil
}

// List returns evening summaries, newest first.
func (s *store) List(activeOnly bool) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT e.id, e.date, e.type, e.completed, e.created_at, e.updated_at, p.player_name
		FROM evenings e
		LEFT JOIN evening_players p ON p.evening_id = e.id
	`
	if activeOnly {
		query += ` WHERE e.completed = 0`
	}
	query += ` ORDER BY e.created_at DESC, e.rowid DESC, p.rowid ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list evenings: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	index := map[string]int{}
	for rows.Next() {
		var (
			sum                  Summary
			eveningType          string
			createdAt, updatedAt int64
			playerName           sql.NullString
		)
		if err := rows.Scan(&sum.ID, &sum.Date, &eveningType, &sum.Completed, &createdAt, &updatedAt, &playerName); err != nil {
			return nil, fmt.Errorf("failed to scan evening: %w", err)
		}
		i, ok := index[sum.ID]
		if !ok {
			sum.Type = tournament.EveningType(eveningType)
			sum.CreatedAt = time.Unix(createdAt, 0)
			sum.UpdatedAt = time.Unix(updatedAt, 0)
			sum.Players = []string{}
			summaries = append(summaries, sum)
			i = len(summaries) - 1
			index[sum.ID] = i
		}
		if playerName.Valid {
			summaries[i].Players = append(summaries[i].Players, playerName.String)
		}
	}
	return summaries, rows.Err()
}

// Clear removes every evening.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM evenings`); err != nil {
		log.Error("Failed to clear evenings", "error", err)
		return
	}
	log.Info("Cleared all evenings")
}
