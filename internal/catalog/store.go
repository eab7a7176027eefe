package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// NewStore creates a new ClubStore.
func NewStore(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

// UpsertClubs inserts new clubs or refreshes existing ones. Overrides are left
// untouched so an admin rating survives a catalog reload.
func (s *store) UpsertClubs(clubs []Club) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO clubs (id, name, stars, league, is_national, is_prime)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			stars = excluded.stars,
			league = excluded.league,
			is_national = excluded.is_national,
			is_prime = excluded.is_prime;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare club upsert: %w", err)
	}
	defer stmt.Close()

	for _, club := range clubs {
		if club.ID == "" {
			return fmt.Errorf("club %q has no id", club.Name)
		}
		if !ValidStars(club.Stars) {
			return fmt.Errorf("club %s has invalid star rating %.1f", club.ID, club.Stars)
		}
		if _, err := stmt.Exec(club.ID, club.Name, club.Stars, club.League, club.IsNational, club.IsPrime); err != nil {
			return fmt.Errorf("failed to upsert club %s: %w", club.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clubs: %w", err)
	}
	log.Info("Upserted clubs", "count", len(clubs))
	return nil
}

// GetAllClubs returns the base catalog without overrides, ordered by id.
func (s *store) GetAllClubs() ([]Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, stars, league, is_national, is_prime FROM clubs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query clubs: %w", err)
	}
	defer rows.Close()

	var clubs []Club
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, err
		}
		clubs = append(clubs, *club)
	}
	return clubs, rows.Err()
}

// GetClub returns one club with its override applied.
func (s *store) GetClub(clubID string) (*Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT c.id, c.name, COALESCE(o.stars, c.stars), c.league, c.is_national, c.is_prime
		FROM clubs c
		LEFT JOIN club_overrides o ON o.club_id = c.id
		WHERE c.id = ?
	`, clubID)
	club, err := scanClub(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", ErrClubNotFound, clubID)
		}
		return nil, err
	}
	return club, nil
}

// SetStarOverride replaces the rating of a club for every future snapshot.
func (s *store) SetStarOverride(clubID string, stars float64) error {
	if !ValidStars(stars) {
		return fmt.Errorf("invalid star rating %.1f", stars)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO club_overrides (club_id, stars, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(club_id) DO UPDATE SET stars = excluded.stars, updated_at = excluded.updated_at;
	`, clubID, stars, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to set star override for %s: %w", clubID, err)
	}
	log.Info("Set star override", "clubID", clubID, "stars", stars)
	return nil
}

func (s *store) ClearStarOverride(clubID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM club_overrides WHERE club_id = ?`, clubID); err != nil {
		return fmt.Errorf("failed to clear star override for %s: %w", clubID, err)
	}
	return nil
}

// Snapshot resolves every override and returns an immutable catalog.
func (s *store) Snapshot() (Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT c.id, c.name, COALESCE(o.stars, c.stars), c.league, c.is_national, c.is_prime
		FROM clubs c
		LEFT JOIN club_overrides o ON o.club_id = c.id
		ORDER BY c.id
	`)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to query catalog snapshot: %w", err)
	}
	defer rows.Close()

	var clubs []Club
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return Catalog{}, err
		}
		clubs = append(clubs, *club)
	}
	if err := rows.Err(); err != nil {
		return Catalog{}, fmt.Errorf("failed to read catalog snapshot: %w", err)
	}
	log.Debug("Took catalog snapshot", "clubs", len(clubs))
	return New(clubs), nil
}

// Clear removes every club and override.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM club_overrides"); err != nil {
		log.Error("Failed to clear club overrides", "error", err)
	}
	if _, err := s.db.Exec("DELETE FROM clubs"); err != nil {
		log.Error("Failed to clear clubs", "error", err)
	}
}

// scanClub is a helper function to scan a single club row.
func scanClub(scanner interface{ Scan(...any) error }) (*Club, error) {
	var club Club
	if err := scanner.Scan(&club.ID, &club.Name, &club.Stars, &club.League, &club.IsNational, &club.IsPrime); err != nil {
		return nil, err
	}
	return &club, nil
}
