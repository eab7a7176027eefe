package catalog

// ClubStore persists the club catalog and the admin star overrides.
type ClubStore interface {
	UpsertClubs(clubs []Club) error
	GetAllClubs() ([]Club, error)
	GetClub(clubID string) (*Club, error)
	SetStarOverride(clubID string, stars float64) error
	ClearStarOverride(clubID string) error
	// Snapshot returns the catalog with every override applied.
	Snapshot() (Catalog, error)
	Clear()
}
