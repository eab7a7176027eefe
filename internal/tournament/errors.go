package tournament

import (
	"errors"
	"fmt"
)

var (
	ErrRoundCompleted   = errors.New("round is already completed")
	ErrRoundNotTied     = errors.New("round is not tied")
	ErrMatchOpen        = errors.New("round has an unfinished match")
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchCompleted   = errors.New("match is already completed")
	ErrMatchNotComplete = errors.New("match has no result yet")
	ErrGameNotFound     = errors.New("game not found")
	ErrGameNotPlayable  = errors.New("game is not playable")
	ErrClubUnavailable  = errors.New("club is not available to this player")
	ErrNotEnoughClubs   = errors.New("not enough clubs rated 4 stars or more")
)

// InvalidInputError reports a violated precondition on caller input.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
