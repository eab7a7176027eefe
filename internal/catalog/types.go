package catalog

import (
	"database/sql"
	"errors"
	"sync"
)

var ErrClubNotFound = errors.New("club not found")

// Club is a selectable game team. Stars is a half-integer in [0.5, 5].
type Club struct {
	ID         string  `json:"id" msgpack:"id" yaml:"id"`
	Name       string  `json:"name" msgpack:"name" yaml:"name"`
	Stars      float64 `json:"stars" msgpack:"stars" yaml:"stars"`
	League     string  `json:"league" msgpack:"league" yaml:"league"`
	IsNational bool    `json:"isNational,omitempty" msgpack:"is_national" yaml:"isNational"`
	IsPrime    bool    `json:"isPrime,omitempty" msgpack:"is_prime" yaml:"isPrime"`
}

// IsZero reports whether c is the placeholder club of a match whose clubs
// have not been chosen yet.
func (c Club) IsZero() bool {
	return c.ID == ""
}

// IDSet is a set of club ids.
type IDSet map[string]struct{}

// store handles all database operations for the club catalog.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
