package database

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// InitDB opens the database and migrates it to the latest schema.
// With an empty primaryURL a local SQLite file (or ":memory:") is used,
// otherwise the remote Turso database at primaryURL.
// The returned teardown closes the connection.
func InitDB(dbPath string, primaryURL string, authToken string, migrationsDir string) (*sql.DB, func(), error) {
	var (
		db      *sql.DB
		err     error
		dialect = "sqlite3"
	)
	if primaryURL == "" {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		db, err = sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local database: %w", err)
		}
		// Every pooled connection to ":memory:" would otherwise see its own database.
		db.SetMaxOpenConns(1)
	} else {
		log.Info("Initializing Turso database", "url", primaryURL)
		db, err = sql.Open("libsql", primaryURL+"?authToken="+authToken)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db %s: %w", primaryURL, err)
		}
		dialect = "turso"
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}

	if err := migrate(db, dialect, migrationsDir); err != nil {
		teardown()
		return nil, nil, err
	}
	log.Info("Database initialized successfully")
	return db, teardown, nil
}

func migrate(db *sql.DB, dialect, migrationsDir string) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		log.Error("Error enabling foreign keys:", "error", err)
		return err
	}
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations from %s: %w", migrationsDir, err)
	}
	return nil
}
