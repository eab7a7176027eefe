package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/club-evenings/internal/catalog"
	"github.com/mauv0809/club-evenings/internal/database"
	"gopkg.in/yaml.v3"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":           "club-evenings.db",
		"MIGRATIONS_DIR":    "./migrations",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

// readClubs decodes a catalog file. YAML is chosen by extension, anything
// else is read as JSON.
func readClubs(path string) ([]catalog.Club, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var clubs []catalog.Club
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &clubs)
	default:
		err = json.Unmarshal(data, &clubs)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return clubs, nil
}

func main() {
	file := flag.String("file", "data/clubs.yaml", "Club catalog file (YAML or JSON)")
	flag.Parse()

	log.Info("Starting club catalog seeder...", "file", *file)
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	clubs, err := readClubs(*file)
	if err != nil {
		log.Fatalf("Failed to load clubs: %s", err)
	}

	startTime := time.Now()
	if err := catalog.NewStore(db).UpsertClubs(clubs); err != nil {
		log.Fatalf("Failed to upsert clubs: %s", err)
	}
	log.Info("Successfully seeded the club catalog.", "clubs", len(clubs), "duration", time.Since(startTime))
}
