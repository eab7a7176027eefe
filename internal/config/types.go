package config

import "github.com/mauv0809/club-evenings/internal/pool"

// Config holds all configuration for the application.
type Config struct {
	DBName           string
	MigrationsDir    string
	Port             string
	Slack            SlackConfig
	Turso            TursoConfig
	ProjectID        string
	DistributionFile string
}
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// Distribution maps a round's winsToComplete to its pool policy.
type Distribution map[int]pool.DistributionConfig

// distributionFile is the YAML layout of a distribution policy.
type distributionFile struct {
	Distributions map[int]pool.DistributionConfig `yaml:"distributions"`
}
