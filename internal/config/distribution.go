package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-evenings/internal/catalog"
	"github.com/mauv0809/club-evenings/internal/pool"
	"gopkg.in/yaml.v3"
)

// LoadDistribution reads the pool distribution policy. An empty path yields
// an empty policy, so every round uses the balancing fallback.
func LoadDistribution(path string) (Distribution, error) {
	if path == "" {
		log.Info("No distribution file configured, using balanced pools")
		return Distribution{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read distribution file: %w", err)
	}
	d, err := ParseDistribution(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	log.Info("Loaded pool distribution", "path", path, "targets", len(d))
	return d, nil
}

// ParseDistribution decodes and validates a YAML distribution policy. Every
// entry must fill exactly winsToComplete*2-1 slots per side.
func ParseDistribution(data []byte) (Distribution, error) {
	var file distributionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	d := Distribution{}
	for wins, cfg := range file.Distributions {
		if wins < 1 {
			return nil, fmt.Errorf("winsToComplete %d must be at least 1", wins)
		}
		for _, tier := range cfg.Tiers {
			if !catalog.ValidStars(tier.Stars) {
				return nil, fmt.Errorf("winsToComplete %d: invalid tier stars %v", wins, tier.Stars)
			}
			if tier.Count < 0 {
				return nil, fmt.Errorf("winsToComplete %d: negative count for %v stars", wins, tier.Stars)
			}
		}
		if cfg.PrimeCount < 0 {
			return nil, fmt.Errorf("winsToComplete %d: negative prime count", wins)
		}
		if got, want := cfg.Slots(), pool.TargetSize(wins); got != want {
			return nil, fmt.Errorf("winsToComplete %d: tiers fill %d slots, need %d", wins, got, want)
		}
		d[wins] = cfg
	}
	return d, nil
}

// For returns the policy for a win target.
func (d Distribution) For(winsToComplete int) (pool.DistributionConfig, bool) {
	cfg, ok := d[winsToComplete]
	return cfg, ok
}
