package main

import (
	"fmt"

	"github.com/m-ayala/edcube-mvp/internal/config"
)

// loadMergedConfig loads an optional JSON config file, fills credentials
// from the environment, and applies defaults. Flag overrides happen at the
// call site because each command carries different flags.
func loadMergedConfig(path string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	cfg.FromEnv()
	cfg = cfg.MergeWithDefaults(config.DefaultConfig())
	return cfg, nil
}
