// Package config provides configuration loading and the immutable policy
// tables that drive resource filtering and scoring.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or the environment.
type Config struct {
	// API credentials
	GeminiAPIKey  string `json:"gemini_api_key,omitempty"`  // LLM calls
	YouTubeAPIKey string `json:"youtube_api_key,omitempty"` // video search
	SearchAPIKey  string `json:"search_api_key,omitempty"`  // Custom Search
	SearchCX      string `json:"search_cx,omitempty"`       // Custom Search engine ID

	// Persistence
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Server
	Port int `json:"port,omitempty"`

	// Behavior
	MaxIterations        int     `json:"max_iterations,omitempty"` // search iterations per section
	MaxVideosPerSection  int     `json:"max_videos_per_section,omitempty"`
	MaxWorksheetOptions  int     `json:"max_worksheet_options,omitempty"`
	MaxActivityOptions   int     `json:"max_activity_options,omitempty"`
	ConvergenceThreshold float64 `json:"convergence_threshold,omitempty"` // coverage points
	UseBrowser           bool    `json:"use_browser,omitempty"`           // headless browser for SPA pages
	Verbose              bool    `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills credential fields from environment variables when unset.
// Environment variables: GEMINI_API_KEY, YOUTUBE_API_KEY, GOOGLE_API_KEY,
// GOOGLE_CSE_ID, DATABASE_URL.
func (c *Config) FromEnv() {
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.YouTubeAPIKey == "" {
		c.YouTubeAPIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if c.SearchAPIKey == "" {
		c.SearchAPIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if c.SearchCX == "" {
		c.SearchCX = os.Getenv("GOOGLE_CSE_ID")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}

// Validate checks that the configuration has valid values.
// Credential presence is checked at the point of use, not here, so offline
// commands can run without API keys.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("config error: 'max_iterations' must be non-negative")
	}
	if c.MaxVideosPerSection < 0 {
		return fmt.Errorf("config error: 'max_videos_per_section' must be non-negative")
	}
	if c.MaxWorksheetOptions < 0 {
		return fmt.Errorf("config error: 'max_worksheet_options' must be non-negative")
	}
	if c.MaxActivityOptions < 0 {
		return fmt.Errorf("config error: 'max_activity_options' must be non-negative")
	}
	if c.ConvergenceThreshold < 0 {
		return fmt.Errorf("config error: 'convergence_threshold' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.YouTubeAPIKey == "" {
		result.YouTubeAPIKey = defaults.YouTubeAPIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchCX == "" {
		result.SearchCX = defaults.SearchCX
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxIterations == 0 {
		result.MaxIterations = defaults.MaxIterations
	}
	if result.MaxVideosPerSection == 0 {
		result.MaxVideosPerSection = defaults.MaxVideosPerSection
	}
	if result.MaxWorksheetOptions == 0 {
		result.MaxWorksheetOptions = defaults.MaxWorksheetOptions
	}
	if result.MaxActivityOptions == 0 {
		result.MaxActivityOptions = defaults.MaxActivityOptions
	}
	if result.ConvergenceThreshold == 0 {
		result.ConvergenceThreshold = defaults.ConvergenceThreshold
	}
	if !result.UseBrowser {
		result.UseBrowser = defaults.UseBrowser
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}

// DefaultConfig returns the calibrated default configuration.
func DefaultConfig() Config {
	return Config{
		Port:                 8080,
		MaxIterations:        3,
		MaxVideosPerSection:  3,
		MaxWorksheetOptions:  3,
		MaxActivityOptions:   3,
		ConvergenceThreshold: 10,
	}
}
