// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	DataDir string `json:"data_dir,omitempty"` // Directory holding dataset files
	Dataset string `json:"dataset,omitempty"`  // Default dataset id

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // LLM provider API key
	Provider    string `json:"provider,omitempty"`     // LLM provider name (gemini, openai)
	BaseURL     string `json:"base_url,omitempty"`     // Override endpoint for OpenAI-compatible servers
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for query history
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information

	// Limits
	TopK  int `json:"top_k,omitempty"` // Candidates passed to contextual re-ranking
	Limit int `json:"limit,omitempty"` // Final result count
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate numeric ranges
	if c.TopK < 0 {
		return fmt.Errorf("config error: 'top_k' must be non-negative")
	}
	if c.Limit < 0 {
		return fmt.Errorf("config error: 'limit' must be non-negative")
	}

	// Validate data directory exists (if specified)
	if c.DataDir != "" {
		if _, err := os.Stat(c.DataDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: data directory not found: %s", c.DataDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.Dataset == "" {
		result.Dataset = defaults.Dataset
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.TopK == 0 {
		result.TopK = defaults.TopK
	}
	if result.Limit == 0 {
		result.Limit = defaults.Limit
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
