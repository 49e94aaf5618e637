package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"data_dir": "data",
		"dataset": "profiles",
		"provider": "openai",
		"top_k": 25,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "profiles", cfg.Dataset)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, 25, cfg.TopK)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := &Config{TopK: -1}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "top_k")

	cfg = &Config{Limit: -5}

	err = cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "limit")
}

func TestValidate_MissingDataDir(t *testing.T) {
	cfg := &Config{DataDir: "/nonexistent/data/dir"}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "data directory not found")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		DataDir: t.TempDir(),
		TopK:    50,
		Limit:   10,
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		DataDir:  "data",
		Dataset:  "profiles",
		Provider: "gemini",
		TopK:     50,
		Limit:    10,
	}

	partial := Config{
		Dataset: "custom",
		APIKey:  "secret",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "custom", merged.Dataset)
	assert.Equal(t, "secret", merged.APIKey)

	// Default values should fill in empty fields
	assert.Equal(t, "data", merged.DataDir)
	assert.Equal(t, "gemini", merged.Provider)
	assert.Equal(t, 50, merged.TopK)
	assert.Equal(t, 10, merged.Limit)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		Dataset:  "profiles",
		Provider: "openai",
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "profiles", merged.Dataset)
	assert.Equal(t, "openai", merged.Provider)
}
