// Package config holds all 2Giants configuration.
// Configuration is loaded from ~/.2giants/config.yaml and overridden by
// environment variables. The API key is only ever resolved from the
// environment, never persisted to the config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all 2Giants configuration.
type Config struct {
	// LLM configuration
	LLM LLMConfig `yaml:"llm"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// History persistence
	History HistoryConfig `yaml:"history"`
}

// LLMConfig configures the completion capability.
type LLMConfig struct {
	// APIKey is resolved from the environment, never from the file.
	APIKey string `yaml:"-"`

	// RouterModel is the fast model used for intent classification.
	RouterModel string `yaml:"router_model"`

	// ChatModel is the model used for reply generation.
	ChatModel string `yaml:"chat_model"`

	// RouterTemperature keeps classification near-deterministic.
	RouterTemperature float32 `yaml:"router_temperature"`

	// ChatTemperature is used for reply generation.
	ChatTemperature float32 `yaml:"chat_temperature"`
}

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	Debug      bool            `yaml:"debug"`
	Categories map[string]bool `yaml:"categories"`
	Level      string          `yaml:"level"`
}

// HistoryConfig configures turn-history persistence.
type HistoryConfig struct {
	// DatabasePath for the SQLite turn store. Empty means
	// <config dir>/history.db.
	DatabasePath string `yaml:"database_path"`

	// LineHistoryPath backs the interactive editor's recall.
	// Empty means <config dir>/history.
	LineHistoryPath string `yaml:"line_history_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			RouterModel:       "gemini-2.5-flash",
			ChatModel:         "gemini-3-flash-preview",
			RouterTemperature: 0.1,
			ChatTemperature:   0.7,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Dir returns the per-user configuration directory (~/.2giants),
// creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".2giants")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// Load reads config.yaml from the given directory, falling back to
// defaults when the file is absent, then applies environment overrides.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides resolves the API key and model overrides from the
// environment. GOOGLE_API_KEY takes precedence over GEMINI_API_KEY.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		c.LLM.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}

	if model := os.Getenv("TWOGIANTS_ROUTER_MODEL"); model != "" {
		c.LLM.RouterModel = model
	}
	if model := os.Getenv("TWOGIANTS_CHAT_MODEL"); model != "" {
		c.LLM.ChatModel = model
	}
}

// HistoryDBPath resolves the SQLite history path against the config dir.
func (c *Config) HistoryDBPath(dir string) string {
	if c.History.DatabasePath != "" {
		return c.History.DatabasePath
	}
	return filepath.Join(dir, "history.db")
}

// LineHistoryPath resolves the line-history file path against the config dir.
func (c *Config) LineHistoryPath(dir string) string {
	if c.History.LineHistoryPath != "" {
		return c.History.LineHistoryPath
	}
	return filepath.Join(dir, "history")
}
