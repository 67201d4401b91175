// Package config loads the tool configuration from a JSON file under the
// user's config directory, creating it with defaults on first run.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const configFileName = "config.json"

// Config is the persisted application configuration.
type Config struct {
	// MaxCommentLength truncates display lines; 0 means the default.
	MaxCommentLength int `json:"max_comment_length"`
	// ShowResolved displays resolved comments by default.
	ShowResolved bool `json:"show_resolved"`
	// BotLogins are treated as automation authors in addition to any
	// login ending in "[bot]".
	BotLogins []string `json:"bot_logins"`
	// RequestTimeoutSeconds bounds each GitHub API call.
	RequestTimeoutSeconds int `json:"request_timeout_seconds"`
	// Editor overrides $EDITOR for composing replies.
	Editor string `json:"editor,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		MaxCommentLength:      300,
		ShowResolved:          false,
		BotLogins:             []string{"coderabbitai", "copilot-pull-request-reviewer"},
		RequestTimeoutSeconds: 30,
	}
}

// RequestTimeout returns the configured timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// GetConfigDir returns the directory holding the config file.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "gh-pr-threads"), nil
}

// LoadConfig reads the config file, writing out defaults when it does
// not exist yet. A corrupt file falls back to defaults rather than
// blocking startup.
func LoadConfig() *Config {
	dir, err := GetConfigDir()
	if err != nil {
		return DefaultConfig()
	}

	path := filepath.Join(dir, configFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			_ = SaveConfig(cfg)
			return cfg
		}
		return DefaultConfig()
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring invalid config %s: %v\n", path, err)
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig writes the configuration back to disk.
func SaveConfig(cfg *Config) error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, configFileName), data, 0o644)
}
